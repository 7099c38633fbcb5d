package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignSpan_Hints(t *testing.T) {
	tests := []struct {
		hint string
		cols int
		rows int
	}{
		{hint: SizeLarge, cols: 2, rows: 2},
		{hint: SizeWide, cols: 2, rows: 1},
		{hint: SizeTall, cols: 1, rows: 2},
		{hint: SizeSmall, cols: 1, rows: 1},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			for i := 0; i < 7; i++ {
				span := AssignSpan(tt.hint, i, 0)
				assert.Equal(t, tt.cols, span.Cols)
				assert.Equal(t, tt.rows, span.Rows)
			}
		})
	}
}

func TestAssignSpan_ExplicitColumnsIsUniform(t *testing.T) {
	for _, hint := range []string{SizeLarge, SizeWide, SizeTall, SizeSmall, SizeMedium, ""} {
		for i := 0; i < 5; i++ {
			span := AssignSpan(hint, i, 3)
			assert.Equal(t, 1, span.Cols)
			assert.Equal(t, 1, span.Rows)
			assert.Equal(t, "col-span-1 row-span-1", span.Class)
		}
	}
}

func TestAssignSpan_DefaultPatternRepeats(t *testing.T) {
	want := []struct{ cols, rows int }{
		{1, 1}, {1, 1}, {1, 2}, {2, 1}, {1, 1},
	}

	for _, hint := range []string{"", SizeMedium, "enormous"} {
		first := make([]Span, 0, 10)
		for i := 0; i < 10; i++ {
			span := AssignSpan(hint, i, 0)
			assert.Equal(t, want[i%5].cols, span.Cols, "index %d", i)
			assert.Equal(t, want[i%5].rows, span.Rows, "index %d", i)
			first = append(first, span)
		}

		for i := 0; i < 10; i++ {
			assert.Equal(t, first[i], AssignSpan(hint, i, 0))
		}
		assert.Equal(t, first[:5], first[5:])
	}
}

func TestContainerClass(t *testing.T) {
	assert.Contains(t, ContainerClass(2), "sm:grid-cols-2")
	assert.NotContains(t, ContainerClass(2), "md:grid-cols-3")
	assert.Contains(t, ContainerClass(3), "md:grid-cols-3")
	assert.Contains(t, ContainerClass(4), "lg:grid-cols-4")
	assert.Contains(t, ContainerClass(0), "xl:grid-cols-5")
}
