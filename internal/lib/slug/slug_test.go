package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Hello World", want: "hello-world"},
		{in: "  Hello,   World!  ", want: "hello-world"},
		{in: "Gödel, Escher, Bach", want: "godel-escher-bach"},
		{in: "Crème brûlée 101", want: "creme-brulee-101"},
		{in: "---", want: ""},
		{in: "Go 1.23 release notes", want: "go-1-23-release-notes"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("hello-world"))
	assert.True(t, Valid("a1"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("Hello"))
	assert.False(t, Valid("hello--world"))
	assert.False(t, Valid("-hello"))
	assert.False(t, Valid("hello world"))
}
