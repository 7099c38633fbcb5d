// Package grid assigns responsive grid spans to collection cards.
package grid

const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
	SizeWide   = "wide"
	SizeTall   = "tall"
)

// Span is the footprint of one card on a desktop grid. Mobile is always a
// single column.
type Span struct {
	Cols  int    `json:"cols"`
	Rows  int    `json:"rows"`
	Class string `json:"class"`
}

var (
	uniform = Span{Cols: 1, Rows: 1, Class: "col-span-1 row-span-1"}
	large   = Span{Cols: 2, Rows: 2, Class: "col-span-1 sm:col-span-2 sm:row-span-2"}
	wide    = Span{Cols: 2, Rows: 1, Class: "col-span-1 sm:col-span-2 sm:row-span-1"}
	tall    = Span{Cols: 1, Rows: 2, Class: "col-span-1 sm:row-span-2"}
	small   = Span{Cols: 1, Rows: 1, Class: "col-span-1 row-span-1"}
)

// pattern repeats every five cards when no explicit size is given.
var pattern = [5]Span{
	{Cols: 1, Rows: 1, Class: "col-span-1 row-span-1"},
	{Cols: 1, Rows: 1, Class: "col-span-1 sm:col-span-1 row-span-1"},
	{Cols: 1, Rows: 2, Class: "col-span-1 sm:row-span-2"},
	{Cols: 2, Rows: 1, Class: "col-span-1 sm:col-span-2 sm:row-span-1"},
	{Cols: 1, Rows: 1, Class: "col-span-1 row-span-1"},
}

// AssignSpan maps a size hint and the card position to its span. A positive
// columns value requests a uniform layout and overrides the hint.
func AssignSpan(hint string, index int, columns int) Span {
	if columns > 0 {
		return uniform
	}

	switch hint {
	case SizeLarge:
		return large
	case SizeWide:
		return wide
	case SizeTall:
		return tall
	case SizeSmall:
		return small
	}

	if index < 0 {
		index = -index
	}

	return pattern[index%len(pattern)]
}

// ContainerClass returns the grid container class for a column count.
func ContainerClass(columns int) string {
	switch columns {
	case 2:
		return "grid grid-cols-1 gap-4 sm:grid-cols-2 sm:auto-rows-[minmax(140px,auto)]"
	case 3:
		return "grid grid-cols-1 gap-4 sm:grid-cols-2 md:grid-cols-3 sm:auto-rows-[minmax(160px,auto)]"
	case 4:
		return "grid grid-cols-1 gap-4 sm:grid-cols-2 md:grid-cols-3 lg:grid-cols-4 sm:auto-rows-[minmax(160px,auto)]"
	default:
		return "grid grid-cols-1 gap-4 sm:grid-cols-2 sm:auto-rows-[minmax(180px,auto)] md:grid-cols-3 md:gap-5 lg:grid-cols-4 lg:gap-6 xl:grid-cols-5"
	}
}
