package grid

import "fmt"

// Layout is one of the fixed grid shapes of the pinned grid.
type Layout string

const (
	Layout2x2 Layout = "2x2"
	Layout3x2 Layout = "3x2"
	Layout4x4 Layout = "4x4"

	DefaultLayout = Layout3x2

	// spareRows are appended below the last pinned row as drop targets.
	spareRows = 2
)

// Layouts lists the selectable shapes in display order.
var Layouts = []Layout{Layout2x2, Layout3x2, Layout4x4}

type Config struct {
	Layout        Layout `json:"layout"`
	Cols          int    `json:"cols"`
	MinRows       int    `json:"minRows"`
	GridClassName string `json:"gridClassName"`
	// FixedSlots is the slot count of the fixed-capacity grid.
	FixedSlots int `json:"fixedSlots"`
}

// ParseLayout maps s to a Layout; unknown values fall back to DefaultLayout.
func ParseLayout(s string) (Layout, bool) {
	switch Layout(s) {
	case Layout2x2, Layout3x2, Layout4x4:
		return Layout(s), true
	}
	return DefaultLayout, false
}

func ForLayout(l Layout) Config {
	var cols, rows int
	switch l {
	case Layout2x2:
		cols, rows = 2, 2
	case Layout4x4:
		cols, rows = 4, 4
	default:
		l = Layout3x2
		cols, rows = 3, 2
	}
	return Config{
		Layout:        l,
		Cols:          cols,
		MinRows:       rows,
		GridClassName: fmt.Sprintf("grid-cols-%d", cols),
		FixedSlots:    cols * rows,
	}
}

// TotalSlots is the dynamic slot count: enough rows for every pinned product
// plus spare rows, never fewer than the layout's minimum.
func (c Config) TotalSlots(selected int) int {
	if selected < 0 {
		selected = 0
	}
	needed := (selected + c.Cols - 1) / c.Cols
	rows := needed + spareRows
	if rows < c.MinRows {
		rows = c.MinRows
	}
	return rows * c.Cols
}

// TotalSlots is shorthand for ForLayout(l).TotalSlots(selected).
func TotalSlots(l Layout, selected int) int {
	return ForLayout(l).TotalSlots(selected)
}
