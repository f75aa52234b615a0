package dyntable

// BorderSet holds the glyphs of a box border.
type BorderSet struct {
	Horizontal  string
	Vertical    string
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
}

var borderSets = map[string]BorderSet{
	"plain":  {"─", "│", "┌", "┐", "└", "┘"},
	"round":  {"─", "│", "╭", "╮", "╰", "╯"},
	"thick":  {"━", "┃", "┏", "┓", "┗", "┛"},
	"hidden": {" ", " ", " ", " ", " ", " "},
}

// BorderSetByName returns the border set called name: plain (also the empty
// name), round, thick or hidden. A hidden border is blank but still takes
// up its cells.
func BorderSetByName(name string) (BorderSet, bool) {
	if name == "" {
		name = "plain"
	}
	set, ok := borderSets[name]
	return set, ok
}

// Borders selects the sides of a box that have a border.
type Borders uint8

const (
	BordersTop Borders = 1 << iota
	BordersBottom
	BordersLeft
	BordersRight

	BordersNone Borders = 0
	BordersAll          = BordersTop | BordersBottom | BordersLeft | BordersRight
)

// Has reports whether every side in sides is set.
func (b Borders) Has(sides Borders) bool {
	return b&sides == sides
}
