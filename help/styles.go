package help

import (
	"github.com/gdamore/tcell/v3"

	"github.com/ayn2op/dyntable"
)

// Styles holds the styles of the key, description and separator segments in
// short and full mode.
type Styles struct {
	ShortKeyStyle       tcell.Style
	ShortDescStyle      tcell.Style
	ShortSeparatorStyle tcell.Style

	FullKeyStyle       tcell.Style
	FullDescStyle      tcell.Style
	FullSeparatorStyle tcell.Style

	EllipsisStyle tcell.Style
}

// DefaultStyles derives the help styles from dyntable.Styles: keys in the
// secondary text color, descriptions in the primary one and separators dimmed.
func DefaultStyles() Styles {
	base := tcell.StyleDefault.Background(dyntable.Styles.PrimitiveBackgroundColor)
	key := base.Foreground(dyntable.Styles.SecondaryTextColor)
	desc := base.Foreground(dyntable.Styles.PrimaryTextColor)
	dim := desc.Dim(true)
	return Styles{
		ShortKeyStyle:       key,
		ShortDescStyle:      desc,
		ShortSeparatorStyle: dim,
		FullKeyStyle:        key,
		FullDescStyle:       desc,
		FullSeparatorStyle:  dim,
		EllipsisStyle:       dim,
	}
}
