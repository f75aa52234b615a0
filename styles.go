package dyntable

import (
	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
)

// Theme defines the colors used when primitives are initialized.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color // Main background color for primitives.
	BorderColor              tcell.Color // Box borders.
	TitleColor               tcell.Color // Box titles.
	PrimaryTextColor         tcell.Color // Primary text.
	SecondaryTextColor       tcell.Color // Secondary text (e.g. row captions).
	PlaceholderColor         tcell.Color // Rows whose content is not loaded yet.
	SelectedRowColor         tcell.Color // Background of the selected row.
}

// Styles defines the theme for applications. The default is for a black
// background with white text and yellow captions.
var Styles = Theme{
	PrimitiveBackgroundColor: color.Black,
	BorderColor:              color.White,
	TitleColor:               color.White,
	PrimaryTextColor:         color.White,
	SecondaryTextColor:       color.Yellow,
	PlaceholderColor:         color.Gray,
	SelectedRowColor:         color.Navy,
}
