package view

// ColorPair is a foreground/background pair of hex colors.
type ColorPair struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
}

// Palette is the ordered list of colors cycled across live channels.
type Palette []ColorPair

// DefaultPalette is used by [RenderRegistry].
var DefaultPalette = Palette{
	{Foreground: "#FFFFFF", Background: "#6441A5"},
	{Foreground: "#1B1B1B", Background: "#04B575"},
	{Foreground: "#FFFFFF", Background: "#D7263D"},
	{Foreground: "#1B1B1B", Background: "#F4D35E"},
	{Foreground: "#FFFFFF", Background: "#1B998B"},
	{Foreground: "#1B1B1B", Background: "#FFA500"},
	{Foreground: "#FFFFFF", Background: "#2E86AB"},
	{Foreground: "#FFFFFF", Background: "#A23B72"},
}

var (
	OfflineColors = ColorPair{Foreground: "#9E9E9E", Background: "#2B2B2B"}
	ErrorColors   = ColorPair{Foreground: "#FF8A80", Background: "#3A1F1F"}
	FillerColors  = ColorPair{}
)

// At returns the color for the i-th live item, wrapping around.
// An empty palette yields [OfflineColors].
func (p Palette) At(i int) ColorPair {
	if len(p) == 0 {
		return OfflineColors
	}
	return p[i%len(p)]
}
