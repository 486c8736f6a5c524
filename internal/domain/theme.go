package domain

// Theme is a preset look applied in viewing mode in place of the player's
// own decorations.
type Theme struct {
	Name    string
	Body    uint32
	Cream   uint32
	Topping string
}

// ThemeCustom is the theme index meaning "show the player's own cake".
const ThemeCustom = -1

// Themes are cycled in order by the theme toggle, wrapping back to custom.
var Themes = []Theme{
	{Name: "chocolate", Body: 0x4a2c2a, Cream: 0x7b3f00, Topping: "chocolate"},
	{Name: "strawberry", Body: 0xffe0e0, Cream: 0xffffff, Topping: "strawberry"},
	{Name: "sweet potato", Body: 0xc8a2c8, Cream: 0xffd700, Topping: "sweetpotato"},
	{Name: "matcha", Body: 0xc0c8a0, Cream: 0x5a8d41, Topping: "matcha"},
}

// LightColors are cycled by the light toggle.
var LightColors = []uint32{0xffffff, 0xffddaa, 0xaaddff, 0xffaadd}

// CreamColors are the palette cream swatches.
var CreamColors = map[string]uint32{
	"white":     0xffffff,
	"pink":      0xf8bbd0,
	"chocolate": 0x7b3f00,
	"mint":      0xa8e6cf,
	"lemon":     0xfff59d,
}

// DefaultCreamColor is the cream top before any colour change.
const DefaultCreamColor uint32 = 0xffffff
