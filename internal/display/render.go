package display

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/ottocake/internal/domain"
	"github.com/hammamikhairi/ottocake/internal/scoring"
)

// Cake map geometry. Terminal cells are about twice as tall as wide, so the
// map has roughly twice as many columns as rows.
const (
	mapCols    = 31
	mapRows    = 15
	cakeRadius = 1.5
	drizzleR   = 0.6
	themeR     = 0.8
)

var kindSymbols = map[domain.ItemKind]rune{
	domain.KindStrawberry: 'S',
	domain.KindCherry:     '@',
	domain.KindSprinkle:   '*',
	domain.KindPiping:     '~',
	domain.KindDrizzle:    'o',
}

var kindColors = map[domain.ItemKind]string{
	domain.KindStrawberry: "#e53935",
	domain.KindCherry:     "#b71c1c",
	domain.KindDrizzle:    "#5d3a1a",
}

var sprinkleColors = []string{"#f472b6", "#60a5fa", "#facc15", "#4ade80"}

var themeSymbols = map[string]rune{
	"chocolate":   'o',
	"strawberry":  'S',
	"sweetpotato": '#',
	"matcha":      '%',
}

// cell maps a cake-top position to a map cell. ok is false off the grid.
func cell(p domain.Vec2) (col, row int, ok bool) {
	col = int(math.Round((p.X + cakeRadius) / (2 * cakeRadius) * (mapCols - 1)))
	row = int(math.Round((p.Z + cakeRadius) / (2 * cakeRadius) * (mapRows - 1)))
	return col, row, col >= 0 && col < mapCols && row >= 0 && row < mapRows
}

// cellCentre is the cake-top position at the middle of a cell.
func cellCentre(col, row int) domain.Vec2 {
	return domain.Vec2{
		X: float64(col)/(mapCols-1)*2*cakeRadius - cakeRadius,
		Z: float64(row)/(mapRows-1)*2*cakeRadius - cakeRadius,
	}
}

func rotate(p domain.Vec2, angle float64) domain.Vec2 {
	if angle == 0 {
		return p
	}
	sin, cos := math.Sincos(angle)
	return domain.Vec2{X: p.X*cos - p.Z*sin, Z: p.X*sin + p.Z*cos}
}

type glyph struct {
	r     rune
	color string
	faint bool
}

// cakeGrid lays out the top-down cake map.
func cakeGrid(s domain.Snapshot, props Props) [][]glyph {
	grid := make([][]glyph, mapRows)
	base := s.CakeColor
	if base == "" {
		base = scoring.CakeRaw
	}
	if props.CreamTop {
		base = scoring.HexColor(s.CreamColor)
		if props.ThemeToppings {
			base = scoring.HexColor(domain.Themes[s.ThemeIndex].Cream)
		}
	}
	for row := range grid {
		grid[row] = make([]glyph, mapCols)
		for col := range grid[row] {
			if cellCentre(col, row).Len() <= cakeRadius {
				grid[row][col] = glyph{r: '.', color: base}
			} else {
				grid[row][col] = glyph{r: ' '}
			}
		}
	}

	put := func(p domain.Vec2, g glyph) {
		if col, row, ok := cell(p); ok {
			grid[row][col] = g
		}
	}
	ring := func(radius float64, n int, g glyph) {
		for i := 0; i < n; i++ {
			a := 2*math.Pi*float64(i)/float64(n) + s.SpinAngle
			put(domain.Vec2{X: radius * math.Cos(a), Z: radius * math.Sin(a)}, g)
		}
	}

	if props.CustomToppings {
		items := append([]domain.PlacedItem(nil), s.Items...)
		sort.SliceStable(items, func(i, j int) bool { return items[i].Seq < items[j].Seq })
		for _, it := range items {
			if it.Kind == domain.KindDrizzle {
				ring(drizzleR, 24, glyph{r: kindSymbols[it.Kind], color: kindColors[it.Kind]})
				continue
			}
			put(rotate(it.Pos, s.SpinAngle), glyph{r: kindSymbols[it.Kind], color: itemColor(it), faint: !it.Settled})
		}
	}
	if props.ThemeToppings {
		t := domain.Themes[s.ThemeIndex]
		ring(themeR, 8, glyph{r: themeSymbols[t.Topping], color: scoring.HexColor(t.Body)})
	}
	return grid
}

func itemColor(it domain.PlacedItem) string {
	switch it.Kind {
	case domain.KindPiping:
		return scoring.HexColor(it.Color)
	case domain.KindSprinkle:
		return sprinkleColors[it.ID%len(sprinkleColors)]
	default:
		return kindColors[it.Kind]
	}
}

// renderCake draws the cake map with the candle above it.
func renderCake(s domain.Snapshot, props Props) string {
	if !props.CakeBody {
		return ""
	}
	var b strings.Builder
	mid := strings.Repeat(" ", mapCols/2)
	if props.Flame {
		b.WriteString(mid + flameStyle.Render("*") + "\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString(mid + secondaryStyle.Render("|") + "\n")

	for _, row := range cakeGrid(s, props) {
		for _, g := range row {
			if g.r == ' ' {
				b.WriteByte(' ')
				continue
			}
			st := lipgloss.NewStyle().Foreground(lipgloss.Color(g.color)).Faint(g.faint)
			b.WriteString(st.Render(string(g.r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func renderIngredients(s domain.Snapshot) string {
	parts := make([]string, 0, len(domain.RequiredIngredients))
	for i, ing := range domain.RequiredIngredients {
		switch {
		case i < s.IngredientsAdded:
			parts = append(parts, doneStyle.Render("[x] "+ing.String()))
		case ing == s.NextIngredient:
			parts = append(parts, activeStyle.Render("[ ] "+ing.String()))
		default:
			parts = append(parts, pendingStyle.Render("[ ] "+ing.String()))
		}
	}
	return "  " + strings.Join(parts, "   ")
}

func renderRhythm(r domain.RhythmView) string {
	var b strings.Builder
	b.WriteString("  ")
	for i, d := range r.Targets {
		switch {
		case i < r.Cursor:
			b.WriteString(doneStyle.Render(d.Symbol()))
		case i == r.Cursor:
			b.WriteString(targetStyle.Render(d.Symbol()))
		default:
			b.WriteString(pendingStyle.Render(d.Symbol()))
		}
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "  %s  %s",
		labelStyle.Render(fmt.Sprintf("%.0f%%", r.Score)),
		valueStyle.Render(fmtSeconds(r.Remaining)))
	return b.String()
}

// ovenBarWidth spans progress 0 to ovenBarMax.
const (
	ovenBarWidth = 36
	ovenBarMax   = 1.2
)

func renderOven(b domain.BakeView, cakeColor string) string {
	check := func(done bool, label string) string {
		if done {
			return doneStyle.Render("[x] " + label)
		}
		return pendingStyle.Render("[ ] " + label)
	}
	steps := strings.Join([]string{
		check(b.Poured, "pour"),
		check(b.PanInOven, "pan in oven"),
		check(b.Baking || b.Outcome != domain.BakePending, "door closed"),
	}, "  ")
	if !b.Baking && b.Outcome == domain.BakePending {
		return "  " + steps
	}

	filled := int(math.Min(b.Progress, ovenBarMax) / ovenBarMax * ovenBarWidth)
	lo := int(0.9 / ovenBarMax * ovenBarWidth)
	hi := int(1.0 / ovenBarMax * ovenBarWidth)
	color := cakeColor
	if color == "" {
		color = scoring.CakeRaw
	}
	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(color))

	var bar strings.Builder
	for i := 0; i < ovenBarWidth; i++ {
		switch {
		case i < filled:
			bar.WriteString(fill.Render("#"))
		case i >= lo && i < hi:
			bar.WriteString(doneStyle.Render("-"))
		default:
			bar.WriteString(sepStyle.Render("-"))
		}
	}
	status := fmt.Sprintf("%3.0f%%", b.Progress*100)
	if b.Outcome != domain.BakePending {
		status += " " + b.Outcome.String()
	}
	return "  " + steps + "\n  [" + bar.String() + "] " + labelStyle.Render(status)
}

func renderPalette(s domain.Snapshot) string {
	parts := make([]string, 0, len(domain.PaletteKinds))
	for _, k := range domain.PaletteKinds {
		name := k.String()
		if k == domain.KindCream {
			name += " " + lipgloss.NewStyle().Foreground(lipgloss.Color(scoring.HexColor(s.CreamColor))).Render("■")
		}
		if k == s.Selected {
			parts = append(parts, targetStyle.Render("> ")+activeStyle.Render(name))
		} else {
			parts = append(parts, pendingStyle.Render("  "+name))
		}
	}
	return strings.Join(parts, " ")
}

func renderControls(s domain.Snapshot) string {
	theme := "custom"
	if s.ThemeIndex != domain.ThemeCustom {
		theme = domain.Themes[s.ThemeIndex].Name
	}
	return secondaryStyle.Render(fmt.Sprintf(
		"  k theme (%s)  l light  c candle  space spin  redecorate  restart", theme))
}

// RenderStage draws the scene for one snapshot: the props that are visible
// and the latest message.
func RenderStage(s domain.Snapshot) string {
	props := Visibility(s)
	var sections []string

	if s.Stage.Is(domain.ModeMaking, domain.StepIngredients) {
		sections = append(sections, renderIngredients(s))
	}
	if props.Batter {
		sw := lipgloss.NewStyle().Foreground(lipgloss.Color(s.BatterColor)).Render("~~~~~~")
		sections = append(sections, "  "+labelStyle.Render("batter ")+sw)
	}
	if props.RhythmStrip {
		sections = append(sections, renderRhythm(s.Rhythm))
	}
	if props.Oven {
		sections = append(sections, renderOven(s.Bake, s.CakeColor))
	}
	if props.CakeBody {
		sections = append(sections, renderCake(s, props))
	}
	if props.Palette {
		sections = append(sections, renderPalette(s))
	}
	if props.Controls {
		sections = append(sections, renderControls(s))
	}
	if s.Message != "" {
		sections = append(sections, chatStyle.Render("  "+s.Message))
	}
	return strings.Join(sections, "\n")
}

// renderBar is the one-line status bar.
func renderBar(s domain.Snapshot, width int) string {
	parts := []string{labelStyle.Render(s.Stage.String())}
	parts = append(parts, labelStyle.Render("score ")+valueStyle.Render(fmt.Sprintf("%d", s.Score)))
	if Visibility(s).ScoreOverlay || s.Stage.Mode == domain.ModeViewing {
		parts = append(parts, labelStyle.Render(fmt.Sprintf("%d items  %.0f%% complete", s.ItemCount, s.Completeness*100)))
	}
	if s.Stage.Mode == domain.ModeViewing {
		parts = append(parts, labelStyle.Render("balance ")+valueStyle.Render(fmt.Sprintf("+%d", s.Balance)))
	}

	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "
	if width <= 0 {
		width = 80
	}
	return barBg.Width(width).Render(content)
}

func fmtSeconds(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
