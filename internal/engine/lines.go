package engine

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/ottocake/internal/domain"
)

// Player-facing lines. Everything the engine says to the player lives here
// so the wording stays consistent across the status bar and the log.

// ── Making ───────────────────────────────────────────────────────

func lineIntro() string {
	return "Welcome to the bakery. Press space to start."
}

func lineAddIngredient(next domain.Ingredient) string {
	return fmt.Sprintf("Add the %s.", next)
}

func lineIngredientAdded(added, next domain.Ingredient) string {
	return fmt.Sprintf("%s in. Now the %s.", capitalize(added.String()), next)
}

func lineWrongIngredient(want domain.Ingredient) string {
	return fmt.Sprintf("Not yet! The %s goes in next.", want)
}

// ── Mixing ───────────────────────────────────────────────────────

func lineMixStart(n int) string {
	return fmt.Sprintf("Everything's in. Mix! Hit the %d arrows before time runs out.", n)
}

func lineMixHit(cursor, total int) string {
	return fmt.Sprintf("Nice stir. %d/%d", cursor, total)
}

func lineMixMiss(cursor, total int) string {
	return fmt.Sprintf("Lumpy. %d/%d", cursor, total)
}

func lineMixResult(ratio float64, bonus int, timedOut bool) string {
	lead := "Batter done"
	if timedOut {
		lead = "Time's up"
	}
	switch {
	case ratio >= 0.9:
		return fmt.Sprintf("%s: silky smooth! +%d", lead, bonus)
	case ratio >= 0.5:
		return fmt.Sprintf("%s: a few lumps. +%d", lead, bonus)
	default:
		return fmt.Sprintf("%s: that's a lumpy batter. +%d", lead, bonus)
	}
}

// ── Baking ───────────────────────────────────────────────────────

func lineBakeSetup() string {
	return "Click the bowl to pour, then the pan into the oven, then close the door."
}

func linePoured() string { return "Batter poured. Put the pan in the oven." }

func linePanIn() string { return "Pan's in. Close the door to start baking." }

func lineBaking() string { return "Baking... open the door when it looks golden." }

func lineBurning() string { return "Something smells like burning!" }

func lineBakeResult(o domain.BakeOutcome, bonus int) string {
	switch o {
	case domain.BakePerfect:
		return fmt.Sprintf("Perfectly golden! +%d", bonus)
	case domain.BakeUnderbaked:
		return fmt.Sprintf("A little pale in the middle. +%d", bonus)
	default:
		return "Burnt. We'll cover it with cream."
	}
}

func lineContinue() string { return "Press enter to decorate." }

// ── Decorating ───────────────────────────────────────────────────

func lineDecorate() string {
	return "Decorate! Pick a topping from the palette and place it on the cake."
}

func lineSelected(kind domain.ItemKind) string {
	return fmt.Sprintf("Holding %s.", kind)
}

func lineCream(hex string) string {
	return fmt.Sprintf("Cream top now %s.", hex)
}

func linePlaced(kind domain.ItemKind, delta float64) string {
	if delta < 0 {
		return fmt.Sprintf("%s placed, a bit messy. %+.1f", capitalize(kind.String()), delta)
	}
	return fmt.Sprintf("%s placed. %+.1f", capitalize(kind.String()), delta)
}

func lineRejected(err error) string {
	return fmt.Sprintf("Can't place that: %v.", err)
}

// ── Viewing ──────────────────────────────────────────────────────

func lineViewing(score, balance int, grade string) string {
	return fmt.Sprintf("Finished! Score %d. Balance +%d, %s.", score, balance, grade)
}

func lineTheme(idx int) string {
	if idx == domain.ThemeCustom {
		return "Showing your own cake."
	}
	return fmt.Sprintf("Theme: %s.", domain.Themes[idx].Name)
}

func lineLight(idx int) string {
	return fmt.Sprintf("Light #%06x.", domain.LightColors[idx])
}

func lineCandle(on bool) string {
	if on {
		return "Candle lit."
	}
	return "Candle blown out."
}

func lineSpin(on bool) string {
	if on {
		return "Spinning."
	}
	return "Stopped."
}

func lineRestart() string { return "Fresh start. Press space to begin a new cake." }

// ── Helpers ──────────────────────────────────────────────────────

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
