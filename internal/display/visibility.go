package display

import "github.com/hammamikhairi/ottocake/internal/domain"

// Props says which parts of the scene are on screen. It is derived from the
// stage alone; the engine never tracks visibility.
type Props struct {
	Bowl           bool
	Batter         bool
	RhythmStrip    bool
	Oven           bool
	CakeBody       bool
	CreamTop       bool
	Palette        bool
	ScoreOverlay   bool
	Controls       bool
	CustomToppings bool
	ThemeToppings  bool
	Flame          bool
}

// Visibility maps a snapshot to the props that should be drawn.
func Visibility(s domain.Snapshot) Props {
	p := Props{Flame: s.Candle}

	switch s.Stage.Mode {
	case domain.ModeMaking:
		step := s.Stage.Step
		p.Bowl = step < domain.StepBaking || (step == domain.StepBaking && !s.Bake.Poured)
		p.Batter = p.Bowl && step >= domain.StepMixing
		p.RhythmStrip = step == domain.StepMixing
		p.Oven = step == domain.StepBaking
		p.CakeBody = (step == domain.StepBaking && s.Bake.Poured) || step >= domain.StepBakeResult
		p.CreamTop = step >= domain.StepBakeResult

	case domain.ModeDecorating:
		p.CakeBody = true
		p.CreamTop = true
		p.Palette = true
		p.ScoreOverlay = true
		p.CustomToppings = true

	case domain.ModeViewing:
		p.CakeBody = true
		p.CreamTop = true
		p.Controls = true
		p.CustomToppings = s.ThemeIndex == domain.ThemeCustom
		p.ThemeToppings = !p.CustomToppings
	}
	return p
}
