package domain

import "time"

// RhythmView is the presentation view of the mixing minigame.
type RhythmView struct {
	Targets   []Direction
	Cursor    int
	Score     float64
	Remaining time.Duration
	Active    bool
}

// BakeView is the presentation view of the oven.
type BakeView struct {
	Poured    bool
	PanInOven bool
	DoorOpen  bool
	Baking    bool
	Progress  float64
	Outcome   BakeOutcome
}

// Snapshot is a copy of everything the presentation layer needs for one
// frame. It shares no memory with the engine.
type Snapshot struct {
	Stage            StageState
	Score            int
	Permanent        float64
	ItemCount        int
	Completeness     float64
	IngredientsAdded int
	NextIngredient   Ingredient
	Rhythm           RhythmView
	MixingRatio      float64
	BatterColor      string
	Bake             BakeView
	CakeColor        string
	Items            []PlacedItem
	Selected         ItemKind
	CreamColor       uint32
	Balance          int
	ThemeIndex       int
	LightIndex       int
	Candle           bool
	Spinning         bool
	SpinAngle        float64
	Message          string
	Tick             uint64
}
