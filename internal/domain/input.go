package domain

// Direction is one of the four rhythm-mixing arrows.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions is the rhythm alphabet in a stable order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Symbol returns the arrow glyph shown on the rhythm strip.
func (d Direction) Symbol() string {
	switch d {
	case DirUp:
		return "↑"
	case DirDown:
		return "↓"
	case DirLeft:
		return "←"
	case DirRight:
		return "→"
	default:
		return "?"
	}
}

// Ingredient is something added to the mixing bowl.
type Ingredient int

const (
	IngredientNone Ingredient = iota
	IngredientFlour
	IngredientSugar
	IngredientEgg
	IngredientMilk
)

// RequiredIngredients is the fixed order the batter must be assembled in.
var RequiredIngredients = []Ingredient{IngredientFlour, IngredientSugar, IngredientEgg, IngredientMilk}

// String returns the ingredient name.
func (i Ingredient) String() string {
	switch i {
	case IngredientFlour:
		return "flour"
	case IngredientSugar:
		return "sugar"
	case IngredientEgg:
		return "egg"
	case IngredientMilk:
		return "milk"
	default:
		return "none"
	}
}

// IngredientFromString converts an ingredient name. Returns IngredientNone
// for unrecognized names.
func IngredientFromString(name string) Ingredient {
	for _, ing := range RequiredIngredients {
		if ing.String() == name {
			return ing
		}
	}
	return IngredientNone
}

// Target names the clickable props of the baking step.
type Target int

const (
	TargetNone Target = iota
	TargetBowl
	TargetPan
	TargetDoor
)

// String returns the target name.
func (t Target) String() string {
	switch t {
	case TargetBowl:
		return "bowl"
	case TargetPan:
		return "pan"
	case TargetDoor:
		return "door"
	default:
		return "none"
	}
}

// EventType classifies a player input.
type EventType int

const (
	EventNone       EventType = iota
	EventConfirm              // space / enter
	EventContinue             // leave the bake result screen
	EventIngredient           // ingredient clicked
	EventDirection            // arrow key
	EventTarget               // bowl, pan or oven door clicked
	EventSelect               // palette topping chosen
	EventSelectCream          // palette cream colour chosen
	EventClick                // pointer click on the cake top
	EventDragStart            // piping bag pressed
	EventDragMove             // piping bag moved
	EventDragEnd              // piping bag released
	EventTheme                // cycle the viewing theme
	EventLight                // cycle the light colour
	EventCandle               // toggle the candle
	EventSpin                 // toggle topping rotation
	EventRedecorate           // back to decorating from viewing
	EventRestart              // start a fresh cake
)

// String returns a human-readable event type.
func (e EventType) String() string {
	switch e {
	case EventConfirm:
		return "confirm"
	case EventContinue:
		return "continue"
	case EventIngredient:
		return "ingredient"
	case EventDirection:
		return "direction"
	case EventTarget:
		return "target"
	case EventSelect:
		return "select"
	case EventSelectCream:
		return "select_cream"
	case EventClick:
		return "click"
	case EventDragStart:
		return "drag_start"
	case EventDragMove:
		return "drag_move"
	case EventDragEnd:
		return "drag_end"
	case EventTheme:
		return "theme"
	case EventLight:
		return "light"
	case EventCandle:
		return "candle"
	case EventSpin:
		return "spin"
	case EventRedecorate:
		return "redecorate"
	case EventRestart:
		return "restart"
	default:
		return "none"
	}
}

// Event is a resolved player input. Only the field matching Type is set.
type Event struct {
	Type       EventType
	Direction  Direction
	Ingredient Ingredient
	Target     Target
	Kind       ItemKind
	Color      uint32
	Pos        Vec2
}
