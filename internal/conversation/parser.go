// Package conversation turns typed commands into game events and prints
// feedback back to the player.
package conversation

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/hammamikhairi/ottocake/internal/domain"
	"github.com/hammamikhairi/ottocake/internal/logger"
)

// KeywordParser matches typed input to game events. Words are matched
// exactly first, then by edit distance, so "strawbery" still works.
type KeywordParser struct {
	log   *logger.Logger
	words map[string]domain.Event // single-word commands
	verbs map[string]string       // verb aliases to canonical verb
	vocab []string                // every known word, sorted
}

// Canonical verbs that take arguments.
const (
	verbAdd    = "add"
	verbSelect = "select"
	verbCream  = "cream"
	verbPlace  = "place"
	verbPipe   = "pipe"
	verbDrag   = "drag"
)

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{
		log:   log,
		words: make(map[string]domain.Event),
		verbs: map[string]string{
			"add":    verbAdd,
			"put in": verbAdd,
			"select": verbSelect,
			"pick":   verbSelect,
			"use":    verbSelect,
			"cream":  verbCream,
			"place":  verbPlace,
			"click":  verbPlace,
			"put":    verbPlace,
			"drop":   verbPlace,
			"pipe":   verbPipe,
			"piping": verbPipe,
			"drag":   verbDrag,
			"move":   verbDrag,
		},
	}

	confirm := domain.Event{Type: domain.EventConfirm}
	for _, w := range []string{"start", "go", "begin", "space", "done", "finish", "ok"} {
		p.words[w] = confirm
	}
	for _, w := range []string{"continue", "next", "decorate"} {
		p.words[w] = domain.Event{Type: domain.EventContinue}
	}
	for _, d := range domain.Directions {
		p.words[d.String()] = domain.Event{Type: domain.EventDirection, Direction: d}
	}
	for _, ing := range domain.RequiredIngredients {
		p.words[ing.String()] = domain.Event{Type: domain.EventIngredient, Ingredient: ing}
	}
	p.words["eggs"] = domain.Event{Type: domain.EventIngredient, Ingredient: domain.IngredientEgg}

	for w, t := range map[string]domain.Target{
		"bowl": domain.TargetBowl,
		"pour": domain.TargetBowl,
		"pan":  domain.TargetPan,
		"door": domain.TargetDoor,
		"oven": domain.TargetDoor,
	} {
		p.words[w] = domain.Event{Type: domain.EventTarget, Target: t}
	}

	for _, k := range domain.PaletteKinds {
		p.words[k.String()] = domain.Event{Type: domain.EventSelect, Kind: k}
	}
	p.words["strawberries"] = domain.Event{Type: domain.EventSelect, Kind: domain.KindStrawberry}
	p.words["sprinkles"] = domain.Event{Type: domain.EventSelect, Kind: domain.KindSprinkle}
	p.words["cherries"] = domain.Event{Type: domain.EventSelect, Kind: domain.KindCherry}

	for w, t := range map[string]domain.EventType{
		"theme":      domain.EventTheme,
		"themes":     domain.EventTheme,
		"light":      domain.EventLight,
		"lights":     domain.EventLight,
		"candle":     domain.EventCandle,
		"spin":       domain.EventSpin,
		"rotate":     domain.EventSpin,
		"redecorate": domain.EventRedecorate,
		"restart":    domain.EventRestart,
		"reset":      domain.EventRestart,
		"release":    domain.EventDragEnd,
		"lift":       domain.EventDragEnd,
	} {
		p.words[w] = domain.Event{Type: t}
	}

	seen := make(map[string]bool)
	for w := range p.words {
		seen[w] = true
	}
	for v := range p.verbs {
		if !strings.Contains(v, " ") {
			seen[v] = true
		}
	}
	for c := range domain.CreamColors {
		seen[c] = true
	}
	for w := range seen {
		p.vocab = append(p.vocab, w)
	}
	sort.Strings(p.vocab)
	return p
}

// Parse converts one line of input into the events it stands for. An empty
// line confirms, like pressing space.
func (p *KeywordParser) Parse(input string) ([]domain.Event, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(fields) == 0 {
		return []domain.Event{{Type: domain.EventConfirm}}, nil
	}

	p.log.Debug("parsing input: %q", strings.Join(fields, " "))

	if len(fields) >= 2 {
		if v, ok := p.verbs[fields[0]+" "+fields[1]]; ok {
			return p.parseVerb(v, fields[2:], input)
		}
	}

	head := p.resolve(fields[0])
	if v, ok := p.verbs[head]; ok && (len(fields) > 1 || v == verbPipe) {
		return p.parseVerb(v, fields[1:], input)
	}
	if len(fields) == 1 {
		if ev, ok := p.words[head]; ok {
			p.log.Debug("matched %q as %s", head, ev.Type)
			return []domain.Event{ev}, nil
		}
	}

	p.log.Debug("no match for %q", input)
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCommand, strings.TrimSpace(input))
}

func (p *KeywordParser) parseVerb(verb string, args []string, input string) ([]domain.Event, error) {
	unknown := fmt.Errorf("%w: %q", domain.ErrUnknownCommand, strings.TrimSpace(input))

	switch verb {
	case verbAdd:
		if len(args) != 1 {
			return nil, unknown
		}
		ev, ok := p.words[p.resolve(args[0])]
		if !ok || ev.Type != domain.EventIngredient {
			return nil, unknown
		}
		return []domain.Event{ev}, nil

	case verbSelect:
		if len(args) != 1 {
			return nil, unknown
		}
		ev, ok := p.words[p.resolve(args[0])]
		if !ok || ev.Type != domain.EventSelect {
			return nil, unknown
		}
		return []domain.Event{ev}, nil

	case verbCream:
		if len(args) != 1 {
			return nil, unknown
		}
		c, ok := domain.CreamColors[p.resolve(args[0])]
		if !ok {
			return nil, unknown
		}
		return []domain.Event{{Type: domain.EventSelectCream, Color: c}}, nil

	case verbPlace:
		var out []domain.Event
		if len(args) == 3 {
			ev, ok := p.words[p.resolve(args[0])]
			if !ok || ev.Type != domain.EventSelect {
				return nil, unknown
			}
			out = append(out, ev)
			args = args[1:]
		}
		pts, err := parsePoints(args)
		if err != nil || len(pts) != 1 {
			return nil, unknown
		}
		return append(out, domain.Event{Type: domain.EventClick, Pos: pts[0]}), nil

	case verbPipe:
		if len(args) == 0 {
			return []domain.Event{{Type: domain.EventSelect, Kind: domain.KindPiping}}, nil
		}
		pts, err := parsePoints(args)
		if err != nil {
			return nil, unknown
		}
		// A stroke: press at the first point, drag through the rest, release.
		out := []domain.Event{
			{Type: domain.EventSelect, Kind: domain.KindPiping},
			{Type: domain.EventDragStart, Pos: pts[0]},
		}
		for _, pt := range pts[1:] {
			out = append(out, domain.Event{Type: domain.EventDragMove, Pos: pt})
		}
		return append(out, domain.Event{Type: domain.EventDragEnd}), nil

	case verbDrag:
		pts, err := parsePoints(args)
		if err != nil {
			return nil, unknown
		}
		out := make([]domain.Event, 0, len(pts))
		for _, pt := range pts {
			out = append(out, domain.Event{Type: domain.EventDragMove, Pos: pt})
		}
		return out, nil
	}
	return nil, unknown
}

// resolve maps a word to its closest known spelling. Short words must match
// exactly; longer ones may be off by a few edits. Ties are left unresolved.
func (p *KeywordParser) resolve(word string) string {
	if _, ok := p.words[word]; ok {
		return word
	}
	if _, ok := p.verbs[word]; ok {
		return word
	}
	if _, ok := domain.CreamColors[word]; ok {
		return word
	}
	if len(word) < 3 || isNumber(word) {
		return word
	}

	best, bestDist, tied := "", -1, false
	for _, cand := range p.vocab {
		dist := levenshtein.ComputeDistance(word, cand)
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		switch {
		case bestDist < 0 || dist < bestDist:
			best, bestDist, tied = cand, dist, false
		case dist == bestDist:
			tied = true
		}
	}
	if best == "" || tied {
		return word
	}
	p.log.Debug("fuzzy: %q -> %q (distance %d)", word, best, bestDist)
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// parsePoints reads x z pairs.
func parsePoints(args []string) ([]domain.Vec2, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, fmt.Errorf("expected x z pairs, got %d values", len(args))
	}
	out := make([]domain.Vec2, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		x, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, err
		}
		z, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return nil, err
		}
		if !finite(x) || !finite(z) {
			return nil, fmt.Errorf("coordinates must be finite, got %s %s", args[i], args[i+1])
		}
		out = append(out, domain.Vec2{X: x, Z: z})
	}
	return out, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
