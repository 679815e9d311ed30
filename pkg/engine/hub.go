package engine

import (
	"context"
	"sort"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/insertsym/pkg/symbol"
)

// 📝 Surface is one editable text area with its own match list snapshot
type Surface struct {
	ID     string
	Name   string
	engine *Engine
}

// Evaluate runs the surface's engine.
func (s *Surface) Evaluate(ev Event) Result {
	return s.engine.Evaluate(ev)
}

// MatchList returns the surface's snapshot.
func (s *Surface) MatchList() []symbol.MatchEntry {
	return s.engine.MatchList()
}

// ⌨️ Type inserts r at cursor, evaluates the keystroke and applies any
// replacement. It returns the resulting text, caret and evaluation result.
func (s *Surface) Type(text string, cursor int, r rune) (string, int, Result) {
	runes := []rune(text)
	cursor = clamp(cursor, 0, len(runes))

	next := make([]rune, 0, len(runes)+1)
	next = append(next, runes[:cursor]...)
	next = append(next, r)
	next = append(next, runes[cursor:]...)

	kind := KeyChar
	if unicode.IsSpace(r) {
		kind = KeyDelimiter
	}

	res := s.engine.Evaluate(Event{
		PrevText: text,
		Text:     string(next),
		Cursor:   cursor + 1,
		Trigger:  kind,
	})
	if !res.Matched {
		return string(next), cursor + 1, res
	}
	out, caret := Apply(string(next), res)
	return out, caret + res.Trailing, res
}

// Finish evaluates a Commit event at cursor, for end of input without a
// trailing delimiter.
func (s *Surface) Finish(text string, cursor int) (string, int, Result) {
	res := s.engine.Evaluate(Event{PrevText: text, Text: text, Cursor: cursor, Trigger: Commit})
	if !res.Matched {
		return text, cursor, res
	}
	out, caret := Apply(text, res)
	return out, caret, res
}

// 📡 Hub tracks open surfaces and pushes match list changes to all of them
// synchronously.
type Hub struct {
	list     []symbol.MatchEntry
	surfaces map[string]*Surface
}

// NewHub creates a hub whose new surfaces start from list.
func NewHub(list []symbol.MatchEntry) *Hub {
	return &Hub{
		list:     list,
		surfaces: make(map[string]*Surface),
	}
}

// Register opens a surface with the hub's current match list.
func (h *Hub) Register(name string) *Surface {
	s := &Surface{
		ID:     uuid.NewString(),
		Name:   name,
		engine: New(h.list),
	}
	h.surfaces[s.ID] = s
	return s
}

// Unregister closes the surface with id. Unknown ids are ignored.
func (h *Hub) Unregister(id string) {
	delete(h.surfaces, id)
}

// Surfaces returns the open surfaces ordered by name then id.
func (h *Hub) Surfaces() []*Surface {
	out := make([]*Surface, 0, len(h.surfaces))
	for _, s := range h.surfaces {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Broadcast replaces the match list of the hub and every open surface.
func (h *Hub) Broadcast(ctx context.Context, list []symbol.MatchEntry) {
	h.list = append([]symbol.MatchEntry(nil), list...)
	for _, s := range h.surfaces {
		s.engine.SetMatchList(h.list)
	}
	zerolog.Ctx(ctx).Debug().
		Int("surfaces", len(h.surfaces)).
		Int("entries", len(h.list)).
		Msg("broadcast match list")
}
