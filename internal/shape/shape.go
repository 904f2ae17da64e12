// Package shape holds the annotation shapes and the protocol that creates
// them from pointer gestures.
package shape

import (
	"math"
	"sort"
	"sync/atomic"

	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/toolbar"
	"github.com/example/markshot/internal/ui"
)

// arrowAngle is the half opening of arrowheads and marker tails.
const arrowAngle = math.Pi * 2 / 15

// ID identifies a shape for the lifetime of the process.
type ID uint32

// Counter hands out increasing values starting at 1. Values are never
// reused.
type Counter struct {
	last atomic.Uint32
}

// Next consumes and returns the next value.
func (c *Counter) Next() uint32 { return c.last.Add(1) }

// Peek returns the value Next would return.
func (c *Counter) Peek() uint32 { return c.last.Load() + 1 }

// Kind is the variant of a shape.
type Kind int

const (
	KindRectangle Kind = iota
	KindCircle
	KindLine
	KindPen
	KindNumber
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "Rectangle"
	case KindCircle:
		return "Circle"
	case KindLine:
		return "Line"
	case KindPen:
		return "Pen"
	case KindNumber:
		return "Number"
	case KindText:
		return "Text"
	}
	return "Unknown"
}

// Shape is an annotation. Geometry is kept in ratio space.
type Shape interface {
	Kind() Kind
	// Render draws the shape and runs its controls. It reports whether the
	// shape is the active one after this frame: the active shape keeps
	// itself active, an inactive one becomes active when clicked.
	Render(f *ui.Frame, id ID, active bool) bool
	// Toolbar adds the shape's live attributes to form.
	Toolbar(form *toolbar.Form)
	// OnCreateResponse extends a freshly created shape with the drag that
	// created it.
	OnCreateResponse(f *ui.Frame, resp ui.Response)
}

// Factory builds a shape at a render space position.
type Factory func(pos geom.Point, info ui.RenderInfo) Shape

func widgetID(id ID) ui.ID {
	return ui.NewID("shape", uint64(id), 0)
}

// Set owns the shapes of a session.
type Set struct {
	m map[ID]Shape
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{m: make(map[ID]Shape)}
}

// Insert stores s under id.
func (s *Set) Insert(id ID, sh Shape) { s.m[id] = sh }

// Remove deletes id and reports whether it existed.
func (s *Set) Remove(id ID) bool {
	_, ok := s.m[id]
	delete(s.m, id)
	return ok
}

// Get looks a shape up.
func (s *Set) Get(id ID) (Shape, bool) {
	sh, ok := s.m[id]
	return sh, ok
}

// Len is the number of shapes.
func (s *Set) Len() int { return len(s.m) }

// IDs returns the ids in ascending order, which is creation order.
func (s *Set) IDs() []ID {
	ids := make([]ID, 0, len(s.m))
	for id := range s.m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Selection is the optional active shape.
type Selection struct {
	id ID
	ok bool
}

// Select makes id active.
func (s *Selection) Select(id ID) { s.id, s.ok = id, true }

// Clear drops the selection.
func (s *Selection) Clear() { s.id, s.ok = 0, false }

// Get returns the active id.
func (s Selection) Get() (ID, bool) { return s.id, s.ok }

// Is reports whether id is active.
func (s Selection) Is(id ID) bool { return s.ok && s.id == id }

// Valid reports whether a shape is active.
func (s Selection) Valid() bool { return s.ok }

// RenderAll draws every shape in creation order and settles which one is
// active. A shape clicked this frame wins over the one that was active. In
// shot mode shapes are drawn inactive and the selection is left alone.
func RenderAll(f *ui.Frame, set *Set, active *Selection) {
	var next Selection
	for _, id := range set.IDs() {
		sh := set.m[id]
		if f.Info.ShotMode {
			sh.Render(f, id, false)
			continue
		}
		was := active.Is(id)
		if !sh.Render(f, id, was) {
			continue
		}
		if !was || !next.Valid() {
			next.Select(id)
		}
	}
	if !f.Info.ShotMode {
		*active = next
	}
}

// HandleCreate routes the background response to the armed creation tool.
// A click creates a shape unless one is active, in which case it only
// deselects. A drag always creates a shape and then keeps feeding the drag
// to it while it stays active.
func HandleCreate(f *ui.Frame, resp ui.Response, set *Set, ids *Counter, active *Selection, create Factory) {
	switch {
	case resp.Clicked:
		if active.Valid() {
			active.Clear()
			return
		}
		id := ID(ids.Next())
		set.Insert(id, create(resp.Pos, f.Info))
		active.Select(id)
	case resp.DragStarted:
		id := ID(ids.Next())
		sh := create(resp.Origin, f.Info)
		set.Insert(id, sh)
		active.Select(id)
		sh.OnCreateResponse(f, resp)
	case resp.Dragged || resp.DragStopped:
		id, ok := active.Get()
		if !ok {
			return
		}
		if sh, ok := set.Get(id); ok {
			sh.OnCreateResponse(f, resp)
		}
	}
}
