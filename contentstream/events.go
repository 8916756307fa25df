package contentstream

import (
	"github.com/ternpdf/tern/model"
)

// EventType tags a drawing event with its category.
type EventType int

const (
	// EventStateChange records a color, line width, or transform update.
	EventStateChange EventType = iota
	// EventPathConstruct records a move-to, line-to, or rectangle operator.
	EventPathConstruct
	// EventPathPaint records a stroke/fill operator ending a path.
	EventPathPaint
	// EventPlacement records an XObject placement (Do).
	EventPlacement
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventStateChange:
		return "state-change"
	case EventPathConstruct:
		return "path-construct"
	case EventPathPaint:
		return "path-paint"
	case EventPlacement:
		return "placement"
	default:
		return "unknown"
	}
}

// State is the running graphics state threaded through a scan. It is a
// single record: q/Q nesting is not modeled, each state operator overwrites
// the previous value.
type State struct {
	StrokeColor [3]float64
	FillColor   [3]float64
	StrokeSet   bool
	FillSet     bool
	LineWidth   float64
	Matrix      model.Matrix
	// MatrixSet records that a cm operator has assigned the matrix;
	// placements resolved from the untouched identity would be bogus.
	MatrixSet bool
}

// NewState returns the default graphics state.
func NewState() State {
	return State{LineWidth: 1, Matrix: model.Identity()}
}

// Event is one drawing event produced by Scan. State is the graphics state
// in effect when the event fired (after state changes were applied).
type Event struct {
	Type  EventType
	Op    string
	State State

	// Placement fields.
	XObject string

	// Path construction fields: Point for m/l, Rect operands (x, y, w, h in
	// PDF bottom-left space) for re.
	Point model.Point
	Rect  [4]float64

	// Path painting fields.
	Stroke bool
	Fill   bool
}

// Scan converts operations into ordered drawing events, threading the
// graphics state explicitly. Operators outside the recognized grammar are
// skipped.
func Scan(ops []Operation) []Event {
	var events []Event
	st := NewState()

	for _, op := range ops {
		var next State
		var ev Event
		var emit bool
		next, ev, emit = apply(st, op)
		st = next
		if emit {
			events = append(events, ev)
		}
	}
	return events
}

// apply advances the state by one operation and reports the event to emit,
// if any.
func apply(st State, op Operation) (State, Event, bool) {
	switch op.Operator {
	// State changes.
	case "cm":
		if len(op.Operands) == 6 {
			st.Matrix = model.Matrix{op.Float(0), op.Float(1), op.Float(2), op.Float(3), op.Float(4), op.Float(5)}
			st.MatrixSet = true
		}
		return st, Event{Type: EventStateChange, Op: op.Operator, State: st}, true
	case "w":
		st.LineWidth = op.Float(0)
		return st, Event{Type: EventStateChange, Op: op.Operator, State: st}, true
	case "RG":
		st.StrokeColor = [3]float64{op.Float(0), op.Float(1), op.Float(2)}
		st.StrokeSet = true
		return st, Event{Type: EventStateChange, Op: op.Operator, State: st}, true
	case "rg":
		st.FillColor = [3]float64{op.Float(0), op.Float(1), op.Float(2)}
		st.FillSet = true
		return st, Event{Type: EventStateChange, Op: op.Operator, State: st}, true
	case "G":
		v := op.Float(0)
		st.StrokeColor = [3]float64{v, v, v}
		st.StrokeSet = true
		return st, Event{Type: EventStateChange, Op: op.Operator, State: st}, true
	case "g":
		v := op.Float(0)
		st.FillColor = [3]float64{v, v, v}
		st.FillSet = true
		return st, Event{Type: EventStateChange, Op: op.Operator, State: st}, true

	// Path construction.
	case "m", "l":
		if len(op.Operands) < 2 {
			return st, Event{}, false
		}
		return st, Event{
			Type:  EventPathConstruct,
			Op:    op.Operator,
			State: st,
			Point: model.Point{X: op.Float(0), Y: op.Float(1)},
		}, true
	case "re":
		if len(op.Operands) < 4 {
			return st, Event{}, false
		}
		return st, Event{
			Type:  EventPathConstruct,
			Op:    op.Operator,
			State: st,
			Rect:  [4]float64{op.Float(0), op.Float(1), op.Float(2), op.Float(3)},
		}, true

	// Path painting.
	case "S", "s":
		return st, Event{Type: EventPathPaint, Op: op.Operator, State: st, Stroke: true}, true
	case "f", "F", "f*":
		return st, Event{Type: EventPathPaint, Op: op.Operator, State: st, Fill: true}, true
	case "B", "B*", "b", "b*":
		return st, Event{Type: EventPathPaint, Op: op.Operator, State: st, Stroke: true, Fill: true}, true
	case "n":
		return st, Event{Type: EventPathPaint, Op: op.Operator, State: st}, true

	// Placement.
	case "Do":
		name, ok := op.Name(0)
		if !ok {
			return st, Event{}, false
		}
		return st, Event{Type: EventPlacement, Op: op.Operator, State: st, XObject: name}, true
	}

	return st, Event{}, false
}

// Placement is the absolute position of a placed XObject in top-left page
// space.
type Placement struct {
	X, Y          float64
	Width, Height float64
}

// ResolvePlacements maps XObject names to absolute positions. The transform
// in effect at each Do is read as scaleX=a, scaleY=d, translateX=e,
// translateY=f; the placement converts to top-left space as
// (e, pageHeight-f-d) with size (a, d). Shear and rotation components are
// ignored. A Do with no preceding cm resolves no placement; the caller falls
// back to the image's declared pixel size.
func ResolvePlacements(ops []Operation, pageHeight float64) map[string]Placement {
	placements := make(map[string]Placement)
	for _, ev := range Scan(ops) {
		if ev.Type != EventPlacement || !ev.State.MatrixSet {
			continue
		}
		m := ev.State.Matrix
		placements[ev.XObject] = Placement{
			X:      m.TranslateX(),
			Y:      pageHeight - m.TranslateY() - m.ScaleY(),
			Width:  m.ScaleX(),
			Height: m.ScaleY(),
		}
	}
	return placements
}
