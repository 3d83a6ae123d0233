package ink

// Model holds a pane's committed strokes together with its undo and redo
// stacks. Each stack entry is a snapshot (shallow copy) of the stroke list
// taken immediately before the change it reverses, giving standard linear
// history semantics: a fresh commit always clears the redo stack.
type Model struct {
	strokes []*Stroke
	undo    [][]*Stroke
	redo    [][]*Stroke
}

// NewModel returns an empty stroke model.
func NewModel() *Model {
	return &Model{}
}

// Strokes returns the committed strokes in insertion order.
// The returned slice must not be mutated by the caller.
func (m *Model) Strokes() []*Stroke {
	return m.strokes
}

// Len returns the number of committed strokes.
func (m *Model) Len() int {
	return len(m.strokes)
}

// Commit appends a finished stroke, pushing the pre-commit list onto the
// undo stack and discarding any redo entries.
func (m *Model) Commit(s *Stroke) {
	m.undo = append(m.undo, snapshot(m.strokes))
	m.redo = nil
	m.strokes = append(m.strokes, s)
}

// Undo restores the stroke list to its state before the most recent
// committed change. No-op when the undo stack is empty.
func (m *Model) Undo() {
	if len(m.undo) == 0 {
		return
	}
	m.redo = append(m.redo, snapshot(m.strokes))
	m.strokes = m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
}

// Redo reverses the most recent Undo. No-op when the redo stack is empty.
func (m *Model) Redo() {
	if len(m.redo) == 0 {
		return
	}
	m.undo = append(m.undo, snapshot(m.strokes))
	m.strokes = m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
}

// Clear removes all strokes as a single undoable action.
func (m *Model) Clear() {
	m.undo = append(m.undo, snapshot(m.strokes))
	m.redo = nil
	m.strokes = nil
}

// Reset discards strokes and both history stacks. Used when the pane's
// image is replaced wholesale.
func (m *Model) Reset() {
	m.strokes = nil
	m.undo = nil
	m.redo = nil
}

// CanUndo reports whether an Undo would change state.
func (m *Model) CanUndo() bool {
	return len(m.undo) > 0
}

// CanRedo reports whether a Redo would change state.
func (m *Model) CanRedo() bool {
	return len(m.redo) > 0
}

func snapshot(strokes []*Stroke) []*Stroke {
	out := make([]*Stroke, len(strokes))
	copy(out, strokes)
	return out
}
