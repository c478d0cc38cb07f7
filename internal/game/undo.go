package game

const maxUndoStack = 50

// speedEdit is the value a body had before a slider drag began.
type speedEdit struct {
	Body  string
	Speed float64
}

// undoStack records speed edits, oldest first. It drops the oldest entry
// once full.
type undoStack struct {
	edits []speedEdit
}

func (u *undoStack) push(e speedEdit) {
	if len(u.edits) >= maxUndoStack {
		u.edits = u.edits[1:]
	}
	u.edits = append(u.edits, e)
}

// pop returns the most recent edit.
func (u *undoStack) pop() (speedEdit, bool) {
	if len(u.edits) == 0 {
		return speedEdit{}, false
	}
	e := u.edits[len(u.edits)-1]
	u.edits = u.edits[:len(u.edits)-1]
	return e, true
}

func (u *undoStack) len() int {
	return len(u.edits)
}
