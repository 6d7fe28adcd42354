package ask

// lineEditor is the single-line input buffer behind text, password and
// autocomplete prompts.
type lineEditor struct {
	buffer []rune
	cursor int
}

func newLineEditor(initial string) *lineEditor {
	buf := []rune(initial)
	return &lineEditor{buffer: buf, cursor: len(buf)}
}

func (e *lineEditor) String() string {
	return string(e.buffer)
}

func (e *lineEditor) empty() bool {
	return len(e.buffer) == 0
}

func (e *lineEditor) insertRune(r rune) {
	e.buffer = append(e.buffer[:e.cursor], append([]rune{r}, e.buffer[e.cursor:]...)...)
	e.cursor++
}

// apply performs an editing action and reports whether it was one.
func (e *lineEditor) apply(action KeyAction) bool {
	switch action {
	case ActionMoveLeft:
		if e.cursor > 0 {
			e.cursor--
		}
	case ActionMoveRight:
		if e.cursor < len(e.buffer) {
			e.cursor++
		}
	case ActionMoveHome:
		e.cursor = 0
	case ActionMoveEnd:
		e.cursor = len(e.buffer)
	case ActionMoveWordLeft:
		e.cursor = e.findWordBoundary(-1)
	case ActionMoveWordRight:
		e.cursor = e.findWordBoundary(1)
	case ActionDeleteChar:
		if e.cursor > 0 {
			e.buffer = append(e.buffer[:e.cursor-1], e.buffer[e.cursor:]...)
			e.cursor--
		}
	case ActionDeleteForward:
		if e.cursor < len(e.buffer) {
			e.buffer = append(e.buffer[:e.cursor], e.buffer[e.cursor+1:]...)
		}
	case ActionDeleteLine:
		e.buffer = []rune{}
		e.cursor = 0
	case ActionDeleteToEnd:
		e.buffer = e.buffer[:e.cursor]
	case ActionDeleteWordBack:
		if e.cursor > 0 {
			pos := e.findWordBoundary(-1)
			e.buffer = append(e.buffer[:pos], e.buffer[e.cursor:]...)
			e.cursor = pos
		}
	default:
		return false
	}
	return true
}

// findWordBoundary returns the start of the next word (direction > 0) or of
// the previous word (direction < 0). Words are runs of isWordChar runes.
func (e *lineEditor) findWordBoundary(direction int) int {
	if direction > 0 {
		pos := e.cursor
		for pos < len(e.buffer) && !isWordChar(e.buffer[pos]) {
			pos++
		}
		for pos < len(e.buffer) && isWordChar(e.buffer[pos]) {
			pos++
		}
		return pos
	}
	pos := e.cursor
	if pos > 0 {
		pos--
	}
	for pos > 0 && !isWordChar(e.buffer[pos]) {
		pos--
	}
	for pos > 0 && isWordChar(e.buffer[pos-1]) {
		pos--
	}
	return pos
}

// isWordChar reports whether r is part of a word: ASCII letters, digits and underscore.
func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

// isPrintable reports whether r should be inserted into the buffer.
func isPrintable(r rune) bool {
	return r >= 32 && r < 127 || r > 127
}
