package ask

// KeyAction represents the action to perform when a key is pressed
type KeyAction int

// Key action constants define the actions that can be performed when keys are pressed
const (
	ActionNone KeyAction = iota
	ActionSubmit
	ActionCancel
	ActionEOF
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionMoveHome
	ActionMoveEnd
	ActionMoveWordLeft
	ActionMoveWordRight
	ActionDeleteChar
	ActionDeleteForward
	ActionDeleteLine
	ActionDeleteToEnd
	ActionDeleteWordBack
	ActionToggle
)

// KeyMap holds the key binding configuration
type KeyMap struct {
	bindings  map[rune]KeyAction
	sequences map[string]KeyAction
}

// NewDefaultKeyMap creates the default key bindings for the terminal primitives.
//
// Default key bindings:
//   - Enter/Return: Submit
//   - Ctrl+C: Cancel (interrupt)
//   - Ctrl+D: EOF on an empty text prompt
//   - Ctrl+A/Home, Ctrl+E/End: Move to beginning/end of line
//   - Ctrl+K: Delete from cursor to end of line
//   - Ctrl+U: Delete entire line
//   - Ctrl+W: Delete word backwards
//   - Tab: Toggle the highlighted option of an autocomplete multiselect
//   - Backspace/Delete: Delete character backwards/forwards
//   - Arrow keys: Move the cursor or the highlighted option
//   - Ctrl+Left/Right: Move by word
//
// Example:
//
//	keyMap := ask.NewDefaultKeyMap()
//	// Submit with Ctrl+J as well
//	keyMap.Bind('\x0A', ask.ActionSubmit)
func NewDefaultKeyMap() *KeyMap {
	km := &KeyMap{
		bindings:  make(map[rune]KeyAction),
		sequences: make(map[string]KeyAction),
	}

	km.bindings['\r'] = ActionSubmit
	km.bindings['\n'] = ActionSubmit
	km.bindings['\x03'] = ActionCancel         // Ctrl+C
	km.bindings['\x04'] = ActionEOF            // Ctrl+D
	km.bindings['\x01'] = ActionMoveHome       // Ctrl+A
	km.bindings['\x05'] = ActionMoveEnd        // Ctrl+E
	km.bindings['\x0B'] = ActionDeleteToEnd    // Ctrl+K
	km.bindings['\x15'] = ActionDeleteLine     // Ctrl+U
	km.bindings['\x17'] = ActionDeleteWordBack // Ctrl+W
	km.bindings['\t'] = ActionToggle
	km.bindings['\x7f'] = ActionDeleteChar // Backspace
	km.bindings['\b'] = ActionDeleteChar   // Backspace

	km.sequences["[A"] = ActionMoveUp
	km.sequences["[B"] = ActionMoveDown
	km.sequences["[C"] = ActionMoveRight
	km.sequences["[D"] = ActionMoveLeft
	km.sequences["[H"] = ActionMoveHome
	km.sequences["[F"] = ActionMoveEnd
	km.sequences["[1;5C"] = ActionMoveWordRight // Ctrl+Right
	km.sequences["[1;5D"] = ActionMoveWordLeft  // Ctrl+Left
	km.sequences["[3~"] = ActionDeleteForward   // Delete

	return km
}

// Bind adds or updates a key binding for a single character.
func (km *KeyMap) Bind(key rune, action KeyAction) {
	km.bindings[key] = action
}

// BindSequence adds or updates an escape sequence binding.
// The sequence should not include the initial ESC character.
//
// Example:
//
//	keyMap := ask.NewDefaultKeyMap()
//	// Page Down moves the selection
//	keyMap.BindSequence("[6~", ask.ActionMoveDown)
func (km *KeyMap) BindSequence(seq string, action KeyAction) {
	km.sequences[seq] = action
}

// GetAction returns the action for a key, or ActionNone if not bound
func (km *KeyMap) GetAction(key rune) KeyAction {
	if km == nil || km.bindings == nil {
		return ActionNone
	}
	if action, exists := km.bindings[key]; exists {
		return action
	}
	return ActionNone
}

// GetSequenceAction returns the action for an escape sequence, or ActionNone if not bound
func (km *KeyMap) GetSequenceAction(seq string) KeyAction {
	if km == nil || km.sequences == nil {
		return ActionNone
	}
	if action, exists := km.sequences[seq]; exists {
		return action
	}
	return ActionNone
}
