package ask

import (
	"io"
	"unicode/utf8"
)

// mockTerminal stands in for the TTY in Terminal tests. newTestTerminal
// feeds it a key script such as "ab\x1b[B\r"; ReadRune replays the script
// one rune at a time and then fails with endErr, or io.EOF when endErr is
// unset. Tests inspect raw and closed to check that a prompt restored the
// terminal.
type mockTerminal struct {
	keys     []rune
	pos      int
	width    int
	height   int
	raw      bool
	rawCalls int
	closed   bool
	endErr   error
}

func newMockTerminal(script string) *mockTerminal {
	return &mockTerminal{keys: []rune(script), width: fallbackWidth, height: fallbackHeight}
}

func (m *mockTerminal) SetRaw() error {
	m.raw = true
	m.rawCalls++
	return nil
}

func (m *mockTerminal) Restore() error {
	m.raw = false
	return nil
}

func (m *mockTerminal) Size() (int, int, error) {
	return m.width, m.height, nil
}

func (m *mockTerminal) ReadRune() (rune, int, error) {
	if m.pos == len(m.keys) {
		if m.endErr == nil {
			return 0, 0, io.EOF
		}
		return 0, 0, m.endErr
	}
	r := m.keys[m.pos]
	m.pos++
	return r, utf8.RuneLen(r), nil
}

func (m *mockTerminal) Close() error {
	m.closed = true
	return nil
}
