package ask

import (
	"fmt"

	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// terminalInterface is the key source and mode switch a Terminal draws on.
// realTerminal talks to the controlling TTY; tests use mockTerminal.
type terminalInterface interface {
	SetRaw() error                        // Enter raw mode for immediate key processing
	Restore() error                       // Restore the mode saved by SetRaw
	Size() (width, height int, err error) // Terminal dimensions, with a fallback on error
	ReadRune() (rune, int, error)         // Read one key rune
	Close() error                         // Release the TTY; safe to call twice
}

// Dimensions reported when the TTY cannot tell its size.
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// realTerminal reads keys from the controlling TTY through go-tty and
// switches that TTY to raw mode with x/term. Keys come from the TTY even
// when stdin is redirected, so answers can be piped to another program.
type realTerminal struct {
	tty    *tty.TTY
	fd     int         // descriptor of the TTY input
	saved  *term.State // mode to return to, set while a prompt runs
	closed bool        // go-tty panics on Windows when closed twice
}

func newRealTerminal() (*realTerminal, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open tty: %w", err)
	}
	return &realTerminal{tty: t, fd: int(t.Input().Fd())}, nil
}

// SetRaw saves the current mode on every call, so each prompt restores the
// mode that was active when it started.
func (t *realTerminal) SetRaw() error {
	if !term.IsTerminal(t.fd) {
		return nil
	}
	previous, err := term.MakeRaw(t.fd)
	if err != nil {
		return err
	}
	t.saved = previous
	return nil
}

func (t *realTerminal) Restore() error {
	if t.saved == nil {
		return nil
	}
	previous := t.saved
	t.saved = nil
	return term.Restore(t.fd, previous)
}

func (t *realTerminal) Size() (width, height int, err error) {
	w, h, err := t.tty.Size()
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight, err
	}
	return w, h, nil
}

func (t *realTerminal) ReadRune() (rune, int, error) {
	r, err := t.tty.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	return r, 1, nil
}

func (t *realTerminal) Close() error {
	if t.closed || t.tty == nil {
		return nil
	}
	t.closed = true
	return t.tty.Close()
}
