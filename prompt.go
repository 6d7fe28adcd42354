package ask

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
)

// DefaultMaxItems is the number of options a choice prompt shows at once.
const DefaultMaxItems = 10

// TerminalConfig holds the configuration for a Terminal.
type TerminalConfig struct {
	ColorScheme *ColorScheme // Color scheme (nil for default)
	KeyMap      *KeyMap      // Key bindings (nil for default)
	Output      io.Writer    // Output writer (nil for stdout)
	MaxItems    int          // Visible options when a prompt sets none (0 for DefaultMaxItems)
}

// TerminalOption represents a configuration option for Terminal
type TerminalOption func(*TerminalConfig)

// WithColorScheme sets the color scheme
func WithColorScheme(colorScheme *ColorScheme) TerminalOption {
	return func(c *TerminalConfig) {
		c.ColorScheme = colorScheme
	}
}

// WithKeyMap sets the key bindings
func WithKeyMap(keyMap *KeyMap) TerminalOption {
	return func(c *TerminalConfig) {
		c.KeyMap = keyMap
	}
}

// WithOutput sets where frames are written
func WithOutput(output io.Writer) TerminalOption {
	return func(c *TerminalConfig) {
		c.Output = output
	}
}

// WithMaxItems sets the default number of visible options
func WithMaxItems(n int) TerminalOption {
	return func(c *TerminalConfig) {
		c.MaxItems = n
	}
}

// Terminal implements Prompter and Notifier on an interactive terminal.
//
// Each primitive switches the terminal to raw mode for the duration of the
// call, redraws its frame after every key press and leaves a one-line summary
// of the answer behind. Calls are serialized.
type Terminal struct {
	mu       sync.Mutex
	config   TerminalConfig
	terminal terminalInterface
	renderer *renderer
	keyMap   *KeyMap
}

var (
	_ Prompter = (*Terminal)(nil)
	_ Notifier = (*Terminal)(nil)
)

// NewTerminal opens the controlling terminal.
//
// Example:
//
//	t, err := ask.NewTerminal(ask.WithColorScheme(ask.ThemeDracula))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer t.Close()
//
//	name, err := t.Text(ctx, ask.TextOptions{Message: "Project name"})
func NewTerminal(options ...TerminalOption) (*Terminal, error) {
	var config TerminalConfig
	for _, option := range options {
		option(&config)
	}

	terminal, err := newRealTerminal()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal: %w", err)
	}
	return newTerminal(terminal, config), nil
}

func newTerminal(terminal terminalInterface, config TerminalConfig) *Terminal {
	if config.ColorScheme == nil {
		config.ColorScheme = ThemeDefault
	}
	if config.KeyMap == nil {
		config.KeyMap = NewDefaultKeyMap()
	}
	if config.MaxItems <= 0 {
		config.MaxItems = DefaultMaxItems
	}

	output := config.Output
	if output == nil {
		output = os.Stdout
		if runtime.GOOS == "windows" {
			// Use colorable for Windows ANSI color support
			output = colorable.NewColorableStdout()
		}
	}

	return &Terminal{
		config:   config,
		terminal: terminal,
		renderer: newRenderer(output, config.ColorScheme),
		keyMap:   config.KeyMap,
	}
}

// Close restores the cursor and releases the terminal. It's safe to call
// Close multiple times.
func (t *Terminal) Close() error {
	t.renderer.showCursor()
	if t.terminal != nil {
		return t.terminal.Close()
	}
	return nil
}

// Intro prints the opening line of a session.
func (t *Terminal) Intro(message string) {
	cs := t.config.ColorScheme
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.renderer.println(cs.paint(cs.Bar, symbolStart) + "  " + cs.paint(cs.Message, message))
	_ = t.renderer.println(cs.paint(cs.Bar, symbolBar))
}

// Outro prints the closing line of a session.
func (t *Terminal) Outro(message string) {
	cs := t.config.ColorScheme
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.renderer.println(cs.paint(cs.Bar, symbolBar))
	_ = t.renderer.println(cs.paint(cs.Bar, symbolEnd) + "  " + message)
	_ = t.renderer.println("")
}

// Cancel prints an error line for an aborted session.
func (t *Terminal) Cancel(message string) {
	cs := t.config.ColorScheme
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.renderer.println(cs.paint(cs.Cancel, symbolCancel) + "  " + cs.paint(cs.Cancel, message))
}

// key is one decoded key press.
type key struct {
	r      rune
	action KeyAction
}

// session runs fn in raw mode with exclusive use of the terminal.
func (t *Terminal) session(fn func() error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.terminal.SetRaw(); err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() {
		if err := t.terminal.Restore(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to exit raw mode: %v\n", err)
		}
	}()
	return fn()
}

// readKey blocks for the next key press. Input ending maps to ErrEOF.
func (t *Terminal) readKey(ctx context.Context) (key, error) {
	select {
	case <-ctx.Done():
		return key{}, ctx.Err()
	default:
	}

	r, _, err := t.terminal.ReadRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return key{}, ErrEOF
		}
		return key{}, fmt.Errorf("failed to read input: %w", err)
	}

	if r == '\x1b' {
		seq, err := t.readEscapeSequence()
		if err != nil {
			return key{r: r}, nil
		}
		return key{r: r, action: t.keyMap.GetSequenceAction(seq)}, nil
	}
	return key{r: r, action: t.keyMap.GetAction(r)}, nil
}

func (t *Terminal) readEscapeSequence() (string, error) {
	seq := make([]rune, 0, 10)
	for range 10 { // Limit to prevent infinite loop
		r, _, err := t.terminal.ReadRune()
		if err != nil {
			return "", err
		}
		seq = append(seq, r)

		s := string(seq)
		if s == "[A" || s == "[B" || s == "[C" || s == "[D" || s == "[H" || s == "[F" {
			return s, nil
		}
		if strings.HasSuffix(s, "~") && len(s) >= 3 {
			return s, nil
		}
		if len(seq) >= 3 && (seq[len(seq)-1] < '0' || seq[len(seq)-1] > '9') {
			return s, nil
		}
	}
	return string(seq), nil
}

// frameRows is the number of rows a choice frame needs besides its options.
const frameRows = 6

// maxItems resolves the visible window of a choice prompt. The window never
// grows taller than the terminal.
func (t *Terminal) maxItems(n int) int {
	if n <= 0 {
		n = t.config.MaxItems
	}
	if _, height, err := t.terminal.Size(); err == nil && height > frameRows {
		n = min(n, height-frameRows)
	}
	return max(n, 1)
}
