package ask

import (
	"context"
	"strings"

	"github.com/mattn/go-runewidth"
)

// lineConfig describes one editable line.
type lineConfig struct {
	message      string
	initial      string
	placeholder  string
	defaultValue string
	mask         bool
	validate     func(string) (string, error)
}

// Text implements Prompter.
func (t *Terminal) Text(ctx context.Context, opts TextOptions) (string, error) {
	var value string
	err := t.session(func() error {
		var err error
		value, err = t.editLine(ctx, lineConfig{
			message:      opts.Message,
			initial:      opts.InitialValue,
			placeholder:  opts.Placeholder,
			defaultValue: opts.DefaultValue,
			validate:     opts.Validate,
		})
		return err
	})
	return value, err
}

// Password implements Prompter. Typed characters are masked.
func (t *Terminal) Password(ctx context.Context, opts PasswordOptions) (string, error) {
	var value string
	err := t.session(func() error {
		var err error
		value, err = t.editLine(ctx, lineConfig{
			message:  opts.Message,
			mask:     true,
			validate: opts.Validate,
		})
		return err
	})
	return value, err
}

func (t *Terminal) editLine(ctx context.Context, cfg lineConfig) (string, error) {
	ed := newLineEditor(cfg.initial)
	var errMessage string

	for {
		if err := t.drawLine(cfg, ed, errMessage); err != nil {
			return "", err
		}

		k, err := t.readKey(ctx)
		if err != nil {
			t.finishLine(cfg, ed.String(), symbolCancel)
			return "", err
		}

		switch k.action {
		case ActionSubmit:
			value := ed.String()
			if value == "" {
				value = cfg.defaultValue
			}
			if cfg.validate != nil {
				message, err := cfg.validate(value)
				if err != nil {
					t.finishLine(cfg, value, symbolCancel)
					return "", err
				}
				if message != "" {
					errMessage = message
					continue
				}
			}
			if err := t.finishLine(cfg, value, symbolDone); err != nil {
				return "", err
			}
			return value, nil

		case ActionCancel:
			t.finishLine(cfg, ed.String(), symbolCancel)
			return "", ErrInterrupted

		case ActionEOF:
			if ed.empty() {
				t.finishLine(cfg, "", symbolCancel)
				return "", ErrEOF
			}

		case ActionNone:
			if isPrintable(k.r) && k.r != '\x1b' {
				ed.insertRune(k.r)
				errMessage = ""
			}

		default:
			if ed.apply(k.action) {
				errMessage = ""
			}
		}
	}
}

func (t *Terminal) drawLine(cfg lineConfig, ed *lineEditor, errMessage string) error {
	r := t.renderer
	cs := t.config.ColorScheme

	text := ed.String()
	before := string(ed.buffer[:ed.cursor])
	if cfg.mask {
		text = maskText(text)
		before = maskText(before)
	}

	content := cs.paint(cs.Input, text)
	if text == "" && cfg.placeholder != "" {
		content = cs.paint(cs.Placeholder, cfg.placeholder)
	}

	lines := []string{
		r.header(symbolActive, cs.Active, cfg.message),
		r.bar(content),
		r.footer(errMessage),
	}
	return r.draw(lines, 1, barWidth+runewidth.StringWidth(before))
}

// finishLine replaces the editing frame with its one-line summary.
func (t *Terminal) finishLine(cfg lineConfig, value, symbol string) error {
	if cfg.mask {
		value = maskText(value)
	}
	return t.finishFrame(cfg.message, value, symbol)
}

// finishFrame leaves a header with the answer summary below it.
func (t *Terminal) finishFrame(message, summary, symbol string) error {
	r := t.renderer
	cs := t.config.ColorScheme
	color := cs.Success
	if symbol == symbolCancel {
		color = cs.Cancel
	}
	lines := []string{r.header(symbol, color, message)}
	if summary != "" {
		lines = append(lines, r.bar(cs.paint(cs.Hint, summary)))
	} else {
		lines = append(lines, r.bar(""))
	}
	return r.finish(lines)
}

func maskText(s string) string {
	return strings.Repeat(symbolMask, len([]rune(s)))
}

// Confirm implements Prompter.
//
// Left/right and up/down switch between the two labels, y and n pick one
// and submit.
func (t *Terminal) Confirm(ctx context.Context, opts ConfirmOptions) (bool, error) {
	active, inactive := opts.Active, opts.Inactive
	if active == "" {
		active = "Yes"
	}
	if inactive == "" {
		inactive = "No"
	}

	value := opts.InitialValue
	label := func() string {
		if value {
			return active
		}
		return inactive
	}

	err := t.session(func() error {
		t.renderer.hideCursor()
		defer t.renderer.showCursor()

		for {
			if err := t.drawConfirm(opts.Message, active, inactive, value); err != nil {
				return err
			}

			k, err := t.readKey(ctx)
			if err != nil {
				t.finishFrame(opts.Message, label(), symbolCancel)
				return err
			}

			switch k.action {
			case ActionSubmit:
				return t.finishFrame(opts.Message, label(), symbolDone)
			case ActionCancel:
				t.finishFrame(opts.Message, label(), symbolCancel)
				return ErrInterrupted
			case ActionMoveLeft, ActionMoveRight, ActionMoveUp, ActionMoveDown, ActionToggle:
				value = !value
			case ActionNone:
				switch k.r {
				case 'y', 'Y':
					value = true
					return t.finishFrame(opts.Message, label(), symbolDone)
				case 'n', 'N':
					value = false
					return t.finishFrame(opts.Message, label(), symbolDone)
				}
			}
		}
	})
	if err != nil {
		return false, err
	}
	return value, nil
}

func (t *Terminal) drawConfirm(message, active, inactive string, value bool) error {
	r := t.renderer
	cs := t.config.ColorScheme

	choice := func(label string, on bool) string {
		if on {
			return cs.paint(cs.Selected, symbolRadioOn) + " " + label
		}
		return cs.paint(cs.Option, symbolRadioOff+" "+label)
	}

	lines := []string{
		r.header(symbolActive, cs.Active, message),
		r.bar(choice(active, value) + cs.paint(cs.Bar, " "+symbolSeparator+" ") + choice(inactive, !value)),
		r.footer(""),
	}
	return r.draw(lines, -1, 0)
}
