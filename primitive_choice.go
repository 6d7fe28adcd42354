package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ErrNoOptions is returned by a choice prompt that has nothing to choose from.
var ErrNoOptions = errors.New("no options to choose from")

// SelectAtLeastOneMessage is shown when a required multiselect is submitted empty.
const SelectAtLeastOneMessage = "Please select at least one option. Press space to select, enter to submit"

const noMatchesMessage = "No matches found"

// choiceConfig describes one run of the shared choice loop.
type choiceConfig struct {
	message     string
	options     []Option
	initial     []any
	cursorAt    any
	multi       bool
	filter      bool
	required    bool
	placeholder string
	maxItems    int
}

// choiceState is the mutable state of a choice prompt.
type choiceState struct {
	cfg      choiceConfig
	query    *lineEditor
	visible  []int // option indexes shown, in display order
	cursor   int   // position in visible
	offset   int   // first visible row of the window
	selected []bool
}

// Select implements Prompter.
func (t *Terminal) Select(ctx context.Context, opts SelectOptions) (any, error) {
	return t.chooseOne(ctx, choiceConfig{
		message:  opts.Message,
		options:  opts.Options,
		cursorAt: opts.InitialValue,
		maxItems: t.maxItems(opts.MaxItems),
	})
}

// Autocomplete implements Prompter. Typing filters the options.
func (t *Terminal) Autocomplete(ctx context.Context, opts AutocompleteOptions) (any, error) {
	return t.chooseOne(ctx, choiceConfig{
		message:     opts.Message,
		options:     opts.Options,
		cursorAt:    opts.InitialValue,
		filter:      true,
		placeholder: opts.Placeholder,
		maxItems:    t.maxItems(opts.MaxItems),
	})
}

// MultiSelect implements Prompter. Space toggles the highlighted option and
// a toggles all of them.
func (t *Terminal) MultiSelect(ctx context.Context, opts MultiSelectOptions) ([]any, error) {
	return t.chooseMany(ctx, opts, false)
}

// AutocompleteMultiSelect implements Prompter. Typing filters the options
// and Tab toggles the highlighted one.
func (t *Terminal) AutocompleteMultiSelect(ctx context.Context, opts MultiSelectOptions) ([]any, error) {
	return t.chooseMany(ctx, opts, true)
}

func (t *Terminal) chooseOne(ctx context.Context, cfg choiceConfig) (any, error) {
	if len(cfg.options) == 0 {
		return nil, fmt.Errorf("%q: %w", cfg.message, ErrNoOptions)
	}
	indexes, err := t.choose(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return cfg.options[indexes[0]].Value, nil
}

func (t *Terminal) chooseMany(ctx context.Context, opts MultiSelectOptions, filter bool) ([]any, error) {
	if len(opts.Options) == 0 {
		return nil, fmt.Errorf("%q: %w", opts.Message, ErrNoOptions)
	}
	indexes, err := t.choose(ctx, choiceConfig{
		message:  opts.Message,
		options:  opts.Options,
		initial:  opts.InitialValues,
		cursorAt: opts.CursorAt,
		multi:    true,
		filter:   filter,
		required: opts.Required,
		maxItems: t.maxItems(opts.MaxItems),
	})
	if err != nil {
		return nil, err
	}
	values := make([]any, len(indexes))
	for i, idx := range indexes {
		values[i] = opts.Options[idx].Value
	}
	return values, nil
}

func newChoiceState(cfg choiceConfig) *choiceState {
	s := &choiceState{
		cfg:      cfg,
		query:    newLineEditor(""),
		selected: make([]bool, len(cfg.options)),
	}
	for i, opt := range cfg.options {
		for _, v := range cfg.initial {
			if valuesEqual(opt.Value, v) {
				s.selected[i] = true
				break
			}
		}
	}
	s.refilter()
	if cfg.cursorAt != nil {
		for pos, idx := range s.visible {
			if valuesEqual(cfg.options[idx].Value, cfg.cursorAt) {
				s.cursor = pos
				break
			}
		}
	}
	s.scroll()
	return s
}

func (s *choiceState) refilter() {
	if s.cfg.filter {
		s.visible = filterOptions(s.cfg.options, s.query.String())
	} else {
		s.visible = make([]int, len(s.cfg.options))
		for i := range s.visible {
			s.visible[i] = i
		}
	}
	s.cursor = 0
	s.offset = 0
}

func (s *choiceState) move(delta int) {
	if len(s.visible) == 0 {
		return
	}
	s.cursor = (s.cursor + delta + len(s.visible)) % len(s.visible)
	s.scroll()
}

// scroll keeps the cursor inside the window of maxItems rows.
func (s *choiceState) scroll() {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+s.cfg.maxItems {
		s.offset = s.cursor - s.cfg.maxItems + 1
	}
}

func (s *choiceState) current() (int, bool) {
	if len(s.visible) == 0 {
		return 0, false
	}
	return s.visible[s.cursor], true
}

func (s *choiceState) toggle() {
	if idx, ok := s.current(); ok {
		s.selected[idx] = !s.selected[idx]
	}
}

// toggleAll checks every option unless all are checked already, in which
// case it clears them.
func (s *choiceState) toggleAll() {
	all := true
	for _, on := range s.selected {
		if !on {
			all = false
			break
		}
	}
	for i := range s.selected {
		s.selected[i] = !all
	}
}

func (s *choiceState) chosen() []int {
	var indexes []int
	for i, on := range s.selected {
		if on {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// choose runs the key loop shared by every choice prompt and returns the
// chosen option indexes in declaration order.
func (t *Terminal) choose(ctx context.Context, cfg choiceConfig) ([]int, error) {
	state := newChoiceState(cfg)
	var (
		result     []int
		errMessage string
	)

	err := t.session(func() error {
		if !cfg.filter {
			t.renderer.hideCursor()
			defer t.renderer.showCursor()
		}

		for {
			if err := t.drawChoice(state, errMessage); err != nil {
				return err
			}

			k, err := t.readKey(ctx)
			if err != nil {
				t.finishFrame(cfg.message, "", symbolCancel)
				return err
			}

			switch k.action {
			case ActionSubmit:
				if !cfg.multi {
					idx, ok := state.current()
					if !ok {
						continue
					}
					result = []int{idx}
				} else {
					result = state.chosen()
					if cfg.required && len(result) == 0 {
						errMessage = SelectAtLeastOneMessage
						continue
					}
				}
				return t.finishFrame(cfg.message, t.summary(cfg.options, result), symbolDone)

			case ActionCancel:
				t.finishFrame(cfg.message, "", symbolCancel)
				return ErrInterrupted

			case ActionMoveUp:
				state.move(-1)
			case ActionMoveDown:
				state.move(1)

			case ActionToggle:
				if cfg.multi {
					state.toggle()
					errMessage = ""
				}

			case ActionNone:
				switch {
				case cfg.filter:
					if isPrintable(k.r) && k.r != '\x1b' {
						state.query.insertRune(k.r)
						state.refilter()
					}
				case cfg.multi && k.r == ' ':
					state.toggle()
					errMessage = ""
				case cfg.multi && k.r == 'a':
					state.toggleAll()
					errMessage = ""
				case k.r == 'k':
					state.move(-1)
				case k.r == 'j':
					state.move(1)
				}

			default:
				if cfg.filter && state.query.apply(k.action) {
					state.refilter()
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (t *Terminal) summary(options []Option, indexes []int) string {
	labels := make([]string, len(indexes))
	for i, idx := range indexes {
		labels[i] = optionLabel(options[idx])
	}
	return strings.Join(labels, ", ")
}

func (t *Terminal) drawChoice(s *choiceState, errMessage string) error {
	r := t.renderer
	cs := t.config.ColorScheme
	cfg := s.cfg

	lines := []string{r.header(symbolActive, cs.Active, cfg.message)}
	cursorRow, cursorCol := -1, 0

	if cfg.filter {
		query := s.query.String()
		content := cs.paint(cs.Input, query)
		if query == "" && cfg.placeholder != "" {
			content = cs.paint(cs.Placeholder, cfg.placeholder)
		}
		lines = append(lines, r.bar(content))
		cursorRow = 1
		cursorCol = barWidth + runewidth.StringWidth(string(s.query.buffer[:s.query.cursor]))
	}

	if len(s.visible) == 0 {
		lines = append(lines, r.bar(cs.paint(cs.Hint, noMatchesMessage)))
	}

	end := min(s.offset+cfg.maxItems, len(s.visible))
	if s.offset > 0 {
		lines = append(lines, r.bar(cs.paint(cs.Hint, "...")))
	}
	for pos := s.offset; pos < end; pos++ {
		idx := s.visible[pos]
		lines = append(lines, r.bar(t.optionRow(cfg.options[idx], pos == s.cursor, cfg.multi, s.selected[idx])))
	}
	if end < len(s.visible) {
		lines = append(lines, r.bar(cs.paint(cs.Hint, "...")))
	}

	lines = append(lines, r.footer(errMessage))
	return r.draw(lines, cursorRow, cursorCol)
}

func (t *Terminal) optionRow(opt Option, active, multi, checked bool) string {
	cs := t.config.ColorScheme
	label := optionLabel(opt)

	var symbol string
	switch {
	case multi && checked:
		symbol = cs.paint(cs.Selected, symbolCheckOn)
	case multi && active:
		symbol = cs.paint(cs.Active, symbolCheckOff)
	case multi:
		symbol = cs.paint(cs.Option, symbolCheckOff)
	case active:
		symbol = cs.paint(cs.Selected, symbolRadioOn)
	default:
		symbol = cs.paint(cs.Option, symbolRadioOff)
	}

	row := symbol + " "
	if active {
		row += cs.paint(cs.Input, label)
		if opt.Hint != "" {
			row += " " + cs.paint(cs.Hint, "("+opt.Hint+")")
		}
	} else {
		row += cs.paint(cs.Option, label)
	}
	return row
}

// optionLabel falls back to the formatted value when an option has no label.
func optionLabel(opt Option) string {
	if opt.Label != "" {
		return opt.Label
	}
	if opt.Value == nil {
		return ""
	}
	return fmt.Sprint(opt.Value)
}
