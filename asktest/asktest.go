// Package asktest provides scripted stand-ins for interactive prompting.
//
// A Prompter answers each primitive call by question name from a map, so
// question flows can be exercised without a terminal:
//
//	p := asktest.NewPrompter(map[string]any{
//		"projectName": "demo",
//		"useTS":       true,
//		"port":        asktest.Sequence{"abc", "8080"},
//		"license":     asktest.Cancel,
//	})
//	answers, err := ask.NewAdapter(p).Prompt(ctx, questions...)
package asktest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/idleberg/go-ask"
	"github.com/spf13/cast"
)

// ErrSequenceExhausted is returned when every entry of a Sequence was rejected.
var ErrSequenceExhausted = errors.New("every scripted answer was rejected")

// Cancel makes the primitive report an abort, like Ctrl+C on a terminal.
var Cancel = cancelAnswer{}

type cancelAnswer struct{}

// Sequence scripts repeated attempts for one question. Entries are submitted
// in order until the validator accepts one.
type Sequence []any

// Primitive names recorded in Call.
const (
	PrimitiveText                    = "text"
	PrimitivePassword                = "password"
	PrimitiveConfirm                 = "confirm"
	PrimitiveSelect                  = "select"
	PrimitiveMultiSelect             = "multiselect"
	PrimitiveAutocomplete            = "autocomplete"
	PrimitiveAutocompleteMultiSelect = "autocompleteMultiselect"
)

// Call records one primitive invocation.
type Call struct {
	Primitive string
	Name      string
	Message   string
	// Options is the options struct the primitive received, e.g. ask.TextOptions.
	Options any
}

// Rejection records a scripted answer the validator turned down.
type Rejection struct {
	Name    string
	Value   string
	Message string
}

// Notice records an Intro, Outro or Cancel message.
type Notice struct {
	Kind    string
	Message string
}

// Prompter is a scripted ask.Prompter and ask.Notifier. It is safe for
// concurrent use.
//
// A question without a scripted answer receives the value the primitive
// would start with: the initial value, the text default, or the first option.
type Prompter struct {
	mu         sync.Mutex
	answers    map[string]any
	calls      []Call
	rejections []Rejection
	notices    []Notice
}

var (
	_ ask.Prompter = (*Prompter)(nil)
	_ ask.Notifier = (*Prompter)(nil)
)

// NewPrompter returns a prompter answering by question name.
func NewPrompter(answers map[string]any) *Prompter {
	m := make(map[string]any, len(answers))
	for k, v := range answers {
		m[k] = v
	}
	return &Prompter{answers: m}
}

// Calls returns the primitive invocations in order.
func (p *Prompter) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.calls)
}

// Call returns the last invocation for the named question.
func (p *Prompter) Call(name string) (Call, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.calls) - 1; i >= 0; i-- {
		if p.calls[i].Name == name {
			return p.calls[i], true
		}
	}
	return Call{}, false
}

// Asked returns the names of the asked questions in order.
func (p *Prompter) Asked() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, len(p.calls))
	for i, c := range p.calls {
		names[i] = c.Name
	}
	return names
}

// Rejections returns the scripted answers a validator turned down.
func (p *Prompter) Rejections() []Rejection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.rejections)
}

// Notices returns the Intro, Outro and Cancel messages in order.
func (p *Prompter) Notices() []Notice {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.notices)
}

// Intro implements ask.Notifier.
func (p *Prompter) Intro(message string) { p.notice("intro", message) }

// Outro implements ask.Notifier.
func (p *Prompter) Outro(message string) { p.notice("outro", message) }

// Cancel implements ask.Notifier.
func (p *Prompter) Cancel(message string) { p.notice("cancel", message) }

func (p *Prompter) notice(kind, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notices = append(p.notices, Notice{Kind: kind, Message: message})
}

// record logs the call and returns the scripted answer.
func (p *Prompter) record(call Call) (any, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, call)
	v, ok := p.answers[call.Name]
	return v, ok
}

func (p *Prompter) reject(name, value, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rejections = append(p.rejections, Rejection{Name: name, Value: value, Message: message})
}

// Text implements ask.Prompter.
func (p *Prompter) Text(ctx context.Context, opts ask.TextOptions) (string, error) {
	scripted, ok := p.record(Call{Primitive: PrimitiveText, Name: opts.Name, Message: opts.Message, Options: opts})
	if !ok {
		scripted = opts.InitialValue
	}
	return p.submitText(ctx, opts.Name, scripted, opts.DefaultValue, opts.Validate)
}

// Password implements ask.Prompter.
func (p *Prompter) Password(ctx context.Context, opts ask.PasswordOptions) (string, error) {
	scripted, ok := p.record(Call{Primitive: PrimitivePassword, Name: opts.Name, Message: opts.Message, Options: opts})
	if !ok {
		scripted = ""
	}
	return p.submitText(ctx, opts.Name, scripted, "", opts.Validate)
}

// submitText tries each scripted entry like a user retyping after an error.
func (p *Prompter) submitText(ctx context.Context, name string, scripted any, defaultValue string, validate func(string) (string, error)) (string, error) {
	attempts, ok := scripted.(Sequence)
	if !ok {
		attempts = Sequence{scripted}
	}

	for _, attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := control(attempt); err != nil {
			return "", err
		}
		value, err := cast.ToStringE(attempt)
		if err != nil {
			return "", fmt.Errorf("scripted answer for %q: %w", name, err)
		}
		if value == "" {
			value = defaultValue
		}
		if validate == nil {
			return value, nil
		}
		message, err := validate(value)
		if err != nil {
			return "", err
		}
		if message == "" {
			return value, nil
		}
		p.reject(name, value, message)
	}
	return "", fmt.Errorf("question %q: %w", name, ErrSequenceExhausted)
}

// Confirm implements ask.Prompter.
func (p *Prompter) Confirm(ctx context.Context, opts ask.ConfirmOptions) (bool, error) {
	scripted, ok := p.record(Call{Primitive: PrimitiveConfirm, Name: opts.Name, Message: opts.Message, Options: opts})
	if !ok {
		return opts.InitialValue, ctx.Err()
	}
	scripted = first(scripted)
	if err := control(scripted); err != nil {
		return false, err
	}
	value, err := cast.ToBoolE(scripted)
	if err != nil {
		return false, fmt.Errorf("scripted answer for %q: %w", opts.Name, err)
	}
	return value, ctx.Err()
}

// Select implements ask.Prompter.
func (p *Prompter) Select(ctx context.Context, opts ask.SelectOptions) (any, error) {
	scripted, ok := p.record(Call{Primitive: PrimitiveSelect, Name: opts.Name, Message: opts.Message, Options: opts})
	return p.submitOne(ctx, scripted, ok, opts.InitialValue, opts.Options)
}

// Autocomplete implements ask.Prompter.
func (p *Prompter) Autocomplete(ctx context.Context, opts ask.AutocompleteOptions) (any, error) {
	scripted, ok := p.record(Call{Primitive: PrimitiveAutocomplete, Name: opts.Name, Message: opts.Message, Options: opts})
	return p.submitOne(ctx, scripted, ok, opts.InitialValue, opts.Options)
}

func (p *Prompter) submitOne(ctx context.Context, scripted any, ok bool, initial any, options []ask.Option) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		if initial != nil {
			return initial, nil
		}
		if len(options) > 0 {
			return options[0].Value, nil
		}
		return nil, nil
	}
	scripted = first(scripted)
	if err := control(scripted); err != nil {
		return nil, err
	}
	return scripted, nil
}

// MultiSelect implements ask.Prompter.
func (p *Prompter) MultiSelect(ctx context.Context, opts ask.MultiSelectOptions) ([]any, error) {
	scripted, ok := p.record(Call{Primitive: PrimitiveMultiSelect, Name: opts.Name, Message: opts.Message, Options: opts})
	return p.submitMany(ctx, scripted, ok, opts)
}

// AutocompleteMultiSelect implements ask.Prompter.
func (p *Prompter) AutocompleteMultiSelect(ctx context.Context, opts ask.MultiSelectOptions) ([]any, error) {
	scripted, ok := p.record(Call{Primitive: PrimitiveAutocompleteMultiSelect, Name: opts.Name, Message: opts.Message, Options: opts})
	return p.submitMany(ctx, scripted, ok, opts)
}

func (p *Prompter) submitMany(ctx context.Context, scripted any, ok bool, opts ask.MultiSelectOptions) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return slices.Clone(opts.InitialValues), nil
	}
	if err := control(scripted); err != nil {
		return nil, err
	}
	values := anySlice(scripted)
	if opts.Required && len(values) == 0 {
		return nil, fmt.Errorf("question %q: %w", opts.Name, ErrSequenceExhausted)
	}
	return values, nil
}

// control turns the Cancel sentinel and scripted errors into primitive errors.
func control(v any) error {
	switch v := v.(type) {
	case cancelAnswer:
		return ask.ErrInterrupted
	case error:
		return v
	}
	return nil
}

func first(v any) any {
	if seq, ok := v.(Sequence); ok {
		if len(seq) == 0 {
			return nil
		}
		return seq[0]
	}
	return v
}

func anySlice(v any) []any {
	if v == nil {
		return []any{}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
