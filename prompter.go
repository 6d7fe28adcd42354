package ask

import (
	"context"
	"errors"
)

// Common errors
var (
	// ErrEOF is returned when the user presses Ctrl+D on an empty input or
	// the input stream ends.
	ErrEOF = errors.New("EOF")
	// ErrInterrupted is the cancellation marker: primitives return it when
	// the user aborts a prompt (Ctrl+C).
	ErrInterrupted = errors.New("interrupted")
)

// Prompter is the set of interactive primitives questions are dispatched to.
//
// Every method blocks until the user submits a value or aborts. An abort
// must be reported as ErrInterrupted. Terminal is the production
// implementation; package asktest provides a scripted one.
type Prompter interface {
	Text(ctx context.Context, opts TextOptions) (string, error)
	Password(ctx context.Context, opts PasswordOptions) (string, error)
	Confirm(ctx context.Context, opts ConfirmOptions) (bool, error)
	Select(ctx context.Context, opts SelectOptions) (any, error)
	MultiSelect(ctx context.Context, opts MultiSelectOptions) ([]any, error)
	Autocomplete(ctx context.Context, opts AutocompleteOptions) (any, error)
	AutocompleteMultiSelect(ctx context.Context, opts MultiSelectOptions) ([]any, error)
}

// Notifier is implemented by prompters that can print standalone notices.
type Notifier interface {
	Intro(message string)
	Outro(message string)
	Cancel(message string)
}

// TextOptions configures a free-form text entry.
type TextOptions struct {
	Name         string
	Message      string
	Placeholder  string
	DefaultValue string // used when the submission is empty
	InitialValue string // pre-filled, editable
	Validate     func(value string) (string, error)
}

// PasswordOptions configures a masked text entry.
type PasswordOptions struct {
	Name     string
	Message  string
	Validate func(value string) (string, error)
}

// ConfirmOptions configures a yes/no choice.
type ConfirmOptions struct {
	Name         string
	Message      string
	InitialValue bool
	Active       string // label of true, "Yes" when empty
	Inactive     string // label of false, "No" when empty
}

// SelectOptions configures a single choice. A nil InitialValue selects the
// first option.
type SelectOptions struct {
	Name         string
	Message      string
	Options      []Option
	InitialValue any
	MaxItems     int
}

// MultiSelectOptions configures a multiple choice.
type MultiSelectOptions struct {
	Name          string
	Message       string
	Options       []Option
	InitialValues []any
	Required      bool
	CursorAt      any
	MaxItems      int
}

// AutocompleteOptions configures a single choice filtered by typing.
type AutocompleteOptions struct {
	Name         string
	Message      string
	Options      []Option
	InitialValue any
	Placeholder  string
	MaxItems     int
}
