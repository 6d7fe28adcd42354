package ask

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CancelNotice is the message shown when the user aborts a session.
const CancelNotice = "Operation cancelled"

// ErrCanceled is matched by every *CanceledError.
var ErrCanceled = errors.New("prompt cancelled")

// CanceledError reports that the user aborted the session at Question.
//
// Answers collected before the abort are never returned through the normal
// path; the aborted question itself is not part of Answers.
type CanceledError struct {
	Question string
	Answers  *Answers
}

func (e *CanceledError) Error() string {
	return fmt.Sprintf("prompt cancelled at question %q", e.Question)
}

// Is makes errors.Is(err, ErrCanceled) work.
func (e *CanceledError) Is(target error) bool {
	return target == ErrCanceled
}

// Adapter translates questions into Prompter calls.
//
// Every Prompt call on one Adapter is a session; sessions run one at a time
// in the order they were submitted, so concurrent callers never interleave
// terminal interaction.
type Adapter struct {
	prompter Prompter
	queue    *Queue
	logger   *zap.Logger
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithLogger sets the logger used for session diagnostics.
// Answer values are never logged.
func WithLogger(logger *zap.Logger) AdapterOption {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAdapter returns an Adapter dispatching to prompter.
func NewAdapter(prompter Prompter, options ...AdapterOption) *Adapter {
	a := &Adapter{
		prompter: prompter,
		queue:    NewQueue(),
		logger:   zap.NewNop(),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// Prompter returns the primitives this adapter dispatches to.
func (a *Adapter) Prompter() Prompter {
	return a.prompter
}

// Prompt asks questions in order and returns the answers.
//
// A question whose When condition is false is skipped and absent from the
// result. If the user aborts a prompt, Prompt returns a *CanceledError and
// no answers.
func (a *Adapter) Prompt(ctx context.Context, questions ...Question) (*Answers, error) {
	return a.PromptWithAnswers(ctx, nil, questions...)
}

// PromptWithAnswers is Prompt with the answers seeded from initial, which
// later questions can read. initial itself is not modified.
func (a *Adapter) PromptWithAnswers(ctx context.Context, initial *Answers, questions ...Question) (*Answers, error) {
	normalized, err := Normalize(questions...)
	if err != nil {
		return nil, err
	}

	logger := a.logger.With(zap.String("session", uuid.NewString()))
	logger.Debug("session queued", zap.Int("questions", len(normalized)))

	return Enqueue(ctx, a.queue, func(ctx context.Context) (*Answers, error) {
		logger.Debug("session started")
		answers, err := a.run(ctx, logger, initial, normalized)
		if err != nil {
			logger.Debug("session ended", zap.Error(err))
			return nil, err
		}
		logger.Debug("session finished", zap.Int("answers", answers.Len()))
		return answers, nil
	})
}

func (a *Adapter) run(ctx context.Context, logger *zap.Logger, initial *Answers, questions []Question) (*Answers, error) {
	answers := initial.Clone()

	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ok, err := shouldAsk(ctx, q.When, answers)
		if err != nil {
			return nil, fmt.Errorf("evaluate condition of %q: %w", q.Name, err)
		}
		if !ok {
			logger.Debug("question skipped", zap.String("question", q.Name))
			continue
		}

		raw, err := dispatch(ctx, a.prompter, q, answers, logger)
		if errors.Is(err, ErrInterrupted) {
			a.cancel(logger, q.Name)
			return nil, &CanceledError{Question: q.Name, Answers: answers}
		}
		if err != nil {
			return nil, err
		}

		value, err := applyFilter(q, raw, answers)
		if err != nil {
			return nil, err
		}
		answers.Set(q.Name, value)
		logger.Debug("question answered", zap.String("question", q.Name), zap.String("type", string(q.Type)))
	}

	return answers, nil
}

func (a *Adapter) cancel(logger *zap.Logger, question string) {
	logger.Info(CancelNotice, zap.String("question", question))
	if n, ok := a.prompter.(Notifier); ok {
		n.Cancel(CancelNotice)
	}
}

// Intro prints an opening notice if the prompter supports notices.
func (a *Adapter) Intro(message string) {
	if n, ok := a.prompter.(Notifier); ok {
		n.Intro(message)
	}
}

// Outro prints a closing notice if the prompter supports notices.
func (a *Adapter) Outro(message string) {
	if n, ok := a.prompter.(Notifier); ok {
		n.Outro(message)
	}
}

// Cancel prints a cancellation notice if the prompter supports notices.
func (a *Adapter) Cancel(message string) {
	if n, ok := a.prompter.(Notifier); ok {
		n.Cancel(message)
	}
}
