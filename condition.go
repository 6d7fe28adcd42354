package ask

import "context"

// Condition decides whether a question is asked, given the answers so far.
//
// A nil Condition always asks. Use Bool for a literal and ConditionFunc or
// When for a predicate over earlier answers.
type Condition interface {
	ShouldAsk(ctx context.Context, answers *Answers) (bool, error)
}

// Bool is a literal condition. Bool(false) always skips the question.
type Bool bool

// ShouldAsk implements Condition.
func (b Bool) ShouldAsk(context.Context, *Answers) (bool, error) {
	return bool(b), nil
}

// ConditionFunc adapts a function to Condition. The function may block; it
// runs only after every earlier question was asked or skipped.
type ConditionFunc func(ctx context.Context, answers *Answers) (bool, error)

// ShouldAsk implements Condition.
func (f ConditionFunc) ShouldAsk(ctx context.Context, answers *Answers) (bool, error) {
	return f(ctx, answers)
}

// When wraps a plain predicate over the answers so far.
//
//	ask.Question{
//		Name: "tsPath",
//		When: ask.When(func(a *ask.Answers) bool { return a.Bool("useTS") }),
//	}
func When(predicate func(answers *Answers) bool) Condition {
	return ConditionFunc(func(_ context.Context, answers *Answers) (bool, error) {
		return predicate(answers), nil
	})
}

func shouldAsk(ctx context.Context, c Condition, answers *Answers) (bool, error) {
	if c == nil {
		return true, nil
	}
	return c.ShouldAsk(ctx, answers)
}
