package ask

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Messages shown by the composed validators.
const (
	RequiredMessage      = "This field is required"
	InvalidInputMessage  = "Invalid input"
	InvalidNumberMessage = "Please enter a valid number"
)

// ErrInvalidInput rejects a value with the generic InvalidInputMessage.
var ErrInvalidInput = errors.New("invalid input")

// errNotFinite is returned by parseNumber for NaN and infinities.
var errNotFinite = errors.New("not a finite number")

// ValidationError rejects a value with a message shown verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return InvalidInputMessage
	}
	return e.Message
}

// Invalid returns a *ValidationError carrying message.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}

// validator is the primitive-facing contract: an empty string means valid,
// a non-empty string is the message to show, and an error aborts the session.
type validator func(value any) (string, error)

// composeValidator checks required-ness first and only then runs the
// question's own Validate.
func composeValidator(q Question, answers *Answers) validator {
	return func(value any) (string, error) {
		if q.Required && isEmpty(value) {
			return RequiredMessage, nil
		}
		if q.Validate == nil {
			return "", nil
		}
		err := q.Validate(value, answers)
		if err == nil {
			return "", nil
		}
		var verr *ValidationError
		if errors.As(err, &verr) {
			return verr.Error(), nil
		}
		if errors.Is(err, ErrInvalidInput) {
			return InvalidInputMessage, nil
		}
		return "", err
	}
}

// numberValidator rejects non-empty text that does not parse as a number
// before handing the value to next.
func numberValidator(next validator) validator {
	return func(value any) (string, error) {
		if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
			if _, err := parseNumber(s); err != nil {
				return InvalidNumberMessage, nil
			}
		}
		return next(value)
	}
}

func (v validator) forText() func(string) (string, error) {
	return func(s string) (string, error) {
		return v(s)
	}
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	return false
}

// parseNumber accepts finite numbers only.
func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q: %w", s, errNotFinite)
	}
	return f, nil
}
