package ask

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// dispatch resolves the question's dynamic fields and performs exactly one
// primitive call. The returned value is the raw answer before filtering.
func dispatch(ctx context.Context, p Prompter, q Question, answers *Answers, logger *zap.Logger) (any, error) {
	message, err := resolveMessage(q, answers)
	if err != nil {
		return nil, err
	}
	def, err := resolveDefault(q, answers)
	if err != nil {
		return nil, err
	}
	validate := composeValidator(q, answers)

	switch q.Type {
	case TypeInput, TypeText, "":
		return p.Text(ctx, TextOptions{
			Name:         q.Name,
			Message:      message,
			Placeholder:  q.Placeholder,
			DefaultValue: q.DefaultValue,
			InitialValue: textValue(firstDefined(q.InitialValue, def)),
			Validate:     validate.forText(),
		})

	case TypePassword:
		return p.Password(ctx, PasswordOptions{
			Name:     q.Name,
			Message:  message,
			Validate: validate.forText(),
		})

	case TypeConfirm:
		initial := false
		if v := firstDefined(q.InitialValue, def); v != nil {
			b, err := toBool(v)
			if err != nil {
				logger.Warn("confirm default is not a boolean, using false",
					zap.String("question", q.Name), zap.Error(err))
			}
			initial = b
		}
		return p.Confirm(ctx, ConfirmOptions{
			Name:         q.Name,
			Message:      message,
			InitialValue: initial,
			Active:       q.Active,
			Inactive:     q.Inactive,
		})

	case TypeList, TypeRawList, TypeSelect:
		return p.Select(ctx, SelectOptions{
			Name:         q.Name,
			Message:      message,
			Options:      questionOptions(q),
			InitialValue: firstDefined(q.InitialValue, def),
			MaxItems:     maxItems(q),
		})

	case TypeCheckbox, TypeMultiSelect:
		return p.MultiSelect(ctx, multiSelectOptions(q, message, def))

	case TypeAutocomplete:
		return p.Autocomplete(ctx, AutocompleteOptions{
			Name:         q.Name,
			Message:      message,
			Options:      questionOptions(q),
			InitialValue: firstDefined(q.InitialValue, def),
			Placeholder:  q.Placeholder,
			MaxItems:     maxItems(q),
		})

	case TypeAutocompleteMultiSelect:
		return p.AutocompleteMultiSelect(ctx, multiSelectOptions(q, message, def))

	case TypeNumber:
		raw, err := p.Text(ctx, TextOptions{
			Name:         q.Name,
			Message:      message,
			Placeholder:  q.Placeholder,
			InitialValue: textValue(firstDefined(q.InitialValue, def)),
			Validate:     numberValidator(validate).forText(),
		})
		if err != nil {
			return nil, err
		}
		if raw == "" {
			return raw, nil
		}
		if strings.TrimSpace(raw) == "" {
			return float64(0), nil
		}
		n, err := parseNumber(raw)
		if err != nil {
			return nil, fmt.Errorf("coerce %q to a number: %w", q.Name, err)
		}
		return n, nil

	case TypeExpand:
		opts, keys := expandOptions(q.Choices)
		if keys != "" {
			message += " (" + keys + ")"
		}
		initial := firstDefined(q.InitialValue, def)
		if initial == nil && len(opts) > 0 {
			initial = opts[0].Value
		}
		return p.Select(ctx, SelectOptions{
			Name:         q.Name,
			Message:      message,
			Options:      opts,
			InitialValue: initial,
			MaxItems:     maxItems(q),
		})
	}
	return nil, &UnsupportedTypeError{Type: q.Type, Question: q.Name}
}

func applyFilter(q Question, raw any, answers *Answers) (any, error) {
	if q.Filter == nil {
		return raw, nil
	}
	value, err := q.Filter(raw, answers)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", q.Name, err)
	}
	return value, nil
}

func multiSelectOptions(q Question, message string, def any) MultiSelectOptions {
	initial := q.InitialValues
	if initial == nil {
		initial = checkedValues(q.Choices)
	}
	if initial == nil {
		initial = toSlice(def)
	}
	if initial == nil {
		initial = []any{}
	}
	return MultiSelectOptions{
		Name:          q.Name,
		Message:       message,
		Options:       questionOptions(q),
		InitialValues: initial,
		Required:      q.Required,
		CursorAt:      q.CursorAt,
		MaxItems:      maxItems(q),
	}
}

// questionOptions prefers native Options and otherwise translates Choices.
func questionOptions(q Question) []Option {
	if len(q.Options) > 0 {
		return q.Options
	}
	return translateChoices(q.Choices)
}

func translateChoices(choices []Choice) []Option {
	options := make([]Option, 0, len(choices))
	for _, c := range choices {
		if c.Separator {
			continue
		}
		options = append(options, Option{
			Value: c.Value,
			Label: c.label(),
			Hint:  c.Hint,
		})
	}
	return options
}

// checkedValues returns the values of pre-checked choices, or nil when no
// choice is checked.
func checkedValues(choices []Choice) []any {
	var values []any
	for _, c := range choices {
		if c.Checked && !c.Separator {
			values = append(values, c.Value)
		}
	}
	return values
}

// expandOptions drops separators and entries with neither value nor key,
// prefixes each label with its shortcut key and returns the joined keys.
func expandOptions(choices []Choice) ([]Option, string) {
	options := make([]Option, 0, len(choices))
	var keys strings.Builder
	for _, c := range choices {
		if c.Separator || (c.Value == nil && c.Key == "") {
			continue
		}
		value := c.Value
		if value == nil {
			value = c.Key
		}
		label := c.label()
		if c.Key != "" {
			label = c.Key + ") " + label
			keys.WriteString(c.Key)
		}
		options = append(options, Option{Value: value, Label: label, Hint: c.Hint})
	}
	return options, keys.String()
}

// toBool accepts what cast understands plus the yes/no words stored by
// prompts that record their answer as text.
func toBool(v any) (bool, error) {
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "y", "yes", "on":
			return true, nil
		case "n", "no", "off":
			return false, nil
		}
	}
	return cast.ToBoolE(v)
}

func maxItems(q Question) int {
	if q.MaxItems > 0 {
		return q.MaxItems
	}
	return q.PageSize
}
