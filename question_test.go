package ask

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		questions   []Question
		expected    []Type
		expectedErr error
	}{
		{name: "no questions", questions: nil, expected: []Type{}},
		{
			name:      "empty type becomes input",
			questions: []Question{{Name: "a"}, {Name: "b", Type: TypeConfirm}},
			expected:  []Type{TypeInput, TypeConfirm},
		},
		{
			name: "every supported type",
			questions: []Question{
				{Name: "1", Type: TypeText}, {Name: "2", Type: TypePassword},
				{Name: "3", Type: TypeNumber}, {Name: "4", Type: TypeList},
				{Name: "5", Type: TypeRawList}, {Name: "6", Type: TypeSelect},
				{Name: "7", Type: TypeCheckbox}, {Name: "8", Type: TypeMultiSelect},
				{Name: "9", Type: TypeAutocomplete}, {Name: "10", Type: TypeAutocompleteMultiSelect},
				{Name: "11", Type: TypeExpand},
			},
			expected: []Type{
				TypeText, TypePassword, TypeNumber, TypeList, TypeRawList, TypeSelect,
				TypeCheckbox, TypeMultiSelect, TypeAutocomplete, TypeAutocompleteMultiSelect, TypeExpand,
			},
		},
		{
			name:        "unknown type",
			questions:   []Question{{Name: "a"}, {Name: "editor", Type: "editor"}},
			expectedErr: ErrUnsupportedType,
		},
		{
			name:        "missing name",
			questions:   []Question{{Message: "Name?"}},
			expectedErr: ErrMissingName,
		},
		{
			name:        "duplicate name",
			questions:   []Question{{Name: "a"}, {Name: "a", Type: TypeConfirm}},
			expectedErr: ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Normalize(tt.questions...)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			types := make([]Type, 0, len(got))
			for _, q := range got {
				types = append(types, q.Type)
			}
			assert.Equal(t, tt.expected, types)
		})
	}
}

func TestUnsupportedTypeError(t *testing.T) {
	t.Parallel()

	_, err := Normalize(Question{Name: "bio", Type: "editor"})
	var typeErr *UnsupportedTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, Type("editor"), typeErr.Type)
	assert.Equal(t, "bio", typeErr.Question)
	assert.Equal(t, `unknown prompt type "editor" for question "bio"`, err.Error())
}

func TestChoiceLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Label", Choice{Label: "Label", Name: "Name", Value: 1}.label())
	assert.Equal(t, "Name", Choice{Name: "Name", Value: 1}.label())
	assert.Equal(t, "1", Choice{Value: 1}.label())
	assert.Equal(t, "k", Choice{Key: "k"}.label())

	choices := StringChoices("a", "b")
	assert.Equal(t, []Choice{{Value: "a", Label: "a"}, {Value: "b", Label: "b"}}, choices)
	assert.True(t, SeparatorChoice().Separator)
}

func TestConditions(t *testing.T) {
	t.Parallel()

	answers := NewAnswers()
	answers.Set("useTS", true)

	tests := []struct {
		name      string
		condition Condition
		expected  bool
	}{
		{name: "nil asks", condition: nil, expected: true},
		{name: "true literal", condition: Bool(true), expected: true},
		{name: "false literal", condition: Bool(false), expected: false},
		{name: "predicate over answers", condition: When(func(a *Answers) bool { return a.Bool("useTS") }), expected: true},
		{name: "predicate on missing answer", condition: When(func(a *Answers) bool { return a.Bool("other") }), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := shouldAsk(t.Context(), tt.condition, answers)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("function error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		_, err := shouldAsk(t.Context(), ConditionFunc(func(context.Context, *Answers) (bool, error) {
			return false, boom
		}), answers)
		assert.ErrorIs(t, err, boom)
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	seed := map[string]any{"name": "demo"}
	store := NewMemoryStore(seed)
	seed["name"] = "mutated"

	v, ok, err := store.Get("name")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "demo", v)

	require.NoError(t, store.Set("license", "MIT"))
	assert.Equal(t, []string{"license", "name"}, store.Keys())

	store.Delete("name")
	_, ok, err = store.Get("name")
	require.NoError(t, err)
	assert.False(t, ok)

	var zero MemoryStore
	require.NoError(t, zero.Set("x", 1))
	assert.Equal(t, []string{"x"}, zero.Keys())
}
