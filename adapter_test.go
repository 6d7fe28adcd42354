package ask_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/idleberg/go-ask"
	"github.com/idleberg/go-ask/asktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"
)

func projectQuestions() []ask.Question {
	return []ask.Question{
		{Name: "projectName", Message: "Project name?", Default: "my-app"},
		{Name: "useTS", Type: ask.TypeConfirm, Message: "Use TypeScript?"},
		{
			Name:    "tsPath",
			Message: "Where should TS live?",
			Default: "src",
			When:    ask.When(func(a *ask.Answers) bool { return a.Bool("useTS") }),
		},
	}
}

func TestAdapterPromptProjectFlow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		scripted     map[string]any
		expectedKeys []string
		expected     map[string]any
	}{
		{
			name:         "defaults accepted and condition false",
			scripted:     map[string]any{"useTS": false},
			expectedKeys: []string{"projectName", "useTS"},
			expected:     map[string]any{"projectName": "my-app", "useTS": false},
		},
		{
			name:         "condition true asks the follow-up",
			scripted:     map[string]any{"projectName": "demo", "useTS": true},
			expectedKeys: []string{"projectName", "useTS", "tsPath"},
			expected:     map[string]any{"projectName": "demo", "useTS": true, "tsPath": "src"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := asktest.NewPrompter(tt.scripted)
			answers, err := ask.NewAdapter(p).Prompt(t.Context(), projectQuestions()...)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedKeys, answers.Keys())
			assert.Equal(t, tt.expected, answers.Map())
			assert.Equal(t, tt.expectedKeys, p.Asked())
		})
	}
}

func TestAdapterSkipsLiteralFalse(t *testing.T) {
	t.Parallel()

	p := asktest.NewPrompter(nil)
	answers, err := ask.NewAdapter(p).Prompt(t.Context(),
		ask.Question{Name: "hidden", When: ask.Bool(false)},
		ask.Question{Name: "shown", Default: "x"},
	)
	require.NoError(t, err)
	assert.False(t, answers.Has("hidden"))
	assert.Equal(t, []string{"shown"}, p.Asked())
}

func TestAdapterTranslation(t *testing.T) {
	t.Parallel()

	t.Run("expand appends keys and defaults to the first entry", func(t *testing.T) {
		t.Parallel()

		p := asktest.NewPrompter(nil)
		answers, err := ask.NewAdapter(p).Prompt(t.Context(), ask.Question{
			Name:    "overwrite",
			Type:    ask.TypeExpand,
			Message: "Overwrite?",
			Choices: []ask.Choice{
				{Key: "y", Name: "Overwrite", Value: "yes"},
				ask.SeparatorChoice(),
				{Key: "n", Name: "Skip", Value: "no"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "yes", answers.Value("overwrite"))

		call, ok := p.Call("overwrite")
		require.True(t, ok)
		assert.Equal(t, asktest.PrimitiveSelect, call.Primitive)
		assert.Equal(t, "Overwrite? (yn)", call.Message)
		opts := call.Options.(ask.SelectOptions)
		assert.Equal(t, []ask.Option{
			{Value: "yes", Label: "y) Overwrite"},
			{Value: "no", Label: "n) Skip"},
		}, opts.Options)
	})

	t.Run("number is coerced after validation retries", func(t *testing.T) {
		t.Parallel()

		p := asktest.NewPrompter(map[string]any{"port": asktest.Sequence{"abc", "8080"}})
		answers, err := ask.NewAdapter(p).Prompt(t.Context(), ask.Question{Name: "port", Type: ask.TypeNumber})
		require.NoError(t, err)
		assert.Equal(t, float64(8080), answers.Value("port"))
		assert.Equal(t, []asktest.Rejection{
			{Name: "port", Value: "abc", Message: ask.InvalidNumberMessage},
		}, p.Rejections())
	})

	t.Run("checked choices become initial values", func(t *testing.T) {
		t.Parallel()

		p := asktest.NewPrompter(nil)
		answers, err := ask.NewAdapter(p).Prompt(t.Context(), ask.Question{
			Name: "features",
			Type: ask.TypeCheckbox,
			Choices: []ask.Choice{
				{Value: "lint", Checked: true},
				{Value: "test"},
				{Value: "docs", Checked: true},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []any{"lint", "docs"}, answers.Value("features"))

		call, _ := p.Call("features")
		assert.Equal(t, asktest.PrimitiveMultiSelect, call.Primitive)
	})

	t.Run("filter transforms the recorded value", func(t *testing.T) {
		t.Parallel()

		p := asktest.NewPrompter(map[string]any{"name": "Demo App"})
		answers, err := ask.NewAdapter(p).Prompt(t.Context(), ask.Question{
			Name: "name",
			Filter: func(v any, _ *ask.Answers) (any, error) {
				return strings.ReplaceAll(strings.ToLower(v.(string)), " ", "-"), nil
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "demo-app", answers.Value("name"))
	})

	t.Run("dynamic message and default see earlier answers", func(t *testing.T) {
		t.Parallel()

		p := asktest.NewPrompter(map[string]any{"name": "demo"})
		answers, err := ask.NewAdapter(p).Prompt(t.Context(),
			ask.Question{Name: "name"},
			ask.Question{
				Name:        "bin",
				MessageFunc: func(a *ask.Answers) (string, error) { return "Binary for " + a.String("name") + "?", nil },
				DefaultFunc: func(a *ask.Answers) (any, error) { return a.String("name") + "-cli", nil },
			},
		)
		require.NoError(t, err)
		assert.Equal(t, "demo-cli", answers.Value("bin"))
		call, _ := p.Call("bin")
		assert.Equal(t, "Binary for demo?", call.Message)
	})

	t.Run("autocomplete routes to its primitive", func(t *testing.T) {
		t.Parallel()

		p := asktest.NewPrompter(map[string]any{"lang": "go"})
		answers, err := ask.NewAdapter(p).Prompt(t.Context(), ask.Question{
			Name:    "lang",
			Type:    ask.TypeAutocomplete,
			Choices: ask.StringChoices("go", "rust"),
		})
		require.NoError(t, err)
		assert.Equal(t, "go", answers.Value("lang"))
		call, _ := p.Call("lang")
		assert.Equal(t, asktest.PrimitiveAutocomplete, call.Primitive)
	})
}

func TestAdapterCancellation(t *testing.T) {
	t.Parallel()

	p := asktest.NewPrompter(map[string]any{
		"projectName": "demo",
		"useTS":       asktest.Cancel,
	})
	answers, err := ask.NewAdapter(p).Prompt(t.Context(), projectQuestions()...)
	assert.Nil(t, answers)
	require.ErrorIs(t, err, ask.ErrCanceled)

	var canceled *ask.CanceledError
	require.True(t, errors.As(err, &canceled))
	assert.Equal(t, "useTS", canceled.Question)
	assert.Equal(t, []string{"projectName"}, canceled.Answers.Keys())

	assert.Equal(t, []asktest.Notice{{Kind: "cancel", Message: ask.CancelNotice}}, p.Notices())
	assert.Equal(t, []string{"projectName", "useTS"}, p.Asked(), "nothing is asked after a cancel")
}

func TestAdapterErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	tests := []struct {
		name        string
		questions   []ask.Question
		expectedErr error
	}{
		{
			name:        "unknown type is rejected before asking",
			questions:   []ask.Question{{Name: "a"}, {Name: "b", Type: "editor"}},
			expectedErr: ask.ErrUnsupportedType,
		},
		{
			name: "condition error aborts",
			questions: []ask.Question{{Name: "a", When: ask.ConditionFunc(func(context.Context, *ask.Answers) (bool, error) {
				return false, boom
			})}},
			expectedErr: boom,
		},
		{
			name:        "validator error aborts",
			questions:   []ask.Question{{Name: "a", Validate: func(any, *ask.Answers) error { return boom }}},
			expectedErr: boom,
		},
		{
			name:        "filter error aborts",
			questions:   []ask.Question{{Name: "a", Filter: func(any, *ask.Answers) (any, error) { return nil, boom }}},
			expectedErr: boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := asktest.NewPrompter(map[string]any{"a": "x"})
			answers, err := ask.NewAdapter(p).Prompt(t.Context(), tt.questions...)
			assert.Nil(t, answers)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}

	t.Run("unknown type asks nothing", func(t *testing.T) {
		t.Parallel()

		p := asktest.NewPrompter(nil)
		_, err := ask.NewAdapter(p).Prompt(t.Context(), ask.Question{Name: "a"}, ask.Question{Name: "b", Type: "editor"})
		require.Error(t, err)
		assert.Empty(t, p.Asked())
	})
}

func TestAdapterPromptWithAnswers(t *testing.T) {
	t.Parallel()

	initial := ask.NewAnswers()
	initial.Set("useTS", true)

	p := asktest.NewPrompter(nil)
	answers, err := ask.NewAdapter(p).PromptWithAnswers(t.Context(), initial, projectQuestions()[2])
	require.NoError(t, err)
	assert.Equal(t, []string{"useTS", "tsPath"}, answers.Keys())
	assert.Equal(t, []string{"useTS"}, initial.Keys(), "initial answers are not modified")
}

// blockingPrompter holds the first Text call until release is closed.
type blockingPrompter struct {
	*asktest.Prompter
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (b *blockingPrompter) Text(ctx context.Context, opts ask.TextOptions) (string, error) {
	b.once.Do(func() {
		close(b.started)
		<-b.release
	})
	return b.Prompter.Text(ctx, opts)
}

func TestAdapterSessionsDoNotInterleave(t *testing.T) {
	t.Parallel()

	p := &blockingPrompter{
		Prompter: asktest.NewPrompter(nil),
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	adapter := ask.NewAdapter(p)

	session := func(prefix string) []ask.Question {
		return []ask.Question{
			{Name: prefix + "1", Default: prefix},
			{Name: prefix + "2", Default: prefix},
		}
	}

	var g errgroup.Group
	g.Go(func() error {
		_, err := adapter.Prompt(t.Context(), session("a")...)
		return err
	})
	<-p.started
	g.Go(func() error {
		_, err := adapter.Prompt(t.Context(), session("b")...)
		return err
	})

	close(p.release)
	require.NoError(t, g.Wait())
	assert.Equal(t, []string{"a1", "a2", "b1", "b2"}, p.Asked())
}

func TestAdapterLogsWithoutAnswerValues(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	p := asktest.NewPrompter(map[string]any{"secret": "hunter2"})
	_, err := ask.NewAdapter(p, ask.WithLogger(zap.New(core))).Prompt(t.Context(),
		ask.Question{Name: "secret", Type: ask.TypePassword},
	)
	require.NoError(t, err)

	require.NotZero(t, logs.Len())
	for _, entry := range logs.All() {
		for _, field := range entry.Context {
			assert.NotEqual(t, "hunter2", field.String)
		}
	}
	assert.Equal(t, 1, logs.FilterMessage("question answered").Len())
}

func TestAdapterNotices(t *testing.T) {
	t.Parallel()

	adapter := asktest.NewAdapter(nil)
	adapter.Intro("create-demo")
	adapter.Outro("Done")
	assert.Equal(t, []asktest.Notice{
		{Kind: "intro", Message: "create-demo"},
		{Kind: "outro", Message: "Done"},
	}, adapter.Prompter.Notices())
}
