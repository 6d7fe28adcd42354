package ask_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/idleberg/go-ask"
	"github.com/idleberg/go-ask/asktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedQuestions() []ask.Question {
	return []ask.Question{
		{Name: "projectName", Message: "Project name?", Default: "my-app", Store: true},
		{Name: "license", Type: ask.TypeList, Choices: ask.StringChoices("MIT", "ISC", "Apache-2.0"), Store: true},
		{Name: "install", Type: ask.TypeConfirm, Default: true},
	}
}

func newTestGenerator(t *testing.T, answers map[string]any, options ...ask.GeneratorOption) (*ask.Generator, *asktest.Adapter) {
	t.Helper()

	adapter := asktest.NewAdapter(answers)
	options = append([]ask.GeneratorOption{ask.WithEnvironment(&ask.Environment{Adapter: adapter})}, options...)
	gen, err := ask.NewGenerator(options...)
	require.NoError(t, err)
	return gen, adapter
}

func TestGeneratorStoredDefaults(t *testing.T) {
	t.Parallel()

	store := ask.NewMemoryStore(map[string]any{"projectName": "stored-app", "license": "ISC"})
	gen, adapter := newTestGenerator(t, nil, ask.WithConfigStorage(store))

	answers, err := gen.Prompt(t.Context(), storedQuestions()...)
	require.NoError(t, err)
	assert.Equal(t, "stored-app", answers.Value("projectName"))
	assert.Equal(t, "ISC", answers.Value("license"))
	assert.Equal(t, true, answers.Value("install"))

	call, ok := adapter.Prompter.Call("projectName")
	require.True(t, ok)
	assert.Equal(t, "stored-app", call.Options.(ask.TextOptions).InitialValue)
}

func TestGeneratorPersistsStoreAnswers(t *testing.T) {
	t.Parallel()

	store := ask.NewMemoryStore(nil)
	gen, _ := newTestGenerator(t, map[string]any{"projectName": "demo", "license": "MIT"}, ask.WithConfigStorage(store))

	_, err := gen.Prompt(t.Context(), storedQuestions()...)
	require.NoError(t, err)
	assert.Equal(t, []string{"license", "projectName"}, store.Keys(), "only Store questions are persisted")

	v, _, err := store.Get("projectName")
	require.NoError(t, err)
	assert.Equal(t, "demo", v)
}

func TestGeneratorFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".yo-rc.json")
	newStore := func() *ask.FileStore {
		store, err := ask.NewFileStore(path, ask.WithNamespace("generator-demo"))
		require.NoError(t, err)
		return store
	}

	first, _ := newTestGenerator(t, map[string]any{"projectName": "demo", "license": "Apache-2.0"}, ask.WithConfigStorage(newStore()))
	_, err := first.Prompt(t.Context(), storedQuestions()...)
	require.NoError(t, err)

	second, _ := newTestGenerator(t, nil, ask.WithConfigStorage(newStore()))
	answers, err := second.Prompt(t.Context(), storedQuestions()...)
	require.NoError(t, err)
	assert.Equal(t, "demo", answers.Value("projectName"))
	assert.Equal(t, "Apache-2.0", answers.Value("license"))
}

func TestGeneratorWithoutStorage(t *testing.T) {
	t.Parallel()

	gen, _ := newTestGenerator(t, map[string]any{"projectName": "demo"})
	answers, err := gen.Prompt(t.Context(), storedQuestions()...)
	require.NoError(t, err)
	assert.Equal(t, "demo", answers.Value("projectName"))
}

func TestGeneratorNamedStorage(t *testing.T) {
	t.Parallel()

	gen, _ := newTestGenerator(t, map[string]any{"projectName": "demo"})
	global := ask.NewMemoryStore(nil)
	gen.RegisterStorage("global", global)

	_, err := gen.PromptWithStorageName(t.Context(), "global", storedQuestions()...)
	require.NoError(t, err)
	assert.Contains(t, global.Keys(), "projectName")

	_, err = gen.PromptWithStorageName(t.Context(), "missing", storedQuestions()...)
	assert.ErrorIs(t, err, ask.ErrUnknownStorage)
}

// failingStore fails every read or write.
type failingStore struct{ err error }

func (f failingStore) Get(string) (any, bool, error) { return nil, false, f.err }
func (f failingStore) Set(string, any) error         { return f.err }

func TestGeneratorStorageErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk on fire")
	gen, adapter := newTestGenerator(t, nil, ask.WithConfigStorage(failingStore{err: boom}))

	_, err := gen.Prompt(t.Context(), storedQuestions()...)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, adapter.Prompter.Asked(), "load failures abort before asking")
}

func TestGeneratorCancellationSkipsPersistence(t *testing.T) {
	t.Parallel()

	store := ask.NewMemoryStore(nil)
	gen, _ := newTestGenerator(t, map[string]any{"projectName": "demo", "license": asktest.Cancel}, ask.WithConfigStorage(store))

	_, err := gen.Prompt(t.Context(), storedQuestions()...)
	assert.ErrorIs(t, err, ask.ErrCanceled)
	assert.Empty(t, store.Keys())
}

// foreignAdapter is a host adapter the generator does not know.
type foreignAdapter struct{}

func (foreignAdapter) PromptWithAnswers(context.Context, *ask.Answers, ...ask.Question) (*ask.Answers, error) {
	return nil, errors.New("foreign adapter must be replaced")
}

func TestNewGeneratorAdapterSelection(t *testing.T) {
	t.Parallel()

	t.Run("test substitute is kept", func(t *testing.T) {
		t.Parallel()
		gen, adapter := newTestGenerator(t, nil)
		assert.Same(t, adapter, gen.Env.Adapter)
	})

	t.Run("adapter is kept", func(t *testing.T) {
		t.Parallel()
		adapter := ask.NewAdapter(asktest.NewPrompter(nil))
		gen, err := ask.NewGenerator(ask.WithEnvironment(&ask.Environment{Adapter: adapter}))
		require.NoError(t, err)
		assert.Same(t, adapter, gen.Env.Adapter)
	})

	t.Run("foreign adapter is replaced", func(t *testing.T) {
		t.Parallel()
		p := asktest.NewPrompter(map[string]any{"projectName": "demo"})
		gen, err := ask.NewGenerator(
			ask.WithEnvironment(&ask.Environment{Adapter: foreignAdapter{}}),
			ask.WithPrompter(p),
		)
		require.NoError(t, err)

		replaced, ok := gen.Env.Adapter.(*ask.Adapter)
		require.True(t, ok)
		assert.Same(t, p, replaced.Prompter())

		answers, err := gen.Prompt(t.Context(), ask.Question{Name: "projectName"})
		require.NoError(t, err)
		assert.Equal(t, "demo", answers.Value("projectName"))
	})
}

func TestGeneratorNotices(t *testing.T) {
	t.Parallel()

	gen, adapter := newTestGenerator(t, nil)
	gen.Intro("create-demo")
	gen.Outro("All set")
	assert.Equal(t, []asktest.Notice{
		{Kind: "intro", Message: "create-demo"},
		{Kind: "outro", Message: "All set"},
	}, adapter.Prompter.Notices())
}
