package ask

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrUnknownStorage is returned when a named storage was never registered.
var ErrUnknownStorage = errors.New("unknown storage")

// PromptAdapter is the serialized prompt entry point a host environment
// exposes. *Adapter implements it.
type PromptAdapter interface {
	PromptWithAnswers(ctx context.Context, initial *Answers, questions ...Question) (*Answers, error)
}

// TestSubstitute marks a PromptAdapter meant to stand in for the real one in
// tests. A Generator never replaces an adapter that implements it.
type TestSubstitute interface {
	PromptAdapter
	TestSubstitute()
}

// Environment is the host context a Generator runs in.
type Environment struct {
	Adapter PromptAdapter
}

// Generator attaches the question engine to a scaffolding host and bridges
// answers of Store questions to and from project storage.
type Generator struct {
	// Env holds the adapter every Prompt call goes through.
	Env *Environment
	// Config is the default storage for Store questions; nil disables
	// persistence.
	Config Storage

	storages map[string]Storage
	logger   *zap.Logger
}

type generatorConfig struct {
	env      *Environment
	prompter Prompter
	config   Storage
	logger   *zap.Logger
}

// GeneratorOption configures NewGenerator.
type GeneratorOption func(*generatorConfig)

// WithEnvironment runs the generator in an existing host environment.
func WithEnvironment(env *Environment) GeneratorOption {
	return func(c *generatorConfig) {
		c.env = env
	}
}

// WithPrompter sets the primitives used when the generator creates its own
// adapter. Without it a Terminal is opened.
func WithPrompter(prompter Prompter) GeneratorOption {
	return func(c *generatorConfig) {
		c.prompter = prompter
	}
}

// WithConfigStorage sets the default storage for Store questions.
func WithConfigStorage(storage Storage) GeneratorOption {
	return func(c *generatorConfig) {
		c.config = storage
	}
}

// WithGeneratorLogger sets the logger of the generator and of any adapter it
// creates.
func WithGeneratorLogger(logger *zap.Logger) GeneratorOption {
	return func(c *generatorConfig) {
		c.logger = logger
	}
}

// NewGenerator returns a generator whose environment adapter is an *Adapter.
//
// An adapter already supplied through WithEnvironment is kept when it is an
// *Adapter or a TestSubstitute; any other adapter is replaced.
func NewGenerator(options ...GeneratorOption) (*Generator, error) {
	cfg := generatorConfig{logger: zap.NewNop()}
	for _, option := range options {
		option(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	env := cfg.env
	if env == nil {
		env = &Environment{}
	}
	if !keepAdapter(env.Adapter) {
		prompter := cfg.prompter
		if prompter == nil {
			t, err := NewTerminal()
			if err != nil {
				return nil, fmt.Errorf("failed to open terminal: %w", err)
			}
			prompter = t
		}
		env.Adapter = NewAdapter(prompter, WithLogger(cfg.logger))
	}

	return &Generator{
		Env:      env,
		Config:   cfg.config,
		storages: make(map[string]Storage),
		logger:   cfg.logger,
	}, nil
}

func keepAdapter(adapter PromptAdapter) bool {
	switch adapter.(type) {
	case nil:
		return false
	case TestSubstitute, *Adapter:
		return true
	}
	return false
}

// RegisterStorage makes storage selectable by name in PromptWithStorageName.
func (g *Generator) RegisterStorage(name string, storage Storage) {
	g.storages[name] = storage
}

// Intro prints an opening notice through the adapter, if it supports notices.
func (g *Generator) Intro(message string) {
	if n, ok := g.Env.Adapter.(Notifier); ok {
		n.Intro(message)
	}
}

// Outro prints a closing notice through the adapter, if it supports notices.
func (g *Generator) Outro(message string) {
	if n, ok := g.Env.Adapter.(Notifier); ok {
		n.Outro(message)
	}
}

// Prompt asks questions, persisting Store answers in g.Config.
func (g *Generator) Prompt(ctx context.Context, questions ...Question) (*Answers, error) {
	return g.PromptWithStorage(ctx, g.Config, questions...)
}

// PromptWithStorageName asks questions, persisting Store answers in the
// storage registered under name.
func (g *Generator) PromptWithStorageName(ctx context.Context, name string, questions ...Question) (*Answers, error) {
	storage, ok := g.storages[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorage, name)
	}
	return g.PromptWithStorage(ctx, storage, questions...)
}

// PromptWithStorage asks questions, persisting Store answers in storage.
//
// Before asking, a stored value of each Store question replaces its default.
// After the session, each Store question with a non-nil answer is written
// back under its name.
func (g *Generator) PromptWithStorage(ctx context.Context, storage Storage, questions ...Question) (*Answers, error) {
	normalized, err := Normalize(questions...)
	if err != nil {
		return nil, err
	}

	withDefaults, err := g.loadStoredDefaults(normalized, storage)
	if err != nil {
		return nil, err
	}

	answers, err := g.Env.Adapter.PromptWithAnswers(ctx, nil, withDefaults...)
	if err != nil {
		return nil, err
	}

	if err := g.saveAnswers(normalized, answers, storage); err != nil {
		return nil, err
	}
	return answers, nil
}

func (g *Generator) loadStoredDefaults(questions []Question, storage Storage) ([]Question, error) {
	if storage == nil {
		return questions, nil
	}
	derived := make([]Question, len(questions))
	for i, q := range questions {
		derived[i] = q
		if !q.Store {
			continue
		}
		value, ok, err := storage.Get(q.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to load stored answer %q: %w", q.Name, err)
		}
		if !ok || value == nil {
			continue
		}
		derived[i].Default = value
		derived[i].DefaultFunc = nil
		g.logger.Debug("stored default loaded", zap.String("question", q.Name))
	}
	return derived, nil
}

func (g *Generator) saveAnswers(questions []Question, answers *Answers, storage Storage) error {
	if storage == nil {
		return nil
	}
	for _, q := range questions {
		if !q.Store {
			continue
		}
		value, ok := answers.Get(q.Name)
		if !ok || value == nil {
			continue
		}
		if err := storage.Set(q.Name, value); err != nil {
			return fmt.Errorf("failed to store answer %q: %w", q.Name, err)
		}
		g.logger.Debug("answer stored", zap.String("question", q.Name))
	}
	return nil
}
