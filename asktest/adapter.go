package asktest

import "github.com/idleberg/go-ask"

// Adapter is an *ask.Adapter driven by a scripted Prompter. It implements
// ask.TestSubstitute, so a Generator created with it keeps it.
//
//	adapter := asktest.NewAdapter(map[string]any{"projectName": "demo"})
//	gen, _ := ask.NewGenerator(ask.WithEnvironment(&ask.Environment{Adapter: adapter}))
type Adapter struct {
	*ask.Adapter
	Prompter *Prompter
}

var _ ask.TestSubstitute = (*Adapter)(nil)

// NewAdapter returns an adapter answering from answers.
func NewAdapter(answers map[string]any, options ...ask.AdapterOption) *Adapter {
	p := NewPrompter(answers)
	return &Adapter{
		Adapter:  ask.NewAdapter(p, options...),
		Prompter: p,
	}
}

// TestSubstitute implements ask.TestSubstitute.
func (a *Adapter) TestSubstitute() {}
