// Package main demonstrates the filtered choice primitives with a custom theme.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/idleberg/go-ask"
)

var languages = []ask.Option{
	{Value: "go", Label: "Go"},
	{Value: "rust", Label: "Rust"},
	{Value: "ts", Label: "TypeScript", Hint: "typed JavaScript"},
	{Value: "js", Label: "JavaScript"},
	{Value: "py", Label: "Python"},
	{Value: "rb", Label: "Ruby"},
	{Value: "zig", Label: "Zig"},
}

func main() {
	t, err := ask.NewTerminal(ask.WithColorScheme(ask.ThemeDracula), ask.WithMaxItems(5))
	if err != nil {
		log.Fatal(err)
	}
	defer t.Close()

	ctx := context.Background()
	t.Intro("Type to filter, enter to submit")

	primary, err := t.Autocomplete(ctx, ask.AutocompleteOptions{
		Message:     "Primary language",
		Options:     languages,
		Placeholder: "start typing...",
	})
	if exit(t, err) {
		return
	}

	others, err := t.AutocompleteMultiSelect(ctx, ask.MultiSelectOptions{
		Message: "Other languages (tab to toggle)",
		Options: languages,
	})
	if exit(t, err) {
		return
	}

	t.Outro(fmt.Sprintf("primary=%v others=%v", primary, others))
}

func exit(t *ask.Terminal, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ask.ErrInterrupted):
		t.Cancel(ask.CancelNotice)
	default:
		log.Print(err)
	}
	return true
}
