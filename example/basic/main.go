// Package main demonstrates asking a short list of questions in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/idleberg/go-ask"
)

func main() {
	t, err := ask.NewTerminal()
	if err != nil {
		log.Fatal(err)
	}
	defer t.Close()

	adapter := ask.NewAdapter(t)
	adapter.Intro("create-demo")

	answers, err := adapter.Prompt(context.Background(),
		ask.Question{Name: "projectName", Message: "Project name?", Default: "my-app", Required: true},
		ask.Question{Name: "useTS", Type: ask.TypeConfirm, Message: "Use TypeScript?", Default: true},
		ask.Question{
			Name:    "tsPath",
			Message: "Where should the sources live?",
			Default: "src",
			When:    ask.When(func(a *ask.Answers) bool { return a.Bool("useTS") }),
		},
		ask.Question{
			Name:    "license",
			Type:    ask.TypeList,
			Message: "License",
			Choices: []ask.Choice{
				{Value: "MIT", Hint: "permissive"},
				{Value: "Apache-2.0", Hint: "patent grant"},
				{Value: "GPL-3.0", Hint: "copyleft"},
			},
		},
		ask.Question{
			Name:    "overwrite",
			Type:    ask.TypeExpand,
			Message: "Overwrite existing files?",
			Choices: []ask.Choice{
				{Key: "y", Name: "Overwrite", Value: "yes"},
				{Key: "n", Name: "Skip", Value: "no"},
			},
		},
	)
	if errors.Is(err, ask.ErrCanceled) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	adapter.Outro("You're all set")
	for _, name := range answers.Keys() {
		fmt.Printf("%s = %v\n", name, answers.Value(name))
	}
}
