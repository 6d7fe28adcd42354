// Package main demonstrates a generator that remembers answers in .yo-rc.json.
//
// Run it twice: the second run offers the first run's answers as defaults.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/idleberg/go-ask"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := ask.NewFileStore(".yo-rc.json",
		ask.WithNamespace("generator-demo"),
		ask.WithStoreLogger(logger),
	)
	if err != nil {
		log.Fatal(err)
	}

	gen, err := ask.NewGenerator(
		ask.WithConfigStorage(store),
		ask.WithGeneratorLogger(logger),
	)
	if err != nil {
		log.Fatal(err)
	}

	gen.Intro("generator-demo")
	answers, err := gen.Prompt(context.Background(),
		ask.Question{Name: "author", Message: "Author name", Store: true},
		ask.Question{
			Name:    "features",
			Type:    ask.TypeCheckbox,
			Message: "Features",
			Store:   true,
			Choices: []ask.Choice{
				{Value: "lint", Checked: true},
				{Value: "test", Checked: true},
				{Value: "docs"},
			},
		},
		ask.Question{Name: "port", Type: ask.TypeNumber, Message: "Dev server port", Default: 3000},
	)
	if errors.Is(err, ask.ErrCanceled) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	gen.Outro(fmt.Sprintf("Stored in %s", store.Path()))
	fmt.Println(answers.Map())
}
