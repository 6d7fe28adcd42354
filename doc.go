// Package ask asks declarative questions on an interactive terminal.
//
// Questions are written in either of two dialects: the Inquirer style
// (input, list, rawlist, checkbox, expand with Default, Choices, PageSize)
// or the primitive style (text, select, multiselect with InitialValue,
// Options, MaxItems). Both are translated to one set of prompt primitives,
// so a question file written for one dialect keeps working with the other.
//
// Key Features:
//
//   - Thirteen question types dispatched to seven primitives
//   - Conditional questions (When) evaluated against earlier answers
//   - Required checks and custom validators with re-prompting
//   - Filters that transform an answer before it is recorded
//   - Sessions serialized in submission order, even across goroutines
//   - Answers of Store questions persisted in project storage
//   - Cancellation reported as an error, never as a partial result
//
// Quick Start:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/idleberg/go-ask"
//	)
//
//	func main() {
//		t, err := ask.NewTerminal()
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer t.Close()
//
//		adapter := ask.NewAdapter(t)
//		answers, err := adapter.Prompt(context.Background(),
//			ask.Question{Name: "projectName", Message: "Project name", Default: "my-app"},
//			ask.Question{Name: "useTS", Type: ask.TypeConfirm, Message: "Use TypeScript?"},
//		)
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(answers.String("projectName"), answers.Bool("useTS"))
//	}
//
// Generators:
//
// A Generator wraps an adapter for scaffolding tools and remembers answers
// of questions marked Store:
//
//	store, _ := ask.NewFileStore(".yo-rc.json", ask.WithNamespace("generator-app"))
//	gen, err := ask.NewGenerator(ask.WithConfigStorage(store))
//	if err != nil {
//		log.Fatal(err)
//	}
//	answers, err := gen.Prompt(ctx, ask.Question{Name: "author", Message: "Author", Store: true})
//
// Error Handling:
//
//   - ask.ErrCanceled: the user pressed Ctrl+C; the error is a *CanceledError
//   - ask.ErrEOF: input ended
//   - ask.ErrUnsupportedType, ask.ErrMissingName, ask.ErrDuplicateName:
//     a question was rejected before anything was asked
//   - context.Canceled, context.DeadlineExceeded: the context ended
//
// Key Bindings:
//
//   - Enter: Submit
//   - Ctrl+C: Cancel
//   - Arrow keys: Move the cursor or the highlighted option
//   - Space: Toggle an option of a multiselect, a toggles all of them
//   - Tab: Toggle an option of an autocomplete multiselect
//   - Ctrl+A / Home, Ctrl+E / End, Ctrl+K, Ctrl+U, Ctrl+W: Line editing
//
// Command Line:
//
// The ask command (cmd/ask) asks the questions of YAML, TOML or JSON
// question files and prints the answers:
//
//	ask run questions.yaml --store .yo-rc.json --format json
//
// Testing:
//
// Package asktest provides a scripted Prompter and an Adapter that a
// Generator never replaces, so question flows can be tested without a
// terminal.
package ask
