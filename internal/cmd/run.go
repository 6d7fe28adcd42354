package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/idleberg/go-ask"
	"github.com/idleberg/go-ask/internal/questionfile"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <questions-file>...",
		Short: "Ask the questions of one or more files",
		Long: `Ask the questions of one or more question files in order and print the
merged answers. Files may be YAML, TOML or JSON; the format follows the
extension. Cancelling a prompt prints a notice and exits successfully
without output.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), args)
		},
	}
	cmd.Flags().String("theme", ask.ThemeDefault.Name, "color theme of the prompts")
	_ = a.v.BindPFlag("theme", cmd.Flags().Lookup("theme"))
	return cmd
}

func (a *app) run(ctx context.Context, paths []string) error {
	format, err := parseFormat(a.v.GetString("format"))
	if err != nil {
		return err
	}

	files, err := loadQuestionFiles(ctx, paths)
	if err != nil {
		return err
	}

	prompter, closePrompter, err := a.openPrompter()
	if err != nil {
		return err
	}
	defer closePrompter()

	options := []ask.GeneratorOption{
		ask.WithPrompter(prompter),
		ask.WithGeneratorLogger(a.logger),
	}
	store, err := a.openStore()
	if err != nil {
		return err
	}
	if store != nil {
		options = append(options, ask.WithConfigStorage(store))
	}

	gen, err := ask.NewGenerator(options...)
	if err != nil {
		return err
	}

	merged := ask.NewAnswers()
	for _, file := range files {
		if file.Intro != "" {
			gen.Intro(file.Intro)
		}
		answers, err := gen.Prompt(ctx, file.Questions...)
		if errors.Is(err, ask.ErrCanceled) {
			a.logger.Debug("run cancelled", zap.String("file", file.Path))
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", file.Path, err)
		}
		merged.Merge(answers)
		if file.Outro != "" {
			gen.Outro(file.Outro)
		}
	}

	return writeAnswers(a.out, format, merged)
}

// loadQuestionFiles reads all files concurrently and returns them in
// argument order.
func loadQuestionFiles(ctx context.Context, paths []string) ([]*questionfile.File, error) {
	files := make([]*questionfile.File, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			file, err := questionfile.Load(path)
			if err != nil {
				return err
			}
			files[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// openPrompter returns the injected prompter or an interactive terminal that
// draws on stderr so stdout carries only the answers.
func (a *app) openPrompter() (ask.Prompter, func(), error) {
	if a.prompter != nil {
		return a.prompter, func() {}, nil
	}

	theme, ok := ask.ThemeByName(a.v.GetString("theme"))
	if !ok {
		return nil, nil, fmt.Errorf("unknown theme %q (available: %v)", a.v.GetString("theme"), ask.ThemeNames())
	}
	terminal, err := ask.NewTerminal(
		ask.WithColorScheme(theme),
		ask.WithOutput(colorable.NewColorableStderr()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	return terminal, func() {
		if err := terminal.Close(); err != nil {
			a.logger.Warn("failed to close terminal", zap.Error(err))
		}
	}, nil
}
