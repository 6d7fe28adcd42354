// Package cmd implements the ask command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/idleberg/go-ask"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix is the prefix of environment variables overriding flags,
// e.g. ASK_STORE or ASK_FORMAT.
const EnvPrefix = "ASK"

// Version info set by main package
var versionInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// SetVersionInfo is called by main package to set version information
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// app carries the state shared by all commands of one invocation.
type app struct {
	v      *viper.Viper
	logger *zap.Logger

	out    io.Writer
	errOut io.Writer
	// prompter replaces the interactive terminal when set.
	prompter ask.Prompter
}

// Execute builds the command tree and runs it with the process arguments.
func Execute(ctx context.Context) error {
	a := &app{
		v:      viper.New(),
		logger: zap.NewNop(),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	return newRootCmd(a).ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ask",
		Short: "Ask declarative questions in the terminal",
		Long: `ask runs question files (YAML, TOML or JSON) as interactive prompts
and prints the answers. Answers of questions marked "store" are remembered
in a project file such as .yo-rc.json and offered as defaults next time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.ask.yaml or ./.ask.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (sets log level to debug)")
	flags.String("store", "", "project storage file for stored answers, e.g. .yo-rc.json")
	flags.String("namespace", "", "top-level key of the storage file to keep answers under")
	flags.StringP("format", "f", string(formatTable), "output format: json, yaml or table")

	for _, name := range []string{"config", "verbose", "store", "namespace", "format"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(newRunCmd(a), newStoreCmd(a), newVersionCmd(a))
	return root
}

// initConfig reads the optional config file and environment variables and
// creates the logger.
func (a *app) initConfig() error {
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if cfgFile := a.v.GetString("config"); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.AddConfigPath(".")
		a.v.SetConfigName(".ask")
		a.v.SetConfigType("yaml")
		if err := a.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	a.logger = newLogger(a.errOut, a.v.GetBool("verbose"))
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("Using config file", zap.String("path", filepath.Clean(used)))
	}
	return nil
}

// openStore opens the storage file named by --store. It returns nil when no
// store is configured.
func (a *app) openStore() (*ask.FileStore, error) {
	path := a.v.GetString("store")
	if path == "" {
		return nil, nil
	}
	var options []ask.FileStoreOption
	if ns := a.v.GetString("namespace"); ns != "" {
		options = append(options, ask.WithNamespace(ns))
	}
	options = append(options, ask.WithStoreLogger(a.logger))
	return ask.NewFileStore(path, options...)
}
