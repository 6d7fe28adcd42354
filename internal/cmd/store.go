package cmd

import (
	"errors"
	"fmt"

	"github.com/idleberg/go-ask"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// DefaultStorePath is used by the store commands when --store is not set.
const DefaultStorePath = ".yo-rc.json"

// ErrKeyNotFound is returned by store get for a name that was never stored.
var ErrKeyNotFound = errors.New("key not found")

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect and edit stored answers",
		Long: `Inspect and edit the answers remembered in a storage file.
Without --store the commands operate on ` + DefaultStorePath + ` in the current directory.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List stored answers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.storeList()
			},
		},
		&cobra.Command{
			Use:   "get <name>",
			Short: "Print one stored answer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.storeGet(args[0])
			},
		},
		&cobra.Command{
			Use:   "set <name> <value>",
			Short: "Store an answer",
			Long: `Store an answer. The value is parsed as YAML, so true, 3 and [a, b]
are stored as a boolean, a number and a list. Quote it to keep a string.`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.storeSet(args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Remove a stored answer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.storeDelete(args[0])
			},
		},
	)
	return cmd
}

func (a *app) mustOpenStore() (*ask.FileStore, error) {
	if a.v.GetString("store") == "" {
		a.v.Set("store", DefaultStorePath)
	}
	return a.openStore()
}

func (a *app) storeList() error {
	format, err := parseFormat(a.v.GetString("format"))
	if err != nil {
		return err
	}
	store, err := a.mustOpenStore()
	if err != nil {
		return err
	}
	keys, err := store.Keys()
	if err != nil {
		return err
	}

	answers := ask.NewAnswers()
	for _, key := range keys {
		value, _, err := store.Get(key)
		if err != nil {
			return err
		}
		answers.Set(key, value)
	}

	if format != formatTable {
		return writeAnswers(a.out, format, answers)
	}
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(store.Path())
	t.AppendHeader(table.Row{"Name", "Value"})
	for _, key := range answers.Keys() {
		t.AppendRow(table.Row{key, displayValue(answers.Value(key))})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d stored", answers.Len())})
	_, err = fmt.Fprintln(a.out, t.Render())
	return err
}

func (a *app) storeGet(name string) error {
	store, err := a.mustOpenStore()
	if err != nil {
		return err
	}
	value, ok, err := store.Get(name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, name)
	}
	_, err = fmt.Fprintln(a.out, displayValue(value))
	return err
}

func (a *app) storeSet(name, raw string) error {
	store, err := a.mustOpenStore()
	if err != nil {
		return err
	}
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil || value == nil {
		value = raw
	}
	return store.Set(name, value)
}

func (a *app) storeDelete(name string) error {
	store, err := a.mustOpenStore()
	if err != nil {
		return err
	}
	return store.Delete(name)
}
