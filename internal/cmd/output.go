package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/idleberg/go-ask"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
	formatTable outputFormat = "table"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case formatJSON, formatYAML, formatTable:
		return f, nil
	case "yml":
		return formatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (use json, yaml or table)", s)
}

// writeAnswers renders answers in the given format.
func writeAnswers(w io.Writer, format outputFormat, answers *ask.Answers) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(answers, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode answers: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		data, err := yaml.Marshal(answers)
		if err != nil {
			return fmt.Errorf("failed to encode answers: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Name", "Value"})
	for _, name := range answers.Keys() {
		t.AppendRow(table.Row{name, displayValue(answers.Value(name))})
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// displayValue renders a value for a table cell or a plain get.
func displayValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = displayValue(item)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
	return fmt.Sprint(v)
}
