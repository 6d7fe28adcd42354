package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idleberg/go-ask"
	"github.com/idleberg/go-ask/asktest"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const projectFile = `
intro: create-demo
outro: Done
questions:
  - name: projectName
    message: Project name?
    default: my-app
    store: true
  - name: useTS
    type: confirm
  - name: tsPath
    when: useTS
    default: src
`

func execute(t *testing.T, prompter ask.Prompter, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	a := &app{
		v:        viper.New(),
		logger:   zap.NewNop(),
		out:      &out,
		errOut:   &errOut,
		prompter: prompter,
	}
	root := newRootCmd(a)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRunPrintsAnswers(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "questions.yaml", projectFile)

	tests := []struct {
		name     string
		format   string
		expected string
	}{
		{
			name:     "json",
			format:   "json",
			expected: "{\n  \"projectName\": \"demo\",\n  \"useTS\": true,\n  \"tsPath\": \"src\"\n}\n",
		},
		{
			name:     "yaml",
			format:   "yaml",
			expected: "projectName: demo\nuseTS: true\ntsPath: src\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := asktest.NewPrompter(map[string]any{"projectName": "demo", "useTS": true})
			out, err := execute(t, p, "run", path, "--format", tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
			assert.Equal(t, []asktest.Notice{
				{Kind: "intro", Message: "create-demo"},
				{Kind: "outro", Message: "Done"},
			}, p.Notices())
		})
	}

	t.Run("table", func(t *testing.T) {
		t.Parallel()

		p := asktest.NewPrompter(map[string]any{"projectName": "demo"})
		out, err := execute(t, p, "run", path)
		require.NoError(t, err)
		assert.Contains(t, out, "projectName")
		assert.Contains(t, out, "demo")
		assert.NotContains(t, out, "tsPath")
	})
}

func TestRunMultipleFilesInOrder(t *testing.T) {
	t.Parallel()

	first := writeFile(t, "first.json", `[{"name": "a", "default": "1"}]`)
	second := writeFile(t, "second.toml", "[[questions]]\nname = \"b\"\ndefault = \"2\"\n")

	p := asktest.NewPrompter(nil)
	out, err := execute(t, p, "run", second, first, "-f", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": "1", "b": "2"}`, out)
	assert.Equal(t, []string{"b", "a"}, p.Asked())
}

func TestRunCancelExitsCleanly(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "questions.yaml", projectFile)
	p := asktest.NewPrompter(map[string]any{"useTS": asktest.Cancel})

	out, err := execute(t, p, "run", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, p.Notices(), asktest.Notice{Kind: "cancel", Message: ask.CancelNotice})
}

func TestRunStoresAnswers(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "questions.yaml", projectFile)
	store := filepath.Join(t.TempDir(), ".yo-rc.json")

	_, err := execute(t, asktest.NewPrompter(map[string]any{"projectName": "demo"}),
		"run", path, "--store", store, "--namespace", "generator-demo")
	require.NoError(t, err)

	data, err := os.ReadFile(store)
	require.NoError(t, err)
	assert.JSONEq(t, `{"generator-demo": {"projectName": "demo"}}`, string(data))

	out, err := execute(t, asktest.NewPrompter(nil),
		"run", path, "--store", store, "--namespace", "generator-demo", "-f", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"projectName": "demo", "useTS": false}`, out)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	valid := writeFile(t, "questions.yaml", projectFile)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no files", args: []string{"run"}},
		{name: "missing file", args: []string{"run", filepath.Join(t.TempDir(), "missing.yaml")}},
		{name: "unknown extension", args: []string{"run", writeFile(t, "questions.ini", "")}},
		{name: "unknown format", args: []string{"run", valid, "--format", "xml"}},
		{name: "invalid question", args: []string{"run", writeFile(t, "bad.yaml", "- name: a\n  type: editor\n")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := execute(t, asktest.NewPrompter(nil), tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestStoreCommands(t *testing.T) {
	t.Parallel()

	store := filepath.Join(t.TempDir(), "answers.yaml")
	storeArgs := func(args ...string) []string {
		return append(args, "--store", store, "--namespace", "demo")
	}

	_, err := execute(t, nil, storeArgs("store", "set", "license", "MIT")...)
	require.NoError(t, err)
	_, err = execute(t, nil, storeArgs("store", "set", "port", "8080")...)
	require.NoError(t, err)
	_, err = execute(t, nil, storeArgs("store", "set", "features", "[lint, test]")...)
	require.NoError(t, err)

	out, err := execute(t, nil, storeArgs("store", "get", "features")...)
	require.NoError(t, err)
	assert.Equal(t, "lint, test\n", out)

	out, err = execute(t, nil, storeArgs("store", "list", "-f", "json")...)
	require.NoError(t, err)
	assert.JSONEq(t, `{"features": ["lint", "test"], "license": "MIT", "port": 8080}`, out)

	out, err = execute(t, nil, storeArgs("store", "list")...)
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(out), "3 stored")

	_, err = execute(t, nil, storeArgs("store", "delete", "license")...)
	require.NoError(t, err)

	_, err = execute(t, nil, storeArgs("store", "get", "license")...)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFormatFromEnvironment(t *testing.T) {
	t.Setenv("ASK_FORMAT", "json")

	path := writeFile(t, "questions.yaml", "- name: a\n  default: x\n")
	out, err := execute(t, asktest.NewPrompter(nil), "run", path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": "x"}`, out)
}

func TestFormatFromConfigFile(t *testing.T) {
	t.Parallel()

	config := writeFile(t, "ask.yaml", "format: yaml\n")
	path := writeFile(t, "questions.yaml", "- name: a\n  default: x\n")

	out, err := execute(t, asktest.NewPrompter(nil), "run", path, "--config", config)
	require.NoError(t, err)
	assert.Equal(t, "a: x\n", out)

	_, err = execute(t, asktest.NewPrompter(nil), "run", path, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := execute(t, nil, "version", "--extended")
	require.NoError(t, err)
	assert.Contains(t, out, "ask ")
	assert.Contains(t, out, "Go: go")
}

func TestDisplayValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", displayValue(nil))
	assert.Equal(t, "x", displayValue("x"))
	assert.Equal(t, "a, 1", displayValue([]any{"a", 1}))
	assert.Equal(t, `{"k":"v"}`, displayValue(map[string]any{"k": "v"}))
	assert.Equal(t, "true", displayValue(true))
}
