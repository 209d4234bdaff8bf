package manifest_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/manifest"
	"github.com/aretw0/stepwise/pkg/prompter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceManifest = `
title: New service
questions:
  - key: name
    message: Service name?
    required: true
  - key: port
    type: number
    default: 8080
    min: 1
    max: 65535
  - key: db.enabled
    type: confirm
    message: Needs a database?
    default: false
  - key: db.engine
    type: select
    message: Which engine?
    choices:
      - postgres
      - label: MySQL
        value: mysql
    default: postgres
    when: db.enabled == true
`

func TestParse(t *testing.T) {
	def, err := manifest.Parse([]byte(serviceManifest))
	require.NoError(t, err)
	require.NoError(t, manifest.Validate(def))

	assert.Equal(t, "New service", def.Title)
	require.Len(t, def.Questions, 4)

	name := def.Questions[0]
	assert.Equal(t, manifest.TypeText, name.Type, "type defaults to text")
	assert.True(t, name.Required)

	port := def.Questions[1]
	assert.Equal(t, "port", port.Message, "message defaults to the key")
	assert.Equal(t, 8080.0, port.Default)

	engine := def.Questions[3]
	assert.Equal(t, []manifest.Choice{
		{Label: "postgres", Value: "postgres"},
		{Label: "MySQL", Value: "mysql"},
	}, engine.Choices)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wizard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(serviceManifest), 0644))

	def, err := manifest.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, def.Questions, 4)

	_, err = manifest.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	num := func(v float64) *float64 { return &v }

	tests := []struct {
		name     string
		question manifest.Question
		reason   string
	}{
		{"missing key", manifest.Question{Type: manifest.TypeText}, "missing key"},
		{"unknown type", manifest.Question{Key: "a", Type: "color"}, `unknown type "color"`},
		{"select without choices", manifest.Question{Key: "a", Type: manifest.TypeSelect}, "select needs choices"},
		{"bad expression", manifest.Question{Key: "a", Type: manifest.TypeText, When: "name =="}, "invalid condition"},
		{"unknown requirement", manifest.Question{Key: "a", Type: manifest.TypeText, Requires: []string{"zzz"}}, `requires unknown question "zzz"`},
		{"bad number default", manifest.Question{Key: "a", Type: manifest.TypeNumber, Default: "x"}, "number default must be numeric"},
		{"inverted range", manifest.Question{Key: "a", Type: manifest.TypeNumber, Min: num(5), Max: num(1)}, "greater than max"},
		{"bad confirm default", manifest.Question{Key: "a", Type: manifest.TypeConfirm, Default: "yes"}, "confirm default must be a boolean"},
		{"default outside choices", manifest.Question{Key: "a", Type: manifest.TypeSelect, Choices: []manifest.Choice{{Label: "x", Value: "x"}}, Default: "y"}, "not one of the choices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := manifest.Validate(&manifest.Definition{Questions: []manifest.Question{tt.question}})
			require.Error(t, err)
			var vErr *manifest.ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}

	t.Run("duplicate key", func(t *testing.T) {
		q := manifest.Question{Key: "a", Type: manifest.TypeText}
		err := manifest.Validate(&manifest.Definition{Questions: []manifest.Question{q, q}})
		assert.ErrorContains(t, err, "duplicate key")
	})

	t.Run("empty manifest", func(t *testing.T) {
		assert.Error(t, manifest.Validate(&manifest.Definition{}))
	})
}

func runManifest(t *testing.T, def *manifest.Definition, input string, opts ...stepwise.Option[manifest.Answers]) (*manifest.Answers, string) {
	t.Helper()
	var out bytes.Buffer
	term := prompter.NewTerminal(
		prompter.WithReader(prompter.NewLineReader(strings.NewReader(input), &out)),
		prompter.WithOutput(&out),
	)
	f, err := manifest.Build(def, term)
	require.NoError(t, err)

	final, err := stepwise.New[manifest.Answers](f, opts...).Run(context.Background())
	require.NoError(t, err)
	return final, out.String()
}

func TestBuild_Run(t *testing.T) {
	def, err := manifest.Parse([]byte(serviceManifest))
	require.NoError(t, err)

	t.Run("without database", func(t *testing.T) {
		final, out := runManifest(t, def, "billing\n\nn\n")
		require.NotNil(t, final)
		assert.Equal(t, manifest.Answers{
			"name": "billing",
			"port": 8080.0,
			"db":   map[string]any{"enabled": false},
		}, *final)
		assert.NotContains(t, out, "Which engine?")
	})

	t.Run("with database", func(t *testing.T) {
		final, out := runManifest(t, def, "billing\n9000\ny\n2\n")
		require.NotNil(t, final)
		assert.Equal(t, manifest.Answers{
			"name": "billing",
			"port": 9000.0,
			"db":   map[string]any{"enabled": true, "engine": "mysql"},
		}, *final)
		assert.Contains(t, out, "[4/4] Which engine?")
	})

	t.Run("going back changes the path", func(t *testing.T) {
		final, _ := runManifest(t, def, "billing\n\ny\n:back\nn\n")
		require.NotNil(t, final)
		assert.Equal(t, map[string]any{"enabled": false}, (*final)["db"])
	})

	t.Run("exit aborts", func(t *testing.T) {
		final, _ := runManifest(t, def, "billing\n:exit\n")
		assert.Nil(t, final)
	})

	t.Run("initial answers are skipped", func(t *testing.T) {
		initial, err := manifest.ParseAssignments(def, []string{"name=billing", "db.enabled=true"})
		require.NoError(t, err)

		final, out := runManifest(t, def, "\n\n", stepwise.WithInitialState(initial))
		require.NotNil(t, final)
		assert.NotContains(t, out, "Service name?")
		assert.Equal(t, "postgres", (*final)["db"].(map[string]any)["engine"])
	})
}

func TestParseAssignments(t *testing.T) {
	def, err := manifest.Parse([]byte(serviceManifest))
	require.NoError(t, err)

	got, err := manifest.ParseAssignments(def, []string{"port=80", "db.enabled=yes", "name=x"})
	assert.Error(t, err, "yes is not a boolean")
	assert.Nil(t, got)

	got, err = manifest.ParseAssignments(def, []string{"port=80", "db.enabled=true", "name=a=b"})
	require.NoError(t, err)
	assert.Equal(t, manifest.Answers{
		"port": 80.0,
		"db":   map[string]any{"enabled": true},
		"name": "a=b",
	}, got)

	_, err = manifest.ParseAssignments(def, []string{"nope=1"})
	assert.ErrorIs(t, err, domain.ErrUnknownProperty)

	_, err = manifest.ParseAssignments(def, []string{"name"})
	assert.ErrorContains(t, err, "expected key=value")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"name.md": "---\ntype: text\nmessage: Service name?\n---\nUsed as the **repository** name.\n",
		"tier.md": "---\ntype: select\nmessage: Tier?\nchoices: [free, pro]\nwhen: name != nil\n---\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	def, err := manifest.LoadDir(context.Background(), dir)
	require.NoError(t, err)
	require.NoError(t, manifest.Validate(def))
	require.Len(t, def.Questions, 2)

	name, ok := def.Question("name")
	require.True(t, ok)
	assert.Equal(t, "Service name?", name.Message)
	assert.Equal(t, "Used as the **repository** name.", name.Description)

	tier, ok := def.Question("tier")
	require.True(t, ok)
	assert.Equal(t, []manifest.Choice{{Label: "free", Value: "free"}, {Label: "pro", Value: "pro"}}, tier.Choices)
}

func TestSaveDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, manifest.SaveDir(ctx, dir, manifest.Starter()))

	def, err := manifest.LoadDir(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, manifest.Validate(def))

	keys := make([]string, len(def.Questions))
	for i, q := range def.Questions {
		keys[i] = q.Key
	}
	assert.Equal(t, []string{"name", "language", "ci.enabled", "ci.timeout"}, keys, "declaration order survives")

	name, _ := def.Question("name")
	assert.True(t, name.Required)
	assert.Equal(t, "Used as the **module** and repository name.", name.Description)

	timeout, _ := def.Question("ci.timeout")
	assert.Equal(t, 10.0, timeout.Default)
	require.NotNil(t, timeout.Max)
	assert.Equal(t, 120.0, *timeout.Max)

	language, _ := def.Question("language")
	assert.Equal(t, manifest.Choice{Label: "Python", Value: "python"}, language.Choices[1])
}

func TestSaveDir_Invalid(t *testing.T) {
	def := &manifest.Definition{Questions: []manifest.Question{{Key: "a", Type: "color"}}}
	assert.Error(t, manifest.SaveDir(context.Background(), t.TempDir(), def))
}
