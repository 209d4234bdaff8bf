package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/stepwise/internal/presentation/graph"
	"github.com/aretw0/stepwise/pkg/manifest"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	def := &manifest.Definition{Questions: []manifest.Question{
		{Key: "name", Type: manifest.TypeText, Message: "Project name?"},
		{Key: "db.enabled", Type: manifest.TypeConfirm, Message: "Use a \"database\"?"},
		{Key: "db-engine", Type: manifest.TypeSelect, Message: "Engine?", When: "db.enabled == true", Requires: []string{"name"}},
	}}

	tests := []struct {
		name     string
		overlay  *graph.Overlay
		contains []string
		excludes []string
	}{
		{
			name: "Shapes And Edges",
			contains: []string{
				"graph TD",
				"start((\"start\"))",
				"name[/\"Project name?\"/]",
				"db_enabled{{\"Use a 'database'?\"}}",
				"db_engine{\"Engine?\"}",
				"start --> name",
				"name --> db_enabled",
				"db_enabled -- \"db.enabled == true\" --> db_engine",
				"name -.-> db_engine",
				"db_engine --> done((\"done\"))",
			},
			excludes: []string{"classDef"},
		},
		{
			name:    "Overlay",
			overlay: &graph.Overlay{Answered: []string{"name", "name", "db.enabled"}, Current: "db-engine"},
			contains: []string{
				"class name answered;",
				"class db_enabled answered;",
				"class db_engine current;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graph.GenerateMermaid(def, tt.overlay)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
			if tt.overlay != nil {
				assert.Equal(t, 1, strings.Count(out, "class name answered;"))
			}
		})
	}
}
