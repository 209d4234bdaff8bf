package manifest

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
)

// Starter is the definition written by "stepwise init".
func Starter() *Definition {
	return &Definition{
		Title: "Starter",
		Questions: []Question{
			{Key: "name", Type: TypeText, Message: "Project name?", Required: true,
				Description: "Used as the **module** and repository name."},
			{Key: "language", Type: TypeSelect, Message: "Language?", Default: "go",
				Choices: []Choice{{Label: "Go", Value: "go"}, {Label: "Python", Value: "python"}}},
			{Key: "ci.enabled", Type: TypeConfirm, Message: "Set up CI?", Default: true},
			{Key: "ci.timeout", Type: TypeNumber, Message: "CI timeout in minutes?", Default: 10.0,
				Min: ptr(1.0), Max: ptr(120.0), When: "ci.enabled == true"},
		},
	}
}

// SaveDir writes one markdown document per question into dir, in the layout LoadDir reads.
func SaveDir(ctx context.Context, dir string, def *Definition) error {
	if err := Validate(def); err != nil {
		return err
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath, loam.WithVersioning(false), loam.WithForceTemp(false))
	if err != nil {
		return fmt.Errorf("failed to initialize loam: %w", err)
	}

	for i, q := range def.Questions {
		doc := core.Document{
			ID:       q.Key + ".md",
			Content:  q.Description,
			Metadata: q.metadata(i + 1),
		}
		if err := repo.Save(ctx, doc); err != nil {
			return fmt.Errorf("save %s: %w", q.Key, err)
		}
	}
	return nil
}

func (q Question) metadata(order int) core.Metadata {
	m := core.Metadata{
		"key":     q.Key,
		"type":    q.Type,
		"message": q.Message,
		"order":   order,
	}
	if len(q.Choices) > 0 {
		choices := make([]map[string]any, len(q.Choices))
		for i, c := range q.Choices {
			choice := map[string]any{"label": c.Label, "value": c.Value}
			if c.Description != "" {
				choice["description"] = c.Description
			}
			choices[i] = choice
		}
		m["choices"] = choices
	}
	if q.Default != nil {
		m["default"] = q.Default
	}
	if q.When != "" {
		m["when"] = q.When
	}
	if len(q.Requires) > 0 {
		m["requires"] = q.Requires
	}
	if q.Required {
		m["required"] = true
	}
	if q.Min != nil {
		m["min"] = *q.Min
	}
	if q.Max != nil {
		m["max"] = *q.Max
	}
	return m
}

func ptr[T any](v T) *T { return &v }
