package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
)

// QuestionMetadata is the frontmatter of a question document.
type QuestionMetadata struct {
	Key      string   `json:"key" mapstructure:"key"`
	Type     string   `json:"type" mapstructure:"type"`
	Message  string   `json:"message" mapstructure:"message"`
	Choices  []any    `json:"choices" mapstructure:"choices"`
	Default  any      `json:"default" mapstructure:"default"`
	When     string   `json:"when" mapstructure:"when"`
	Requires []string `json:"requires" mapstructure:"requires"`
	Required bool     `json:"required" mapstructure:"required"`
	Min      *float64 `json:"min" mapstructure:"min"`
	Max      *float64 `json:"max" mapstructure:"max"`
	Order    int      `json:"order" mapstructure:"order"`
}

// LoadDir reads a directory of question documents. The document body becomes the question
// description; a document without a key is keyed by its file name. Questions are ordered by
// their order field, then by key.
func LoadDir(ctx context.Context, dir string) (*Definition, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numbers as json.Number; the repository is never written to.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	docs, err := loam.NewTypedRepository[QuestionMetadata](repo).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	def := &Definition{Title: filepath.Base(absPath)}
	for _, doc := range docs {
		q, err := doc.Data.question(trimExtension(doc.ID), doc.Content)
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", doc.ID, err)
		}
		def.Questions = append(def.Questions, q)
	}

	sort.SliceStable(def.Questions, func(i, j int) bool {
		a, b := def.Questions[i], def.Questions[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Key < b.Key
	})
	return def, nil
}

func (m QuestionMetadata) question(id, content string) (Question, error) {
	q := Question{
		Key:         m.Key,
		Type:        m.Type,
		Message:     m.Message,
		Description: strings.TrimSpace(content),
		Default:     m.Default,
		When:        m.When,
		Requires:    m.Requires,
		Required:    m.Required,
		Min:         m.Min,
		Max:         m.Max,
		Order:       m.Order,
	}
	if q.Key == "" {
		q.Key = strings.ReplaceAll(id, "/", ".")
	}
	if err := decode(m.Choices, &q.Choices); err != nil {
		return Question{}, fmt.Errorf("choices: %w", err)
	}
	q.normalize()
	return q, nil
}

func trimExtension(id string) string {
	if ext := filepath.Ext(id); ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
