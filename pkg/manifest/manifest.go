package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Question types.
const (
	TypeText    = "text"
	TypeNumber  = "number"
	TypeConfirm = "confirm"
	TypeSelect  = "select"
)

// Answers is the state a manifest form fills.
type Answers map[string]any

// Definition is a parsed manifest.
type Definition struct {
	Title       string     `json:"title,omitempty" mapstructure:"title"`
	Description string     `json:"description,omitempty" mapstructure:"description"`
	Questions   []Question `json:"questions" mapstructure:"questions"`
}

// Question declares one property of the form.
type Question struct {
	Key         string   `json:"key" mapstructure:"key"`
	Type        string   `json:"type" mapstructure:"type"`
	Message     string   `json:"message" mapstructure:"message"`
	Description string   `json:"description,omitempty" mapstructure:"description"`
	Choices     []Choice `json:"choices,omitempty" mapstructure:"choices"`
	Default     any      `json:"default,omitempty" mapstructure:"default"`
	// When is an expression over the answers; the question is asked only while it holds.
	When string `json:"when,omitempty" mapstructure:"when"`
	// Requires lists questions that must be scheduled before this one becomes visible.
	Requires []string `json:"requires,omitempty" mapstructure:"requires"`
	Required bool     `json:"required,omitempty" mapstructure:"required"`
	Min      *float64 `json:"min,omitempty" mapstructure:"min"`
	Max      *float64 `json:"max,omitempty" mapstructure:"max"`
	Order    int      `json:"order,omitempty" mapstructure:"order"`
}

// Choice is one option of a select question. In YAML a plain string is both label and value.
type Choice struct {
	Label       string `json:"label" mapstructure:"label"`
	Value       string `json:"value" mapstructure:"value"`
	Description string `json:"description,omitempty" mapstructure:"description"`
}

// LoadFile reads a YAML manifest.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return def, nil
}

// Parse decodes a YAML manifest.
func Parse(data []byte) (*Definition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var def Definition
	if err := decode(raw, &def); err != nil {
		return nil, err
	}
	for i := range def.Questions {
		def.Questions[i].normalize()
	}
	return &def, nil
}

func decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(choiceHook, mapstructure.StringToSliceHookFunc(",")),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

var choiceType = reflect.TypeFor[Choice]()

// choiceHook accepts a bare string wherever a Choice is expected.
func choiceHook(from, to reflect.Type, data any) (any, error) {
	if to != choiceType || from.Kind() != reflect.String {
		return data, nil
	}
	s := data.(string)
	return Choice{Label: s, Value: s}, nil
}

func (q *Question) normalize() {
	if q.Type == "" {
		q.Type = TypeText
	}
	if q.Message == "" {
		q.Message = q.Key
	}
	for i := range q.Choices {
		if q.Choices[i].Value == "" {
			q.Choices[i].Value = q.Choices[i].Label
		}
		if q.Choices[i].Label == "" {
			q.Choices[i].Label = q.Choices[i].Value
		}
	}
	q.Default = normalizeValue(q.Default)
}

// normalizeValue maps decoded numbers to float64, the value type of number questions.
func normalizeValue(v any) any {
	switch n := v.(type) {
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	}
	return v
}

// Question returns the question declared for key.
func (d *Definition) Question(key string) (Question, bool) {
	for _, q := range d.Questions {
		if q.Key == key {
			return q, true
		}
	}
	return Question{}, false
}
