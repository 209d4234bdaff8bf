package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/stepwise/pkg/manifest"
	"gopkg.in/yaml.v3"
)

// Output formats for the collected answers.
const (
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// WriteAnswers encodes answers to w in the given format.
func WriteAnswers(w io.Writer, answers manifest.Answers, format string) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(answers)
	case OutputYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(answers); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
