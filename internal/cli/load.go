package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/stepwise/internal/presentation/graph"
	"github.com/aretw0/stepwise/pkg/manifest"
)

// LoadManifest reads a manifest file, or a directory of question documents, and validates it.
func LoadManifest(ctx context.Context, path string) (*manifest.Definition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}

	var def *manifest.Definition
	if info.IsDir() {
		def, err = manifest.LoadDir(ctx, path)
	} else {
		def, err = manifest.LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if err := manifest.Validate(def); err != nil {
		return nil, err
	}
	return def, nil
}

// Graph renders the manifest at path as a Mermaid flowchart. Keys assigned in set are
// highlighted as answered.
func Graph(ctx context.Context, path string, set []string) (string, error) {
	def, err := LoadManifest(ctx, path)
	if err != nil {
		return "", err
	}
	if len(set) == 0 {
		return graph.GenerateMermaid(def, nil), nil
	}
	if _, err := manifest.ParseAssignments(def, set); err != nil {
		return "", err
	}

	overlay := &graph.Overlay{}
	for _, pair := range set {
		key, _, _ := strings.Cut(pair, "=")
		overlay.Answered = append(overlay.Answered, strings.TrimSpace(key))
	}
	return graph.GenerateMermaid(def, overlay), nil
}
