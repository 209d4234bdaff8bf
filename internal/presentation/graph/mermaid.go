package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/stepwise/pkg/manifest"
)

// Overlay contains answers to highlight on the graph.
type Overlay struct {
	Answered []string
	Current  string
}

// GenerateMermaid produces a Mermaid flowchart of a manifest.
// Questions are chained in declaration order and shaped by type:
// - Select: {Rhombus}
// - Confirm: {{Hexagon}}
// - Text/Number: [/Parallelogram/]
// A question's condition labels the edge leading to it; requires become dotted edges.
func GenerateMermaid(def *manifest.Definition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    start((\"start\"))\n")

	prev := "start"
	for _, q := range def.Questions {
		id := sanitizeMermaidID(q.Key)

		opener, closer := "[/", "/]"
		switch q.Type {
		case manifest.TypeSelect:
			opener, closer = "{", "}"
		case manifest.TypeConfirm:
			opener, closer = "{{", "}}"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, escape(q.Message), closer)

		arrow := "-->"
		if q.When != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", escape(q.When))
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", prev, arrow, id)

		for _, dep := range q.Requires {
			fmt.Fprintf(&sb, "    %s -.-> %s\n", sanitizeMermaidID(dep), id)
		}
		prev = id
	}
	fmt.Fprintf(&sb, "    %s --> done((\"done\"))\n", prev)

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef answered fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, key := range overlay.Answered {
			id := sanitizeMermaidID(key)
			if !seen[id] && id != "" {
				seen[id] = true
				fmt.Fprintf(&sb, "    class %s answered;\n", id)
			}
		}
		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.Current))
		}
	}

	return sb.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
