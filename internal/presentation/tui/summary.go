package tui

import (
	"fmt"
	"strings"

	"github.com/procwise/procwise/internal/presentation/graph"
	"github.com/procwise/procwise/pkg/domain"
)

// ProcessMarkdown renders a process model as a markdown document,
// including a Mermaid flowchart of the element graph.
func ProcessMarkdown(p *domain.Process) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", p.ID))
	if p.Description != "" {
		sb.WriteString(p.Description + "\n\n")
	}

	sb.WriteString("## Elements\n\n")
	sb.WriteString("| ID | Name | Type |\n")
	sb.WriteString("|----|------|------|\n")
	for _, node := range p.Nodes() {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", node.ID, node.Name, node.Type))
	}
	sb.WriteString("\n## Flow\n\n")
	sb.WriteString("```mermaid\n")
	sb.WriteString(graph.GenerateMermaid(p))
	sb.WriteString("```\n")

	return sb.String()
}
