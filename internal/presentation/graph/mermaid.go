// Package graph renders process models as Mermaid flowcharts.
package graph

import (
	"fmt"
	"strings"

	"github.com/procwise/procwise/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart syntax string from a process.
// It applies semantic styling:
// - Start/End events: ((Circle))
// - Exclusive gateways: {Diamond}
// - Service/Script tasks: [[Subroutine]]
// - User/Manual tasks: [/Parallelogram/]
// - Default: [Rectangle]
func GenerateMermaid(p *domain.Process) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range p.Nodes() {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Type {
		case domain.TypeStartEvent, domain.TypeEndEvent:
			opener, closer = "((", "))"
		case domain.TypeExclusiveGateway:
			opener, closer = "{", "}"
		case domain.TypeServiceTask, domain.TypeScriptTask:
			opener, closer = "[[", "]]"
		case domain.TypeUserTask, domain.TypeManualTask:
			opener, closer = "[/", "/]"
		}

		label := node.Name
		if label == "" {
			label = node.ID
		}
		// Escape double quotes for the Mermaid label
		label = strings.ReplaceAll(label, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))
	}

	for _, flow := range p.Flows() {
		safeSource := sanitizeMermaidID(flow.Source)
		safeTarget := sanitizeMermaidID(flow.Target)

		arrow := "-->"
		if flow.Name != "" {
			safeName := strings.ReplaceAll(flow.Name, "\"", "'")
			arrow = fmt.Sprintf("-- \"%s\" -->", safeName)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeSource, arrow, safeTarget))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
