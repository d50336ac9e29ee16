package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/procwise/procwise/pkg/domain"
	"github.com/procwise/procwise/pkg/schema"
)

// RefusalSentinel is the fixed literal the model is instructed to reply with
// when the input does not describe a process. The response sanitizer matches
// it exactly after trimming.
const RefusalSentinel = "ERROR"

// labelingRules are the fixed conventions applied to both instructions.
const labelingRules = `Events should be labeled using object + past participle.
Start events should always be labeled with an indication of the trigger of the process.
End events should be labeled with the end state of the process.
Tasks should be labeled using object + verb.
Exclusive gateways should be labeled with a yes/no question.
The outgoing sequence flows of a gateway should be labeled with the possible answers to that question.
All other sequence flows should not be labeled.
Start events must have exactly one outgoing sequence flow.
End events must have exactly one incoming sequence flow.
All other elements must have at least one incoming and one outgoing sequence flow.`

var createTemplate = template.Must(template.New("create").Parse(
	`You are a business process expert that creates a valid process from a description.
All processes you create must be connected: every element must be reachable from a start event and must be able to reach an end event.
If the description does not describe a process, reply with the word {{.Sentinel}}.
{{.Rules}}
{{.Format}}Description: {{.Description}}
Output:`))

var updateTemplate = template.Must(template.New("update").Parse(
	`You are a business process expert that updates a valid process given requested changes.
All processes you create must be connected: every element must be reachable from a start event and must be able to reach an end event.
If the requested changes are not related to the process, reply with the word {{.Sentinel}}.
{{.Rules}}
{{.Format}}Current process:
{{.Process}}
Requested changes: {{.Changes}}
Output:`))

type templateData struct {
	Sentinel    string
	Rules       string
	Format      string
	Description string
	Process     string
	Changes     string
}

// BuildCreate renders the instruction for a first-turn process creation.
// Fails with domain.ErrInvalidInput when the description is empty after
// trimming.
func BuildCreate(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", fmt.Errorf("description: %w", domain.ErrInvalidInput)
	}

	return render(createTemplate, templateData{
		Sentinel:    RefusalSentinel,
		Rules:       labelingRules,
		Format:      schema.Describe(),
		Description: description,
	})
}

// BuildUpdate renders the instruction for a follow-up turn, embedding a
// serialized form of the current process. The serialization round-trips: see
// SerializeProcess.
func BuildUpdate(requestedChanges string, current *domain.Process) (string, error) {
	requestedChanges = strings.TrimSpace(requestedChanges)
	if requestedChanges == "" {
		return "", fmt.Errorf("requested changes: %w", domain.ErrInvalidInput)
	}
	if current == nil {
		return "", fmt.Errorf("current process: %w", domain.ErrInvalidInput)
	}

	serialized, err := SerializeProcess(current)
	if err != nil {
		return "", err
	}

	return render(updateTemplate, templateData{
		Sentinel: RefusalSentinel,
		Rules:    labelingRules,
		Format:   schema.Describe(),
		Process:  serialized,
		Changes:  requestedChanges,
	})
}

// SerializeProcess renders a process into the textual form embedded in the
// update instruction. Indented JSON: readable for the model, and re-parsing
// it yields an equivalent process.
func SerializeProcess(p *domain.Process) (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing process: %w", err)
	}
	return string(data), nil
}

func render(tmpl *template.Template, data templateData) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering %s instruction: %w", tmpl.Name(), err)
	}
	return b.String(), nil
}
