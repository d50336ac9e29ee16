package schema

import (
	"fmt"
	"strings"

	"github.com/procwise/procwise/pkg/domain"
)

// Field documents one field of the output contract. The description the
// model receives is rendered from these tables, so contract and instructions
// cannot drift apart.
type Field struct {
	Name     string
	Type     string
	Required bool
	Doc      string
}

// ProcessFields describes the top-level object.
func ProcessFields() []Field {
	return []Field{
		{Name: "id", Type: "string", Required: true, Doc: "identifier of the whole process, snake_case"},
		{Name: "description", Type: "string", Required: false, Doc: "one-sentence summary of the process"},
		{Name: "elements", Type: "array of element objects", Required: true, Doc: "every node and sequence flow of the process"},
	}
}

// ElementFields describes one entry of the elements array.
func ElementFields() []Field {
	return []Field{
		{Name: "id", Type: "string", Required: true, Doc: "unique within the process, stable across updates"},
		{Name: "name", Type: "string", Required: false, Doc: "human-readable label"},
		{Name: "type", Type: "string", Required: true, Doc: "one of the element types listed below"},
		{Name: "source", Type: "string", Required: false, Doc: "id of the source element, required on sequence flows, forbidden elsewhere"},
		{Name: "target", Type: "string", Required: false, Doc: "id of the target element, required on sequence flows, forbidden elsewhere"},
	}
}

// Describe renders the natural-language format instructions embedded into
// every prompt. The output is deterministic: same contract, same text.
func Describe() string {
	var b strings.Builder

	b.WriteString("You must format your output as a single JSON object with no surrounding prose.\n")
	b.WriteString("The JSON object has the following fields:\n")
	writeFields(&b, ProcessFields())

	b.WriteString("Each entry of \"elements\" is a JSON object with the following fields:\n")
	writeFields(&b, ElementFields())

	b.WriteString("The allowed element types are: ")
	kinds := domain.ElementTypes()
	for i, kind := range kinds {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q", string(kind))
	}
	b.WriteString(".\n")
	fmt.Fprintf(&b, "Only elements of type %q connect other elements; their \"source\" and \"target\" must reference ids of elements in the same process.\n", string(domain.TypeSequenceFlow))

	return b.String()
}

func writeFields(b *strings.Builder, fields []Field) {
	for _, f := range fields {
		requirement := "optional"
		if f.Required {
			requirement = "required"
		}
		fmt.Fprintf(b, "  - %q (%s, %s): %s\n", f.Name, f.Type, requirement, f.Doc)
	}
}
