package response

import (
	"testing"

	"github.com/procwise/procwise/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormed = `{
	"id": "support",
	"elements": [
		{"id": "start_1", "name": "Ticket Opened", "type": "bpmn:StartEvent"},
		{"id": "task_1", "name": "Ticket Triaged", "type": "bpmn:UserTask"},
		{"id": "end_1", "name": "Ticket Resolved", "type": "bpmn:EndEvent"},
		{"id": "flow_1", "type": "bpmn:SequenceFlow", "source": "start_1", "target": "task_1"},
		{"id": "flow_2", "type": "bpmn:SequenceFlow", "source": "task_1", "target": "end_1"}
	]
}`

func TestParse_WellFormed(t *testing.T) {
	process, err := Parse(wellFormed)
	require.NoError(t, err)
	assert.Equal(t, "support", process.ID)
	assert.Len(t, process.Elements, 5)
}

func TestParse_Refusal(t *testing.T) {
	for _, raw := range []string{"ERROR", "  ERROR\n", "\tERROR  "} {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, domain.ErrModelRefused, "raw %q", raw)
	}
}

func TestParse_RefusalMentionedInProse(t *testing.T) {
	// Only an exact sentinel match counts as a refusal.
	_, err := Parse("ERROR: something went wrong")
	assert.NotErrorIs(t, err, domain.ErrModelRefused)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse("The process has three steps: order, pay, ship.")

	var malformed *domain.MalformedError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.RawText, "three steps")
}

func TestParse_SchemaViolation(t *testing.T) {
	_, err := Parse(`{"id": "p", "elements": [{"id": "a", "type": "bpmn:Pool"}]}`)

	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestParse_ConnectivityViolation(t *testing.T) {
	raw := `{
		"id": "p",
		"elements": [
			{"id": "start_1", "type": "bpmn:StartEvent"},
			{"id": "end_1", "type": "bpmn:EndEvent"},
			{"id": "flow_1", "type": "bpmn:SequenceFlow", "source": "start_1", "target": "end_1"},
			{"id": "task_island", "type": "bpmn:Task"}
		]
	}`

	_, err := Parse(raw)

	var connErr *domain.ConnectivityError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "task_island", connErr.ElementID)
}

func TestParse_FencedEqualsUnfenced(t *testing.T) {
	fenced := "```json\n" + wellFormed + "\n```"
	untagged := "```\n" + wellFormed + "\n```"

	plain, err := Parse(wellFormed)
	require.NoError(t, err)

	fromFenced, err := Parse(fenced)
	require.NoError(t, err)
	assert.True(t, plain.Equal(fromFenced))

	fromUntagged, err := Parse(untagged)
	require.NoError(t, err)
	assert.True(t, plain.Equal(fromUntagged))
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"id": 1}`, `{"id": 1}`},
		{"tagged", "```json\n{\"id\": 1}\n```", `{"id": 1}`},
		{"untagged", "```\n{\"id\": 1}\n```", `{"id": 1}`},
		{"single line", "```{\"id\": 1}```", `{"id": 1}`},
		{"interior backticks kept", "```\n{\"name\": \"uses ``` inside\"}\n```", `{"name": "uses ` + "```" + ` inside"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripFences(tc.in))
		})
	}
}
