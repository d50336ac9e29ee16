// Package canned provides a deterministic stand-in for the completion
// service: a fixed, well-formed process completion, plus a fallback decorator
// that substitutes it when the real gateway is unreachable.
//
// Intended for development and for degraded-service scenarios; never for
// masking invalid model output.
package canned

import (
	"context"

	"github.com/procwise/procwise/pkg/ports"
)

// Completion is the fixed completion returned by the canned completer: an
// immigration services process exercising every major element kind.
const Completion = `{
  "id": "immigration_process",
  "description": "Immigration services process flow",
  "elements": [
    {"id": "start_1", "name": "Application Received", "type": "bpmn:StartEvent"},
    {"id": "task_1", "name": "Documents Uploaded", "type": "bpmn:UserTask"},
    {"id": "task_2", "name": "Application Reviewed", "type": "bpmn:UserTask"},
    {"id": "gateway_1", "name": "Are Documents Complete?", "type": "bpmn:ExclusiveGateway"},
    {"id": "task_3", "name": "Request Additional Documents", "type": "bpmn:UserTask"},
    {"id": "task_4", "name": "Schedule Interview", "type": "bpmn:UserTask"},
    {"id": "task_5", "name": "Conduct Interview", "type": "bpmn:UserTask"},
    {"id": "task_6", "name": "Review Interview Results", "type": "bpmn:UserTask"},
    {"id": "gateway_2", "name": "Is Application Approved?", "type": "bpmn:ExclusiveGateway"},
    {"id": "task_7", "name": "Prepare Approval Documents", "type": "bpmn:UserTask"},
    {"id": "task_8", "name": "Send Approval Notification", "type": "bpmn:ServiceTask"},
    {"id": "task_9", "name": "Prepare Rejection Documents", "type": "bpmn:UserTask"},
    {"id": "task_10", "name": "Send Rejection Notification", "type": "bpmn:ServiceTask"},
    {"id": "end_1", "name": "Application Approved", "type": "bpmn:EndEvent"},
    {"id": "end_2", "name": "Application Rejected", "type": "bpmn:EndEvent"},
    {"id": "flow_1", "type": "bpmn:SequenceFlow", "source": "start_1", "target": "task_1"},
    {"id": "flow_2", "type": "bpmn:SequenceFlow", "source": "task_1", "target": "task_2"},
    {"id": "flow_3", "type": "bpmn:SequenceFlow", "source": "task_2", "target": "gateway_1"},
    {"id": "flow_4", "name": "Yes", "type": "bpmn:SequenceFlow", "source": "gateway_1", "target": "task_4"},
    {"id": "flow_5", "name": "No", "type": "bpmn:SequenceFlow", "source": "gateway_1", "target": "task_3"},
    {"id": "flow_6", "type": "bpmn:SequenceFlow", "source": "task_3", "target": "task_2"},
    {"id": "flow_7", "type": "bpmn:SequenceFlow", "source": "task_4", "target": "task_5"},
    {"id": "flow_8", "type": "bpmn:SequenceFlow", "source": "task_5", "target": "task_6"},
    {"id": "flow_9", "type": "bpmn:SequenceFlow", "source": "task_6", "target": "gateway_2"},
    {"id": "flow_10", "name": "Yes", "type": "bpmn:SequenceFlow", "source": "gateway_2", "target": "task_7"},
    {"id": "flow_11", "name": "No", "type": "bpmn:SequenceFlow", "source": "gateway_2", "target": "task_9"},
    {"id": "flow_12", "type": "bpmn:SequenceFlow", "source": "task_7", "target": "task_8"},
    {"id": "flow_13", "type": "bpmn:SequenceFlow", "source": "task_8", "target": "end_1"},
    {"id": "flow_14", "type": "bpmn:SequenceFlow", "source": "task_9", "target": "task_10"},
    {"id": "flow_15", "type": "bpmn:SequenceFlow", "source": "task_10", "target": "end_2"}
  ]
}`

// Completer implements ports.Completer with the fixed completion.
type Completer struct{}

// New creates a canned completer.
func New() *Completer {
	return &Completer{}
}

// Complete returns the fixed completion regardless of instruction.
func (c *Completer) Complete(ctx context.Context, instruction string, opts ports.CompletionOptions) (string, error) {
	return Completion, nil
}
