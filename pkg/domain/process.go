package domain

// ElementType identifies the kind of a process element. The set is closed:
// anything outside of it is rejected by the schema contract.
type ElementType string

const (
	TypeStartEvent       ElementType = "bpmn:StartEvent"
	TypeEndEvent         ElementType = "bpmn:EndEvent"
	TypeTask             ElementType = "bpmn:Task"
	TypeUserTask         ElementType = "bpmn:UserTask"
	TypeServiceTask      ElementType = "bpmn:ServiceTask"
	TypeManualTask       ElementType = "bpmn:ManualTask"
	TypeScriptTask       ElementType = "bpmn:ScriptTask"
	TypeExclusiveGateway ElementType = "bpmn:ExclusiveGateway"
	TypeSequenceFlow     ElementType = "bpmn:SequenceFlow"
)

// ElementTypes lists every member of the closed kind set, in a stable order.
func ElementTypes() []ElementType {
	return []ElementType{
		TypeStartEvent,
		TypeEndEvent,
		TypeTask,
		TypeUserTask,
		TypeServiceTask,
		TypeManualTask,
		TypeScriptTask,
		TypeExclusiveGateway,
		TypeSequenceFlow,
	}
}

// Valid reports whether t belongs to the closed kind set.
func (t ElementType) Valid() bool {
	for _, known := range ElementTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Connector reports whether elements of this type link two other elements.
// Connectors carry Source and Target; all other kinds must not.
func (t ElementType) Connector() bool {
	return t == TypeSequenceFlow
}

// Element is one node or connector of the process model.
type Element struct {
	ID     string      `json:"id" mapstructure:"id"`
	Name   string      `json:"name,omitempty" mapstructure:"name"`
	Type   ElementType `json:"type" mapstructure:"type"`
	Source string      `json:"source,omitempty" mapstructure:"source"`
	Target string      `json:"target,omitempty" mapstructure:"target"`
}

// Connector reports whether the element is a connecting flow.
func (e Element) Connector() bool {
	return e.Type.Connector()
}

// Process is the structured contract for one turn's output.
type Process struct {
	ID          string    `json:"id" mapstructure:"id"`
	Description string    `json:"description,omitempty" mapstructure:"description"`
	Elements    []Element `json:"elements" mapstructure:"elements"`
}

// Element returns the element with the given ID, if present.
func (p *Process) Element(id string) (Element, bool) {
	for _, e := range p.Elements {
		if e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}

// Nodes returns the non-connector elements.
func (p *Process) Nodes() []Element {
	var nodes []Element
	for _, e := range p.Elements {
		if !e.Connector() {
			nodes = append(nodes, e)
		}
	}
	return nodes
}

// Flows returns the connector elements.
func (p *Process) Flows() []Element {
	var flows []Element
	for _, e := range p.Elements {
		if e.Connector() {
			flows = append(flows, e)
		}
	}
	return flows
}

// Clone returns a deep copy, so stored processes cannot be mutated through
// shared slices.
func (p *Process) Clone() *Process {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Elements = make([]Element, len(p.Elements))
	copy(clone.Elements, p.Elements)
	return &clone
}

// Equal compares two processes under element-set equality: element order is
// irrelevant, everything else must match.
func (p *Process) Equal(other *Process) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.ID != other.ID || p.Description != other.Description {
		return false
	}
	if len(p.Elements) != len(other.Elements) {
		return false
	}
	byID := make(map[string]Element, len(other.Elements))
	for _, e := range other.Elements {
		byID[e.ID] = e
	}
	for _, e := range p.Elements {
		match, ok := byID[e.ID]
		if !ok || match != e {
			return false
		}
	}
	return true
}
