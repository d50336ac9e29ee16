package schema

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/procwise/procwise/pkg/domain"
)

// Decode turns a parsed JSON value into a typed, validated process.
// The candidate is untrusted model output: any violation of the contract is
// reported as *domain.SchemaError naming the first violated field path.
func Decode(candidate any) (*domain.Process, error) {
	var process domain.Process

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &process,
		TagName:          "mapstructure",
		WeaklyTypedInput: false,
	})
	if err != nil {
		return nil, fmt.Errorf("building decoder: %w", err)
	}

	if err := decoder.Decode(candidate); err != nil {
		reason := err.Error()
		if merr, ok := err.(*mapstructure.Error); ok && len(merr.Errors) > 0 {
			// Report only the first decode failure, mirroring the
			// first-violation rule of the structural validator.
			reason = merr.Errors[0]
		}
		return nil, &domain.SchemaError{Path: "$", Reason: reason}
	}

	if err := Validate(&process); err != nil {
		return nil, err
	}
	return &process, nil
}

// Validate enforces the structural contract on a decoded process:
// required fields, the closed element-kind set, unique ids, and resolvable
// connector endpoints. It does not check graph connectivity; see
// CheckConnectivity.
func Validate(p *domain.Process) error {
	if p.ID == "" {
		return &domain.SchemaError{Path: "id", Reason: "required field is missing or empty"}
	}
	if len(p.Elements) == 0 {
		return &domain.SchemaError{Path: "elements", Reason: "required field is missing or empty"}
	}

	seen := make(map[string]bool, len(p.Elements))
	for i, e := range p.Elements {
		path := func(field string) string { return fmt.Sprintf("elements[%d].%s", i, field) }

		if e.ID == "" {
			return &domain.SchemaError{Path: path("id"), Reason: "required field is missing or empty"}
		}
		if seen[e.ID] {
			return &domain.SchemaError{Path: path("id"), Reason: fmt.Sprintf("duplicate element id %q", e.ID)}
		}
		seen[e.ID] = true

		if e.Type == "" {
			return &domain.SchemaError{Path: path("type"), Reason: "required field is missing or empty"}
		}
		if !e.Type.Valid() {
			return &domain.SchemaError{Path: path("type"), Reason: fmt.Sprintf("%q is not an allowed element type", string(e.Type))}
		}

		if e.Connector() {
			if e.Source == "" {
				return &domain.SchemaError{Path: path("source"), Reason: "sequence flows require a source"}
			}
			if e.Target == "" {
				return &domain.SchemaError{Path: path("target"), Reason: "sequence flows require a target"}
			}
		} else {
			if e.Source != "" {
				return &domain.SchemaError{Path: path("source"), Reason: fmt.Sprintf("%s must not carry a source", string(e.Type))}
			}
			if e.Target != "" {
				return &domain.SchemaError{Path: path("target"), Reason: fmt.Sprintf("%s must not carry a target", string(e.Type))}
			}
		}
	}

	// Endpoint resolution needs the full id set, so it runs as a second pass.
	for i, e := range p.Elements {
		if !e.Connector() {
			continue
		}
		for _, endpoint := range []struct{ field, id string }{{"source", e.Source}, {"target", e.Target}} {
			ref, ok := p.Element(endpoint.id)
			if !ok {
				return &domain.SchemaError{
					Path:   fmt.Sprintf("elements[%d].%s", i, endpoint.field),
					Reason: fmt.Sprintf("references unknown element %q", endpoint.id),
				}
			}
			if ref.Connector() {
				return &domain.SchemaError{
					Path:   fmt.Sprintf("elements[%d].%s", i, endpoint.field),
					Reason: fmt.Sprintf("references %q, which is itself a sequence flow", endpoint.id),
				}
			}
		}
	}

	return nil
}

// CheckConnectivity verifies the process graph is weakly connected: treating
// sequence flows as undirected edges, every node must be reachable from every
// other. A single node with no flows is trivially connected. The witness of a
// failure is reported via *domain.ConnectivityError.
func CheckConnectivity(p *domain.Process) error {
	nodes := p.Nodes()
	if len(nodes) <= 1 {
		return nil
	}

	adjacent := make(map[string][]string, len(nodes))
	for _, flow := range p.Flows() {
		adjacent[flow.Source] = append(adjacent[flow.Source], flow.Target)
		adjacent[flow.Target] = append(adjacent[flow.Target], flow.Source)
	}

	visited := map[string]bool{nodes[0].ID: true}
	queue := []string{nodes[0].ID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adjacent[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	for _, node := range nodes {
		if !visited[node.ID] {
			return &domain.ConnectivityError{ElementID: node.ID}
		}
	}
	return nil
}
