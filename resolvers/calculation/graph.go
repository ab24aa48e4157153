package calculation

import (
	"github.com/robbyt/go-formlogic/form"
)

// dependencyGraph maps each calculation field to every id it reads: declared
// dependencies, {{id}} tokens and ids named in builtin argument lists.
func dependencyGraph(fields []form.Field) (nodes []string, edges map[string][]string) {
	edges = make(map[string][]string)
	for _, f := range form.Ordered(fields) {
		if _, dup := edges[f.ID]; dup {
			continue
		}
		nodes = append(nodes, f.ID)
		edges[f.ID] = nil
		if !f.HasCalculation() {
			continue
		}
		seen := make(map[string]bool)
		for _, id := range append(append([]string{}, f.Calculation.Dependencies...), References(f.Calculation.Formula)...) {
			if seen[id] {
				continue
			}
			seen[id] = true
			edges[f.ID] = append(edges[f.ID], id)
		}
	}
	return nodes, edges
}

// findCycles walks the graph depth first in field order and returns one path
// per back edge, each starting and ending at the same id.
func findCycles(fields []form.Field) [][]string {
	nodes, edges := dependencyGraph(fields)

	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[string]int, len(nodes))
	var stack []string
	var cycles [][]string

	var visit func(id string)
	visit = func(id string) {
		state[id] = onStack
		stack = append(stack, id)
		for _, next := range edges[id] {
			if _, exists := edges[next]; !exists {
				continue
			}
			switch state[next] {
			case onStack:
				start := len(stack) - 1
				for stack[start] != next {
					start--
				}
				cycle := append(append([]string{}, stack[start:]...), next)
				cycles = append(cycles, cycle)
			case unvisited:
				visit(next)
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = done
	}

	for _, id := range nodes {
		if state[id] == unvisited {
			visit(id)
		}
	}
	return cycles
}

// DetectCircularDependencies returns the first dependency cycle among the
// calculation fields, e.g. [A B A], or nil when the graph is acyclic. This is
// an author-time check.
func DetectCircularDependencies(fields []form.Field) []string {
	cycles := findCycles(fields)
	if len(cycles) == 0 {
		return nil
	}
	return cycles[0]
}
