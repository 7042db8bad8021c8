package quickfix

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"

	"github.com/guttosm/fixdict/internal/dict"
)

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

// componentOrder returns the component definitions ordered so that every
// component comes after all components it references. Components with no
// relative dependency keep their source order.
//
// The dependency graph has one vertex per component and an edge from a
// component to each component named anywhere in its layout, nested groups
// included. A reference to an undefined component fails with
// dict.ErrUnresolvedReference and a cycle, self references included, fails
// with dict.ErrCyclicDefinition.
func componentOrder(defs []ComponentDef) ([]ComponentDef, error) {
	g := graph.New(graph.StringHash, graph.Directed())
	index := make(map[string]int, len(defs))

	for i, c := range defs {
		if err := g.AddVertex(c.Name); err != nil {
			if errors.Is(err, graph.ErrVertexAlreadyExists) {
				return nil, &dict.DuplicateKeyError{Kind: "component", Key: c.Name}
			}
			return nil, fmt.Errorf("add component %q: %w", c.Name, err)
		}
		index[c.Name] = i
	}

	for _, c := range defs {
		for _, dep := range componentRefs(c.Items) {
			err := g.AddEdge(c.Name, dep)
			switch {
			case err == nil, errors.Is(err, graph.ErrEdgeAlreadyExists):
			case errors.Is(err, graph.ErrVertexNotFound):
				return nil, &dict.ReferenceError{Kind: "component", Name: dep, Context: "component " + c.Name}
			default:
				return nil, fmt.Errorf("link %q to %q: %w", c.Name, dep, err)
			}
		}
	}

	adj, err := g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("component graph: %w", err)
	}
	deps := make(map[string][]string, len(adj))
	for name, targets := range adj {
		list := make([]string, 0, len(targets))
		for t := range targets {
			list = append(list, t)
		}
		sort.Slice(list, func(i, j int) bool { return index[list[i]] < index[list[j]] })
		deps[name] = list
	}

	return topoSort(defs, deps)
}

type frame struct {
	name string
	next int
}

// topoSort is a depth first topological sort driven by an explicit work list
// instead of recursion.
func topoSort(defs []ComponentDef, deps map[string][]string) ([]ComponentDef, error) {
	byName := make(map[string]ComponentDef, len(defs))
	for _, c := range defs {
		byName[c.Name] = c
	}
	state := make(map[string]visitState, len(defs))
	sorted := make([]ComponentDef, 0, len(defs))

	for _, root := range defs {
		if state[root.Name] != unvisited {
			continue
		}
		stack := []frame{{name: root.Name}}
		state[root.Name] = inProgress

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := deps[top.name]
			if top.next < len(children) {
				child := children[top.next]
				top.next++
				switch state[child] {
				case inProgress:
					return nil, &dict.CycleError{Path: cyclePath(stack, child)}
				case unvisited:
					state[child] = inProgress
					stack = append(stack, frame{name: child})
				}
				continue
			}
			state[top.name] = done
			sorted = append(sorted, byName[top.name])
			stack = stack[:len(stack)-1]
		}
	}
	return sorted, nil
}

func cyclePath(stack []frame, repeat string) []string {
	start := 0
	for i, f := range stack {
		if f.name == repeat {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		path = append(path, f.name)
	}
	return append(path, repeat)
}

// componentRefs lists the component names referenced by items in document
// order, descending into groups.
func componentRefs(items []Item) []string {
	var out []string
	for _, it := range items {
		switch it.Kind {
		case KindComponent:
			out = append(out, it.Name)
		case KindGroup:
			out = append(out, componentRefs(it.Items)...)
		}
	}
	return out
}
