package orchestrator

import (
	"strings"

	"github.com/arthur-debert/fae/pkg/errors"
	"github.com/arthur-debert/fae/pkg/types"
)

type visitState int

const (
	unvisited visitState = iota
	inProgress
	visited
)

type frame struct {
	name string
	next int
}

// FindCycle walks the uses graph reachable from root and returns the first
// cycle it meets as a path that starts and ends with the same script, or
// nil. Names missing from the registry are leaves. The walk keeps its own
// stack, so deep graphs do not grow the goroutine stack.
func FindCycle(registry types.Registry, root string) []string {
	state := make(map[string]visitState)
	if _, ok := registry[root]; !ok {
		return nil
	}

	stack := []frame{{name: root}}
	state[root] = inProgress

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		def := registry[top.name]

		if top.next >= len(def.Uses) {
			state[top.name] = visited
			stack = stack[:len(stack)-1]
			continue
		}

		dep := def.Uses[top.next]
		top.next++

		if _, ok := registry[dep]; !ok {
			continue
		}

		switch state[dep] {
		case inProgress:
			return cyclePath(stack, dep)
		case unvisited:
			state[dep] = inProgress
			stack = append(stack, frame{name: dep})
		}
	}

	return nil
}

func cyclePath(stack []frame, dep string) []string {
	start := 0
	for i, f := range stack {
		if f.name == dep {
			start = i
			break
		}
	}

	path := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		path = append(path, f.name)
	}
	return append(path, dep)
}

// CheckCycles returns a DEPENDENCY_CYCLE error when the graph reachable
// from root contains a cycle
func CheckCycles(registry types.Registry, root string) error {
	cycle := FindCycle(registry, root)
	if cycle == nil {
		return nil
	}
	return errors.Newf(errors.ErrDependencyCycle,
		"script %s depends on itself: %s", cycle[0], strings.Join(cycle, " -> ")).
		WithDetail(errors.DetailScript, root).
		WithDetail(errors.DetailCycle, cycle)
}
