package config

import (
	"sort"

	"github.com/pkg/errors"
)

// Validate checks the dependency graph: every depends_on entry must name a
// defined service, and the graph must be acyclic. It is pure and runs to
// completion before any process is spawned.
func (c *Config) Validate() error {
	for name, svc := range c.Services {
		for _, dep := range svc.DependsOn {
			if _, ok := c.Services[dep]; !ok {
				return errors.Errorf("service %q depends on %q, which is not defined", name, dep)
			}
		}
	}

	visited := map[string]bool{}
	inStack := map[string]bool{}
	for name := range c.Services {
		if !visited[name] {
			if err := c.detectCycle(name, visited, inStack); err != nil {
				return err
			}
		}
	}
	return nil
}

// detectCycle is a depth-first traversal with a visited set and an
// in-progress-stack set. Revisiting a node currently on the stack reports the
// edge that closes the cycle.
func (c *Config) detectCycle(node string, visited, inStack map[string]bool) error {
	visited[node] = true
	inStack[node] = true

	for _, dep := range c.Services[node].DependsOn {
		if !visited[dep] {
			if err := c.detectCycle(dep, visited, inStack); err != nil {
				return err
			}
		} else if inStack[dep] {
			return errors.Errorf("circular dependency detected: %s -> %s", node, dep)
		}
	}

	inStack[node] = false
	return nil
}

// ResolveTransitive computes the full set of services that must run to
// satisfy the requested names: a breadth-first closure over depends_on edges,
// including the requested names themselves. The result is sorted so it does
// not depend on input order or map iteration order. Callers must have
// checked that every requested name exists.
func (c *Config) ResolveTransitive(names []string) []string {
	seen := map[string]bool{}
	queue := append([]string{}, names...)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true
		for _, dep := range c.Services[name].DependsOn {
			if !seen[dep] {
				queue = append(queue, dep)
			}
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DependentsOf returns the sorted list of services that directly declare name
// as a dependency.
func (c *Config) DependentsOf(name string) []string {
	var out []string
	for svcName, svc := range c.Services {
		for _, dep := range svc.DependsOn {
			if dep == name {
				out = append(out, svcName)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}
