package render

import (
	"errors"
	"fmt"
	"strings"
)

// Resource names a GPU resource passed between render passes.
type Resource string

const (
	// ShadowDepth is the light-space depth texture.
	ShadowDepth Resource = "shadow_depth"
	// Backbuffer is the window framebuffer presented at end of frame.
	Backbuffer Resource = "backbuffer"
)

// Pass is one stage of the frame. Reads and Writes declare the resources
// it consumes and produces; the Graph orders passes from them.
type Pass interface {
	Name() string
	Reads() []Resource
	Writes() []Resource
	Execute(f *Frame) error
}

var (
	ErrNoPasses   = errors.New("render: no passes")
	ErrCycle      = errors.New("render: pass dependency cycle")
	ErrUnproduced = errors.New("render: resource read but never written")
)

// Graph is a compiled, dependency-ordered list of passes.
type Graph struct {
	order []Pass
}

// Compile orders passes so that every writer of a resource runs before
// every reader of it. Passes with no dependency between them keep their
// argument order.
func Compile(passes ...Pass) (*Graph, error) {
	if len(passes) == 0 {
		return nil, ErrNoPasses
	}

	writers := make(map[Resource][]int)
	for i, p := range passes {
		for _, r := range p.Writes() {
			writers[r] = append(writers[r], i)
		}
	}

	// edges[i] lists passes that must run after pass i
	edges := make([][]int, len(passes))
	indegree := make([]int, len(passes))
	for i, p := range passes {
		for _, r := range p.Reads() {
			ws, ok := writers[r]
			if !ok {
				return nil, fmt.Errorf("%w: %s reads %s", ErrUnproduced, p.Name(), r)
			}
			for _, w := range ws {
				if w == i {
					continue
				}
				edges[w] = append(edges[w], i)
				indegree[i]++
			}
		}
	}

	order := make([]Pass, 0, len(passes))
	done := make([]bool, len(passes))
	for len(order) < len(passes) {
		next := -1
		for i := range passes {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			var stuck []string
			for i, p := range passes {
				if !done[i] {
					stuck = append(stuck, p.Name())
				}
			}
			return nil, fmt.Errorf("%w: %s", ErrCycle, strings.Join(stuck, ", "))
		}

		done[next] = true
		order = append(order, passes[next])
		for _, j := range edges[next] {
			indegree[j]--
		}
	}

	return &Graph{order: order}, nil
}

// Passes returns the passes in execution order.
func (g *Graph) Passes() []Pass {
	return g.order
}

// Execute runs every pass once. It stops at the first failing pass.
func (g *Graph) Execute(f *Frame) error {
	for _, p := range g.order {
		if err := p.Execute(f); err != nil {
			return fmt.Errorf("%s pass: %w", p.Name(), err)
		}
	}
	return nil
}
