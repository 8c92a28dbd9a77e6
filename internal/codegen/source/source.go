// Package source holds emitted code fragments and merges them in
// dependency-first order with content-hash deduplication.
package source

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Section is the part of a generated file a fragment belongs to.
type Section uint8

const (
	Imports Section = iota
	Declarations
	Definitions
	Tests
)

func (s Section) String() string {
	switch s {
	case Imports:
		return "imports"
	case Declarations:
		return "declarations"
	case Definitions:
		return "definitions"
	case Tests:
		return "tests"
	default:
		return fmt.Sprintf("Section(%d)", uint8(s))
	}
}

// Source is one fragment: a section tag, text items and the fragments it
// depends on.
type Source struct {
	Section Section
	Items   []string
	Deps    []*Source
}

// New creates a fragment. Nil dependencies are dropped.
func New(section Section, deps ...*Source) *Source {
	s := &Source{Section: section}
	s.Depend(deps...)
	return s
}

// Text creates a fragment holding a single item.
func Text(section Section, item string, deps ...*Source) *Source {
	return New(section, deps...).Add(item)
}

// Add appends items and returns s.
func (s *Source) Add(items ...string) *Source {
	s.Items = append(s.Items, items...)
	return s
}

// Addf appends one formatted item.
func (s *Source) Addf(format string, args ...any) *Source {
	return s.Add(fmt.Sprintf(format, args...))
}

// Depend appends non-nil dependencies.
func (s *Source) Depend(deps ...*Source) *Source {
	for _, d := range deps {
		if d != nil {
			s.Deps = append(s.Deps, d)
		}
	}
	return s
}

// Collect returns the items of the requested section reachable from roots,
// dependencies before dependents, each distinct item once.
func Collect(section Section, roots ...*Source) []string {
	c := collector{
		section: section,
		visited: map[*Source]struct{}{},
		hashes:  map[[blake2b.Size256]byte]struct{}{},
	}
	for _, r := range roots {
		c.visit(r)
	}
	return c.out
}

// Render collects a section and joins its items with sep.
func Render(section Section, sep string, roots ...*Source) string {
	return strings.Join(Collect(section, roots...), sep)
}

type collector struct {
	section Section
	visited map[*Source]struct{}
	hashes  map[[blake2b.Size256]byte]struct{}
	out     []string
}

func (c *collector) visit(s *Source) {
	if s == nil {
		return
	}
	// A fragment reached twice can only yield items already emitted.
	if _, ok := c.visited[s]; ok {
		return
	}
	c.visited[s] = struct{}{}
	for _, d := range s.Deps {
		c.visit(d)
	}
	if s.Section != c.section {
		return
	}
	for _, item := range s.Items {
		h := blake2b.Sum256([]byte(item))
		if _, dup := c.hashes[h]; dup {
			continue
		}
		c.hashes[h] = struct{}{}
		c.out = append(c.out, item)
	}
}
