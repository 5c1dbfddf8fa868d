// Package selector composes CSS selector strings fragment by fragment and
// checks that fragments of a compound selector come in canonical order:
// element, id, class, attribute, pseudo-class, pseudo-element.
package selector

import (
	"fmt"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
)

// Fragment is a single rendered piece of a selector, e.g. "#main" or "::before".
type Fragment struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Selector accumulates fragments. Every chaining method mutates the receiver
// and returns it, so calls can be strung together:
//
//	sel, err := selector.Element("a").Attribute(`href$=".png"`).PseudoClass("focus").Render()
//
// Validation errors are sticky: the first one is kept, the offending fragment
// stays in the selector and all later chaining calls are ignored.
// NOTE: not to be used concurrently.
type Selector struct {
	fragments []Fragment
	err       error
}

// New starts a selector with a single fragment of given kind.
func New(kind Kind, value string) *Selector {
	return (&Selector{}).Add(kind, value)
}

// Element appends an element name as is.
func (s *Selector) Element(value string) *Selector { return s.Add(KindElement, value) }

// ID appends an id, "#value".
func (s *Selector) ID(value string) *Selector { return s.Add(KindID, value) }

// Class appends a class, ".value".
func (s *Selector) Class(value string) *Selector { return s.Add(KindClass, value) }

// Attribute appends an attribute selector, "[value]".
func (s *Selector) Attribute(value string) *Selector { return s.Add(KindAttribute, value) }

// PseudoClass appends a pseudo-class, ":value".
func (s *Selector) PseudoClass(value string) *Selector { return s.Add(KindPseudoClass, value) }

// PseudoElement appends a pseudo-element, "::value".
func (s *Selector) PseudoElement(value string) *Selector { return s.Add(KindPseudoElement, value) }

// Add decorates value according to kind, appends it and validates the result.
func (s *Selector) Add(kind Kind, value string) *Selector {
	if s.err != nil {
		return s
	}
	if !kind.IsValid() || kind == KindCombined {
		s.err = fmt.Errorf("unable to add %q: %s is %w", value, kind, ErrInvalidKind)
		return s
	}
	if s.combined() {
		s.err = fmt.Errorf("unable to add %q: %w", kind.decorate(value), ErrTerminal)
		return s
	}

	existed := s.has(kind)
	frag := Fragment{Kind: kind, Text: kind.decorate(value)}
	s.fragments = append(s.fragments, frag)

	switch {
	case kind.singleton() && existed:
		s.err = fmt.Errorf("unable to add %q: %w", frag.Text, ErrDuplicateSingleton)
	case !s.ordered():
		s.err = fmt.Errorf("unable to add %q: %w", frag.Text, ErrOutOfOrder)
	}
	return s
}

func (s *Selector) has(kind Kind) bool {
	return slices.ContainsFunc(s.fragments, func(f Fragment) bool { return f.Kind == kind })
}

func (s *Selector) combined() bool {
	return len(s.fragments) == 1 && s.fragments[0].Kind == KindCombined
}

// ordered compares kinds present (first occurrence only, in append order)
// against canonical order restricted to the same kinds.
func (s *Selector) ordered() bool {
	var present []Kind
	for _, f := range s.fragments {
		if f.Kind.ordered() && !slices.Contains(present, f.Kind) {
			present = append(present, f.Kind)
		}
	}
	canonical := make([]Kind, 0, len(present))
	for k := KindElement; k <= KindPseudoElement; k++ {
		if slices.Contains(present, k) {
			canonical = append(canonical, k)
		}
	}
	return slices.Equal(present, canonical)
}

// Err returns the first validation error, if any.
func (s *Selector) Err() error {
	return s.err
}

// Len returns number of fragments.
func (s *Selector) Len() int {
	return len(s.fragments)
}

// Fragments returns a copy of accumulated fragments.
func (s *Selector) Fragments() []Fragment {
	return slices.Clone(s.fragments)
}

// String concatenates fragments without separators. It does not report
// validation errors, use Render for that.
func (s *Selector) String() string {
	var sb strings.Builder
	for _, f := range s.fragments {
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// Render returns selector text together with the validation error, if any.
func (s *Selector) Render() (string, error) {
	return s.String(), s.err
}

// MarshalJSON implements json.Marshaler.
func (s *Selector) MarshalJSON() ([]byte, error) {
	out := struct {
		Selector  string     `json:"selector"`
		Fragments []Fragment `json:"fragments"`
		Error     string     `json:"error,omitempty"`
	}{
		Selector:  s.String(),
		Fragments: s.fragments,
	}
	if out.Fragments == nil {
		out.Fragments = []Fragment{}
	}
	if s.err != nil {
		out.Error = s.err.Error()
	}
	return json.Marshal(out)
}
