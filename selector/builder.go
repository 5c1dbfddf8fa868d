package selector

import "go.uber.org/multierr"

// Element starts a selector with element (type) fragment, e.g. "div".
func Element(value string) *Selector { return New(KindElement, value) }

// ID starts a selector with "#value".
func ID(value string) *Selector { return New(KindID, value) }

// Class starts a selector with ".value".
func Class(value string) *Selector { return New(KindClass, value) }

// Attribute starts a selector with "[value]".
func Attribute(value string) *Selector { return New(KindAttribute, value) }

// PseudoClass starts a selector with ":value".
func PseudoClass(value string) *Selector { return New(KindPseudoClass, value) }

// PseudoElement starts a selector with "::value".
func PseudoElement(value string) *Selector { return New(KindPseudoElement, value) }

// Combine joins two selectors with combinator token. Token is inserted
// verbatim with a single space on each side, so " " as combinator produces
// three spaces. The result holds one combined fragment and cannot be extended
// further. Errors of both inputs are carried over.
func Combine(left *Selector, combinator string, right *Selector) *Selector {
	return &Selector{
		fragments: []Fragment{{
			Kind: KindCombined,
			Text: left.String() + " " + combinator + " " + right.String(),
		}},
		err: multierr.Combine(left.Err(), right.Err()),
	}
}
