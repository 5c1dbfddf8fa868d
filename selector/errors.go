package selector

import "errors"

var (
	// ErrDuplicateSingleton is reported when element, id or pseudo-element
	// is added to a selector which already has one.
	ErrDuplicateSingleton = errors.New("element, id and pseudo-element should not occur more than one time inside the selector")
	// ErrOutOfOrder is reported when added fragment breaks canonical order.
	ErrOutOfOrder = errors.New("selector parts should be arranged in the following order: element, id, class, attribute, pseudo-class, pseudo-element")
	// ErrTerminal is reported when fragments are added to a combined selector.
	ErrTerminal = errors.New("combined selector cannot be extended")
	// ErrSyntax wraps lexical problems found by Parse.
	ErrSyntax = errors.New("invalid selector syntax")
)
