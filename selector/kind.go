package selector

//go:generate go tool go-enum --marshal --names

// Kind of a selector fragment. Order of declaration for the first six kinds
// is the canonical order fragments must follow inside a compound selector.
// ENUM(element, id, class, attribute, pseudoClass, pseudoElement, combined)
type Kind int

// singleton kinds may appear at most once per selector.
func (x Kind) singleton() bool {
	return x == KindElement || x == KindID || x == KindPseudoElement
}

// ordered reports whether kind takes part in ordering validation.
func (x Kind) ordered() bool {
	return x >= KindElement && x <= KindPseudoElement
}

// decorate wraps raw value into its textual form for the kind.
func (x Kind) decorate(value string) string {
	switch x {
	case KindID:
		return "#" + value
	case KindClass:
		return "." + value
	case KindAttribute:
		return "[" + value + "]"
	case KindPseudoClass:
		return ":" + value
	case KindPseudoElement:
		return "::" + value
	default:
		return value
	}
}
