package css

// Rule is a single selector from a ruleset. Grouped selectors ("h2, h3")
// produce one Rule per selector sharing the same Ordinal.
type Rule struct {
	Selector   string   // Selector text as written, trimmed
	Ordinal    int      // 1-based ruleset number in source order
	Media      string   // Enclosing @media query or empty
	Properties []string // Declared property names in source order
}

// Stylesheet represents rulesets found in a CSS source.
type Stylesheet struct {
	Rules    []Rule   // All rules in source order, @media content included
	Warnings []string // Things which were skipped
}

// Selectors returns distinct selector strings in order of first appearance.
func (s *Stylesheet) Selectors() []string {
	seen := make(map[string]struct{}, len(s.Rules))
	var out []string
	for _, r := range s.Rules {
		if _, ok := seen[r.Selector]; ok {
			continue
		}
		seen[r.Selector] = struct{}{}
		out = append(out, r.Selector)
	}
	return out
}

// RulesBySelector returns all rules with the given selector.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, r := range s.Rules {
		if r.Selector == selector {
			matches = append(matches, r)
		}
	}
	return matches
}
