// Package lint checks that selectors in stylesheets can be produced by the
// selector builder: every compound selector has its parts in canonical order
// and carries at most one element, id and pseudo-element.
package lint

import (
	"go.uber.org/zap"

	"selkit/css"
	"selkit/selector"
)

// Finding describes a single problematic selector.
type Finding struct {
	Source   string
	Rule     int    // ruleset ordinal in source
	Media    string // enclosing @media query, if any
	Selector string
	// declared property names of the ruleset
	Properties []string
	Err        error
}

// Linter checks stylesheets.
type Linter struct {
	log    *zap.Logger
	parser *css.Parser
}

// New creates a linter.
func New(log *zap.Logger) *Linter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Linter{
		log:    log.Named("lint"),
		parser: css.NewParser(log),
	}
}

// Check parses stylesheet data and verifies every rule selector. Source is
// used to identify findings only. Selector repeated in several rulesets is
// parsed once and reported for every ruleset it appears in.
func (l *Linter) Check(data []byte, source string) *Report {
	sheet := l.parser.Parse(data, source)

	rpt := &Report{Checked: len(sheet.Rules), Warnings: sheet.Warnings}
	for _, sel := range sheet.Selectors() {
		c, err := selector.Parse(sel)
		if err == nil {
			err = c.Err()
		}
		if err == nil {
			continue
		}

		for _, rule := range sheet.RulesBySelector(sel) {
			l.log.Debug("Selector rejected", zap.String("source", source), zap.Int("rule", rule.Ordinal), zap.String("selector", sel), zap.Error(err))
			rpt.Findings = append(rpt.Findings, Finding{
				Source:     source,
				Rule:       rule.Ordinal,
				Media:      rule.Media,
				Selector:   sel,
				Properties: rule.Properties,
				Err:        err,
			})
		}
	}
	l.log.Debug("Stylesheet checked", zap.String("source", source), zap.Int("selectors", rpt.Checked), zap.Int("findings", len(rpt.Findings)))
	return rpt
}
