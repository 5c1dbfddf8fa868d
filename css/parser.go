// Package css reads rulesets out of CSS stylesheets.
package css

import (
	"bytes"
	"slices"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser collects rule selectors from stylesheets.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Rules:    make([]Rule, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	ordinal := 0

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
				sheet.Warnings = append(sheet.Warnings, "parse error: "+parser.Err().Error())
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := string(data)
			if atRule == "@media" {
				query := joinTokens(parser.Values())
				before := len(sheet.Rules)
				p.parseMediaBlock(parser, sheet, query, &ordinal)
				p.log.Debug("Parsed @media block", zap.String("query", query), zap.Int("rules", len(sheet.Rules)-before))
			} else {
				p.skipAtRuleBlock(parser)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.BeginRulesetGrammar:
			ordinal++
			p.appendRules(sheet, parseSelectors(data, parser.Values()), p.parseDeclarations(parser), "", ordinal)

		case css.QualifiedRuleGrammar:
			// Rule without block, e.g. trailing garbage
			sheet.Warnings = append(sheet.Warnings, "qualified rule without block: "+joinTokens(parser.Values()))
		}
	}
}

func (p *Parser) appendRules(sheet *Stylesheet, selectors, props []string, media string, ordinal int) {
	for _, sel := range selectors {
		sheet.Rules = append(sheet.Rules, Rule{
			Selector:   sel,
			Ordinal:    ordinal,
			Media:      media,
			Properties: slices.Clone(props),
		})
	}
}

// parseSelectors extracts selector strings from token data. Grouped
// selectors are split on top level commas only, commas inside functional
// pseudo-classes and attribute selectors belong to the selector.
func parseSelectors(data []byte, values []css.Token) []string {
	var (
		selectors []string
		sb        strings.Builder
		depth     int
	)
	flush := func() {
		if s := strings.TrimSpace(sb.String()); s != "" {
			selectors = append(selectors, s)
		}
		sb.Reset()
	}

	sb.Write(data)
	for _, v := range values {
		switch v.TokenType {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.CommaToken:
			if depth == 0 {
				flush()
				continue
			}
		}
		sb.Write(v.Data)
	}
	flush()
	return selectors
}

// parseDeclarations reads declarations until the end of the ruleset and
// returns property names.
func (p *Parser) parseDeclarations(parser *css.Parser) []string {
	var props []string
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			props = append(props, string(data))
		}
	}
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseMediaBlock parses rulesets inside an @media block.
func (p *Parser) parseMediaBlock(parser *css.Parser, sheet *Stylesheet, query string, ordinal *int) {
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return

		case css.BeginAtRuleGrammar:
			// nested @-rules are not interesting
			p.skipAtRuleBlock(parser)

		case css.BeginRulesetGrammar:
			*ordinal++
			p.appendRules(sheet, parseSelectors(data, parser.Values()), p.parseDeclarations(parser), query, *ordinal)
		}
	}
}

// joinTokens builds a string from tokens collapsing whitespace runs.
func joinTokens(tokens []css.Token) string {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}
