package selector

import (
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
)

// Step is a compound selector together with the combinator joining it to the
// previous step.
type Step struct {
	Combinator string // empty for the first step, " " for descendant
	Compound   *Selector
}

// Complex is a chain of compound selectors, e.g. "ul.menu > li:hover".
type Complex []Step

// Err returns validation errors of all compounds.
func (c Complex) Err() error {
	var err error
	for _, st := range c {
		err = multierr.Append(err, st.Compound.Err())
	}
	return err
}

// String renders steps with a single space around combinators.
func (c Complex) String() string {
	var sb strings.Builder
	for i, st := range c {
		if i > 0 {
			if st.Combinator == " " {
				sb.WriteString(" ")
			} else {
				sb.WriteString(" " + st.Combinator + " ")
			}
		}
		sb.WriteString(st.Compound.String())
	}
	return sb.String()
}

// Selector folds steps left to right with Combine.
func (c Complex) Selector() *Selector {
	if len(c) == 0 {
		return &Selector{}
	}
	sel := c[0].Compound
	for _, st := range c[1:] {
		sel = Combine(sel, st.Combinator, st.Compound)
	}
	return sel
}

// Parse splits a single complex selector into compound selectors and rebuilds
// each of them fragment by fragment, so ordering and uniqueness problems are
// reported by Err of the corresponding compound. Returned error is only set
// for text which cannot be tokenized into selector fragments. Selector lists
// (comma separated) are not accepted.
func Parse(text string) (Complex, error) {
	p := &parser{
		text: text,
		lx:   css.NewLexer(parse.NewInputString(text)),
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.steps, nil
}

type parser struct {
	text  string
	lx    *css.Lexer
	steps Complex
	cur   *Selector
	comb  string
}

func (p *parser) fail(format string, args ...any) error {
	return fmt.Errorf("%w: %s in %q", ErrSyntax, fmt.Sprintf(format, args...), p.text)
}

func (p *parser) add(kind Kind, value string) {
	if p.cur == nil {
		p.cur = New(kind, value)
		return
	}
	p.cur.Add(kind, value)
}

func (p *parser) flush() {
	if p.cur == nil {
		return
	}
	p.steps = append(p.steps, Step{Combinator: p.comb, Compound: p.cur})
	p.cur, p.comb = nil, ""
}

func (p *parser) combinator(tok string) error {
	p.flush()
	if len(p.steps) == 0 {
		return p.fail("combinator %q without left side", tok)
	}
	if p.comb != "" && p.comb != " " {
		return p.fail("combinator %q follows %q", tok, p.comb)
	}
	p.comb = tok
	return nil
}

func (p *parser) run() error {
	for {
		tt, data := p.lx.Next()
		switch tt {
		case css.ErrorToken:
			if err := p.lx.Err(); err != nil && !errors.Is(err, io.EOF) {
				return p.fail("%v", err)
			}
			return p.finish()

		case css.WhitespaceToken:
			p.flush()
			if len(p.steps) > 0 && p.comb == "" {
				p.comb = " "
			}

		case css.CommentToken:

		case css.IdentToken:
			p.add(KindElement, string(data))

		case css.HashToken:
			p.add(KindID, string(data[1:]))

		case css.DelimToken:
			switch d := string(data); d {
			case "*":
				p.add(KindElement, d)
			case ".":
				tt, name := p.lx.Next()
				if tt != css.IdentToken {
					return p.fail("class name expected after '.', got %s", tt)
				}
				p.add(KindClass, string(name))
			case ">", "+", "~":
				if err := p.combinator(d); err != nil {
					return err
				}
			default:
				return p.fail("unexpected delimiter %q", d)
			}

		case css.LeftBracketToken:
			value, err := p.attribute()
			if err != nil {
				return err
			}
			p.add(KindAttribute, value)

		case css.ColonToken:
			if err := p.pseudo(); err != nil {
				return err
			}

		case css.CommaToken:
			return p.fail("selector lists are not supported")

		default:
			return p.fail("unexpected %s %q", tt, data)
		}
	}
}

func (p *parser) finish() error {
	if p.cur == nil && p.comb != "" && p.comb != " " {
		return p.fail("dangling combinator %q", p.comb)
	}
	p.flush()
	if len(p.steps) == 0 {
		return p.fail("empty selector")
	}
	return nil
}

// attribute collects everything up to the closing bracket verbatim.
func (p *parser) attribute() (string, error) {
	var sb strings.Builder
	for {
		tt, data := p.lx.Next()
		switch tt {
		case css.ErrorToken:
			return "", p.fail("unterminated attribute selector")
		case css.RightBracketToken:
			return strings.TrimSpace(sb.String()), nil
		case css.LeftBracketToken:
			return "", p.fail("nested '[' in attribute selector")
		}
		sb.Write(data)
	}
}

func (p *parser) pseudo() error {
	kind := KindPseudoClass
	tt, data := p.lx.Next()
	if tt == css.ColonToken {
		kind = KindPseudoElement
		tt, data = p.lx.Next()
	}
	switch tt {
	case css.IdentToken:
		p.add(kind, string(data))
	case css.FunctionToken:
		value, err := p.function(data)
		if err != nil {
			return err
		}
		p.add(kind, value)
	default:
		return p.fail("pseudo-class or pseudo-element name expected, got %s", tt)
	}
	return nil
}

// function collects functional notation, e.g. "not(.hidden)", keeping
// whitespace and nested parentheses as written.
func (p *parser) function(name []byte) (string, error) {
	var sb strings.Builder
	sb.Write(name)
	for depth := 1; depth > 0; {
		tt, data := p.lx.Next()
		switch tt {
		case css.ErrorToken:
			return "", p.fail("unbalanced parentheses")
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
		}
		sb.Write(data)
	}
	return sb.String(), nil
}
