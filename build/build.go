// Package build assembles selectors from command line parts.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"selkit/common"
	"selkit/selector"
	"selkit/state"
)

// Combinators maps command line tokens to selector combinators. Descendant
// combinator is spelled "_" since a lone space does not survive the shell.
var Combinators = map[string]string{
	">": ">",
	"+": "+",
	"~": "~",
	"_": " ",
}

// Run is the build command entry: assembles selector from command line parts
// and writes it to program output.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	parts := cmd.Args().Slice()
	if len(parts) == 0 {
		return errors.New("no selector parts have been specified")
	}

	env.Format = env.Cfg.Build.Format
	if to := cmd.String("to"); len(to) > 0 {
		format, err := common.ParseOutputFmt(to)
		if err != nil {
			log.Warn("Unknown output format requested, switching to text", zap.Error(err))
			format = common.OutputFmtText
		}
		env.Format = format
	}
	env.Slugify = env.Cfg.Build.Slugify || cmd.Bool("slug")

	sel, err := Assemble(parts, env.Slugify)
	if err != nil {
		return err
	}
	log.Debug("Selector assembled", zap.Strings("parts", parts), zap.Stringer("selector", sel), zap.Stringer("format", env.Format))

	return Write(env.Out, sel, env.Format)
}

// Assemble builds selector from parts. Each part is either "kind=value"
// (kind being one of selector.KindNames except combined) or a combinator
// token from Combinators. Returned error describes malformed parts, selector
// validation problems are kept in the selector itself.
func Assemble(parts []string, slugify bool) (*selector.Selector, error) {
	var (
		result *selector.Selector
		cur    *selector.Selector
		comb   string
	)

	join := func() {
		if result == nil {
			result = cur
		} else {
			result = selector.Combine(result, comb, cur)
		}
		cur, comb = nil, ""
	}

	for i, part := range parts {
		if c, ok := Combinators[part]; ok {
			if cur == nil {
				return nil, fmt.Errorf("part %d: combinator %q must follow a selector", i+1, part)
			}
			join()
			comb = c
			continue
		}

		name, value, found := strings.Cut(part, "=")
		if !found || len(value) == 0 {
			return nil, fmt.Errorf("part %d: %q is not in kind=value form", i+1, part)
		}
		kind, err := selector.ParseKind(name)
		if err != nil || kind == selector.KindCombined {
			return nil, fmt.Errorf("part %d: unknown selector kind %q", i+1, name)
		}
		if slugify && (kind == selector.KindID || kind == selector.KindClass) {
			value = slug.Make(value)
		}

		if cur == nil {
			cur = selector.New(kind, value)
		} else {
			cur.Add(kind, value)
		}
	}
	if cur == nil {
		return nil, fmt.Errorf("combinator %q must be followed by a selector", parts[len(parts)-1])
	}
	join()
	return result, nil
}

// Write outputs selector in requested format. Validation error is returned
// after output, so JSON consumers still see what has been built.
func Write(out io.Writer, sel *selector.Selector, format common.OutputFmt) error {
	text, verr := sel.Render()

	switch format {
	case common.OutputFmtJson:
		data, err := json.MarshalIndent(sel, "", "  ")
		if err != nil {
			return fmt.Errorf("unable to encode selector: %w", err)
		}
		if _, err := fmt.Fprintln(out, string(data)); err != nil {
			return fmt.Errorf("unable to write selector: %w", err)
		}
	default:
		if verr != nil {
			break
		}
		if _, err := fmt.Fprintln(out, text); err != nil {
			return fmt.Errorf("unable to write selector: %w", err)
		}
	}

	if verr != nil {
		return fmt.Errorf("unable to build selector %q: %w", text, verr)
	}
	return nil
}
