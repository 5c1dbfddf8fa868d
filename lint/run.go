package lint

import (
	"context"
	"errors"
	"fmt"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"selkit/state"
)

// Run is the lint command entry: checks every stylesheet found at given
// locations and prints report.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("lint")

	locations := cmd.Args().Slice()
	if len(locations) == 0 {
		return errors.New("no stylesheets have been specified")
	}

	tmpl := env.Cfg.Lint.ReportTemplate
	if t := cmd.String("template"); len(t) > 0 {
		tmpl = t
	}

	log.Info("Checking stylesheets", zap.Int("locations", len(locations)))
	defer func(start time.Time) {
		log.Info("Checking completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	l := New(env.Log)
	total := &Report{}
	for _, location := range locations {
		if er := ctx.Err(); er != nil {
			return multierr.Append(err, er)
		}
		er := walkSources(ctx, location, func(name string, data []byte) error {
			total.Merge(l.Check(data, name))
			return nil
		})
		if er != nil {
			err = multierr.Append(err, er)
		}
	}

	for _, w := range total.Warnings {
		log.Warn("Stylesheet was not fully processed", zap.String("warning", w))
	}
	if env.Cfg.Lint.NaturalSort {
		total.Sort()
	}

	lines, er := total.Format(tmpl)
	if er != nil {
		return multierr.Append(err, er)
	}
	for _, line := range lines {
		if _, er := fmt.Fprintln(env.Out, line); er != nil {
			return multierr.Append(err, fmt.Errorf("unable to write report: %w", er))
		}
	}

	log.Info("Selectors checked", zap.Int("selectors", total.Checked), zap.Int("findings", len(total.Findings)))
	if len(total.Findings) > 0 && env.Cfg.Lint.FailOnFindings && !cmd.Bool("no-fail") {
		err = multierr.Append(err, fmt.Errorf("%d selector(s) failed checks", len(total.Findings)))
	}
	return err
}
