package lint

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/maruel/natural"
)

// DefaultTemplate is used to format findings when none is configured.
const DefaultTemplate = `{{ .Source }}:{{ .Rule }}: {{ .Selector | quote }}: {{ .Err }}`

// Report accumulates findings for one or more stylesheets.
type Report struct {
	Checked  int
	Findings []Finding
	Warnings []string
}

// Merge adds other's results to r.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Checked += other.Checked
	r.Findings = append(r.Findings, other.Findings...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Sort orders findings naturally by source, then by selector, then by rule.
func (r *Report) Sort() {
	sort.SliceStable(r.Findings, func(i, j int) bool {
		a, b := r.Findings[i], r.Findings[j]
		if a.Source != b.Source {
			return natural.Less(a.Source, b.Source)
		}
		if a.Selector != b.Selector {
			return natural.Less(a.Selector, b.Selector)
		}
		return a.Rule < b.Rule
	})
}

// Values is what finding templates are expanded with.
type Values struct {
	Source   string
	Rule     int
	Media    string
	Selector string
	// Properties declared by the ruleset
	Properties []string
	Err        string
}

// Format renders every finding with text/template, one line per finding.
// Template may use slim-sprig functions.
func (r *Report) Format(text string) ([]string, error) {
	if text == "" {
		text = DefaultTemplate
	}
	tmpl, err := template.New("finding").Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse report template: %w", err)
	}

	lines := make([]string, 0, len(r.Findings))
	buf := new(bytes.Buffer)
	for _, f := range r.Findings {
		buf.Reset()
		values := Values{
			Source:     f.Source,
			Rule:       f.Rule,
			Media:      f.Media,
			Selector:   f.Selector,
			Properties: f.Properties,
			Err:        f.Err.Error(),
		}
		if err := tmpl.Execute(buf, values); err != nil {
			return nil, fmt.Errorf("unable to format finding for %q: %w", f.Selector, err)
		}
		lines = append(lines, buf.String())
	}
	return lines, nil
}
