package lint_test

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"

	"selkit/config"
	"selkit/lint"
	"selkit/state"
)

func runLint(t *testing.T, args ...string) (string, error) {
	t.Helper()

	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	env.Cfg = cfg
	var out bytes.Buffer
	env.Out = &out

	cmd := &cli.Command{
		Name:   "lint",
		Action: lint.Run,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "template"},
			&cli.BoolFlag{Name: "no-fail"},
		},
	}
	err = cmd.Run(ctx, append([]string{"lint"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	fname := filepath.Join(dir, name)
	if err := os.WriteFile(fname, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return fname
}

func TestRun_Findings(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a10.css", `.x#y { color: red; }`)
	b := writeFile(t, dir, "a2.css", `p::before::after { content: ""; } div { margin: 0; }`)

	out, err := runLint(t, a, b)
	if err == nil || !strings.Contains(err.Error(), "2 selector(s) failed checks") {
		t.Errorf("Run() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 report lines, got %q", out)
	}
	// natural order: a2.css before a10.css
	if !strings.HasPrefix(lines[0], b+":1: ") || !strings.HasPrefix(lines[1], a+":1: ") {
		t.Errorf("unexpected report order:\n%s", out)
	}
}

func TestRun_NoFailAndTemplate(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "site.css", `.x#y { color: red; }`)

	out, err := runLint(t, "--no-fail", "--template", "{{ .Selector }}", a)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != ".x#y\n" {
		t.Errorf("Run() output = %q", out)
	}
}

func TestRun_Clean(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "clean.css", `a:hover { color: red; }`)

	out, err := runLint(t, a)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
}

func TestRun_MissingFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "clean.css", `p { margin: 0; }`)

	_, err := runLint(t, a, filepath.Join(dir, "missing.css"))
	if err == nil || !strings.Contains(err.Error(), "missing.css") {
		t.Errorf("Run() error = %v, want read error", err)
	}
}

func TestRun_NoArgs(t *testing.T) {
	if _, err := runLint(t); err == nil {
		t.Error("expected error without files")
	}
}

func TestRun_Directory(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "top.css", `.a#b { color: red; }`)
	writeFile(t, filepath.Join(dir, "nested"), "inner.css", `#x#y { color: red; }`)
	writeFile(t, dir, "notes.txt", `.a#b { color: red; }`)

	out, err := runLint(t, "--no-fail", "--template", "{{ base .Source }} {{ .Selector }}", dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != "inner.css #x#y\ntop.css .a#b\n" {
		t.Errorf("Run() output = %q", out)
	}
}

func TestRun_Archive(t *testing.T) {
	dir := t.TempDir()
	epub := filepath.Join(dir, "book.epub")
	f, err := os.Create(epub)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	for name, content := range map[string]string{
		"mimetype":              "application/epub+zip",
		"OEBPS/styles/book.css": `p::after.x { content: ""; }`,
	} {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out, err := runLint(t, "--template", "{{ .Source }}", epub)
	if err == nil {
		t.Error("expected error for findings")
	}
	if out != epub+"/OEBPS/styles/book.css\n" {
		t.Errorf("Run() output = %q", out)
	}
}
