package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func createZip(t *testing.T, files map[string]string, dirs ...string) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for _, d := range dirs {
		if _, err := w.Create(d); err != nil {
			t.Fatalf("Failed to create directory %s in zip: %v", d, err)
		}
	}
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	return zipPath
}

func TestWalk(t *testing.T) {
	zipPath := createZip(t, map[string]string{
		"OEBPS/styles/main.css": "p { margin: 0; }",
		"OEBPS/styles/FONT.CSS": "@font-face { }",
		"OEBPS/text/ch1.xhtml":  "<html/>",
		"mimetype":              "application/epub+zip",
	}, "OEBPS/", "OEBPS/styles/")

	t.Run("css entries", func(t *testing.T) {
		visited := map[string]string{}
		err := Walk(zipPath, HasExt(".css"), func(archive, name string, data []byte) error {
			if archive != zipPath {
				t.Errorf("archive = %s, want %s", archive, zipPath)
			}
			visited[name] = string(data)
			return nil
		})
		if err != nil {
			t.Errorf("Walk() error = %v", err)
		}
		if len(visited) != 2 {
			t.Errorf("visited %d files, want 2: %v", len(visited), visited)
		}
		if visited["OEBPS/styles/main.css"] != "p { margin: 0; }" {
			t.Errorf("unexpected content %q", visited["OEBPS/styles/main.css"])
		}
	})

	t.Run("no match", func(t *testing.T) {
		count := 0
		err := Walk(zipPath, HasExt(".scss"), func(string, string, []byte) error {
			count++
			return nil
		})
		if err != nil {
			t.Errorf("Walk() error = %v", err)
		}
		if count != 0 {
			t.Errorf("visited %d files, want 0", count)
		}
	})

	t.Run("directories are skipped", func(t *testing.T) {
		err := Walk(zipPath, func(string) bool { return true }, func(_, name string, _ []byte) error {
			if name == "OEBPS/" || name == "OEBPS/styles/" {
				t.Errorf("directory visited: %s", name)
			}
			return nil
		})
		if err != nil {
			t.Errorf("Walk() error = %v", err)
		}
	})

	t.Run("walkFn error stops processing", func(t *testing.T) {
		expectedErr := errors.New("stop")
		count := 0
		err := Walk(zipPath, func(string) bool { return true }, func(string, string, []byte) error {
			count++
			return expectedErr
		})
		if !errors.Is(err, expectedErr) {
			t.Errorf("Walk() error = %v, want %v", err, expectedErr)
		}
		if count != 1 {
			t.Errorf("walkFn called %d times, want 1", count)
		}
	})
}

func TestWalk_InvalidArchive(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		err := Walk("/nonexistent/archive.zip", HasExt(".css"), func(string, string, []byte) error { return nil })
		if err == nil {
			t.Error("Walk() expected error for nonexistent file")
		}
	})

	t.Run("invalid zip file", func(t *testing.T) {
		invalidPath := filepath.Join(t.TempDir(), "invalid.zip")
		if err := os.WriteFile(invalidPath, []byte("not a zip file"), 0644); err != nil {
			t.Fatalf("Failed to create invalid file: %v", err)
		}
		err := Walk(invalidPath, HasExt(".css"), func(string, string, []byte) error { return nil })
		if err == nil {
			t.Error("Walk() expected error for invalid zip file")
		}
	})
}

func TestWalk_UnsafePath(t *testing.T) {
	zipPath := createZip(t, map[string]string{"../evil.css": "p {}"})

	err := Walk(zipPath, HasExt(".css"), func(string, string, []byte) error { return nil })
	if err == nil {
		t.Error("Walk() expected error for path traversal entry")
	}
}

func TestHasExt(t *testing.T) {
	match := HasExt(".css", ".txt")
	tests := map[string]bool{
		"a.css":       true,
		"dir/B.CSS":   true,
		"notes.txt":   true,
		"style.scss":  false,
		"css":         false,
		"dir.css/x.y": false,
	}
	for name, want := range tests {
		if got := match(name); got != want {
			t.Errorf("HasExt()(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestIsSafePath(t *testing.T) {
	tests := map[string]bool{
		"a/b.css":    true,
		"/abs.css":   false,
		`\win.css`:   false,
		"a/../b.css": false,
		"..":         false,
		"a..b/c.css": true,
	}
	for name, want := range tests {
		if got := isSafePath(name); got != want {
			t.Errorf("isSafePath(%q) = %v, want %v", name, got, want)
		}
	}
}
