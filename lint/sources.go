package lint

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"selkit/archive"
)

// ArchiveExts lists extensions of zip based containers searched for stylesheets.
var ArchiveExts = []string{".zip", ".epub", ".kepub"}

var isStylesheet = archive.HasExt(".css")

type sourceFunc func(name string, data []byte) error

// walkSources calls fn for every stylesheet found at location, which could be
// a stylesheet file, a directory (searched recursively, symbolic links are not
// followed) or a zip based archive. Stylesheets inside archives are named
// "[path_to_archive]archive.zip/[path_in_archive]file.css".
func walkSources(ctx context.Context, location string, fn sourceFunc) error {
	fi, err := os.Stat(location)
	if err != nil {
		return fmt.Errorf("unable to access '%s': %w", location, err)
	}

	switch {
	case fi.IsDir():
		return filepath.WalkDir(location, func(name string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() || !d.Type().IsRegular() || !isStylesheet(name) {
				return nil
			}
			return readSource(name, fn)
		})

	case archive.HasExt(ArchiveExts...)(location):
		return archive.Walk(location, isStylesheet, func(arc, name string, data []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(arc+"/"+strings.TrimPrefix(path.Clean(name), "/"), data)
		})

	default:
		return readSource(location, fn)
	}
}

func readSource(name string, fn sourceFunc) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("unable to read stylesheet '%s': %w", name, err)
	}
	return fn(name, data)
}
