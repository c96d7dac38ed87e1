// Package archive packs rendered clips into a single downloadable ZIP.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"clipforge/internal/errs"
)

// Create writes a ZIP at zipPath containing every file in files under its
// base filename. Any missing or unreadable input file fails the whole
// archive; a partial archive is removed.
func Create(zipPath string, files []string) (err error) {
	const op = "create archive"

	f, err := os.Create(zipPath)
	if err != nil {
		return errs.Resource(op, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(zipPath)
		}
	}()

	zw := zip.NewWriter(f)
	for _, p := range files {
		if aerr := addFile(zw, p); aerr != nil {
			_ = zw.Close()
			_ = f.Close()
			err = errs.Resource(op, aerr)
			return err
		}
	}
	if cerr := zw.Close(); cerr != nil {
		_ = f.Close()
		err = errs.Resource(op, cerr)
		return err
	}
	if cerr := f.Close(); cerr != nil {
		err = errs.Resource(op, cerr)
		return err
	}
	return nil
}

func addFile(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("clip file: %w", err)
	}
	defer src.Close()

	w, err := zw.Create(filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
