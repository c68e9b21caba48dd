package workspace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Publish copies every regular file of src into dst, creating dst when needed.
// With clean set, *.html files in dst that src does not provide are removed
// first. It returns the number of files copied.
func Publish(src, dst string, clean bool) (int, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, fmt.Errorf("read workspace: %w", err)
	}
	if err := os.MkdirAll(dst, 0o750); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	keep := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			keep[e.Name()] = true
		}
	}
	if clean {
		if _, err := RemoveStaleHTML(dst, keep); err != nil {
			return 0, err
		}
	}

	copied := 0
	for _, e := range entries {
		if !keep[e.Name()] {
			continue
		}
		if err := copyFile(filepath.Join(src, e.Name()), filepath.Join(dst, e.Name())); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

// RemoveStaleHTML deletes *.html files directly under dir whose names are not
// in keep. A missing dir is not an error.
func RemoveStaleHTML(dir string, keep map[string]bool) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read output directory: %w", err)
	}
	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), ".html") || keep[e.Name()] {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return removed, fmt.Errorf("remove stale page: %w", err)
		}
		removed++
	}
	return removed, nil
}

// copyFile copies a single file from src to dst.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	return dstFile.Close()
}
