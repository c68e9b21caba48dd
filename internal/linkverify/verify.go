// Package linkverify checks that every internal link of a generated glossary
// resolves to a file of the site.
package linkverify

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/glossarybuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/glossarybuilder/internal/logfields"
)

// BrokenLink is an internal link whose target does not exist.
type BrokenLink struct {
	Page   string // page file name holding the link
	Target string // link target as written
	Text   string
}

// Result summarizes a site verification.
type Result struct {
	Pages   int
	Checked int
	Skipped int // external links and pure anchors
	Broken  []BrokenLink
}

// OK reports whether no broken links were found.
func (r *Result) OK() bool { return len(r.Broken) == 0 }

// Err returns a classified error describing the broken links, or nil.
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}
	first := r.Broken[0]
	return errors.LinkError("site contains broken internal links").
		WithContext("broken", len(r.Broken)).
		WithContext("first_page", first.Page).
		WithContext("first_target", first.Target).
		Build()
}

// VerifySite checks the *.html files directly under dir.
func VerifySite(dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read site directory").
			Fatal().
			WithContext("path", dir).
			Build()
	}

	present := make(map[string]bool, len(entries))
	var pages []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		present[e.Name()] = true
		if strings.HasSuffix(e.Name(), ".html") {
			pages = append(pages, e.Name())
		}
	}
	slices.Sort(pages)

	result := &Result{Pages: len(pages)}
	for _, page := range pages {
		links, err := ExtractLinks(filepath.Join(dir, page))
		if err != nil {
			return nil, err
		}
		for _, link := range links {
			// Page names may contain '?' or '#', so the raw href is tried first.
			if link.IsInternal && present[link.URL] {
				result.Checked++
				continue
			}
			target, ok := localTarget(link)
			if !ok {
				result.Skipped++
				continue
			}
			result.Checked++
			if present[target] || fileExists(filepath.Join(dir, filepath.FromSlash(target))) {
				continue
			}
			result.Broken = append(result.Broken, BrokenLink{Page: page, Target: link.URL, Text: link.Text})
			slog.Debug("Broken link", logfields.Path(page), slog.String("target", link.URL))
		}
	}
	return result, nil
}

// localTarget strips query and fragment from an internal link and returns the
// site-relative file it points at.
func localTarget(link *Link) (string, bool) {
	if !link.IsInternal {
		return "", false
	}
	target := link.URL
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}
	if target == "" {
		return "", false
	}
	return strings.TrimPrefix(path.Clean("/"+target), "/"), true
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
