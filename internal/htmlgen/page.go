// Package htmlgen renders glossary term pages and the index page.
package htmlgen

import (
	"strings"

	"git.home.luguber.info/inful/glossarybuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/glossarybuilder/internal/glossary"
	"git.home.luguber.info/inful/glossarybuilder/internal/lineio"
)

// IndexPage is the file name of the index page.
const IndexPage = "index.html"

// PageName returns the file name of the page for term.
func PageName(term string) string {
	return term + ".html"
}

// Link renders an anchor to the page of term.
func Link(term string) string {
	return `<a href="` + PageName(term) + `">` + term + `</a>`
}

// PageStats summarizes a WritePages run.
type PageStats struct {
	Pages int // distinct pages written
	Links int // cross-links rendered across all pages
}

// RenderDefinition returns def with every word token that is a defined term
// replaced by a link to its page. Separators and other words are copied verbatim.
func RenderDefinition(def string, g *glossary.Glossary) (string, int) {
	var b strings.Builder
	links := 0
	for _, tok := range glossary.Tokenize(def, &glossary.DefaultSeparators) {
		if !tok.Separator && g.Has(tok.Text) {
			b.WriteString(Link(tok.Text))
			links++
			continue
		}
		b.WriteString(tok.Text)
	}
	return b.String(), links
}

// WritePage writes the page for term. The writer is closed before returning.
func WritePage(c lineio.Creator, term string, g *glossary.Glossary) (int, error) {
	def, ok := g.Definition(term)
	if !ok {
		return 0, errors.InternalError("term missing from definitions").
			WithContext("term", term).
			Build()
	}

	w, err := c.Create(PageName(term))
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryFileSystem, "failed to create term page").
			Fatal().
			WithContext("page", PageName(term)).
			Build()
	}

	body, links := RenderDefinition(def, g)

	w.Println("<html>")
	w.Println("<head>")
	w.Println("<title>" + term + "</title>")
	w.Println("</head>")
	w.Println("<body>")
	w.Println(`<h2><b><i><font color="red">` + term + `</font></i></b></h2>`)
	w.Println("<blockquote>" + body + "</blockquote>")
	w.Println("<hr />")
	w.Println(`<p>Return to <a href="` + IndexPage + `">index</a>.</p>`)
	w.Println("</body>")
	w.Println("</html>")

	if err := w.Close(); err != nil {
		return 0, errors.WrapError(err, errors.CategoryFileSystem, "failed to write term page").
			Fatal().
			WithContext("page", PageName(term)).
			Build()
	}
	return links, nil
}

// WritePages writes one page per distinct term in g.Terms order. A term that
// occurs several times in the sequence is written once.
func WritePages(c lineio.Creator, g *glossary.Glossary) (PageStats, error) {
	var stats PageStats
	written := make(map[string]struct{}, g.Distinct())
	for _, term := range g.Terms {
		if _, done := written[term]; done {
			continue
		}
		links, err := WritePage(c, term, g)
		if err != nil {
			return stats, err
		}
		written[term] = struct{}{}
		stats.Pages++
		stats.Links += links
	}
	return stats, nil
}
