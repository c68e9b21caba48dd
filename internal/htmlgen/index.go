package htmlgen

import (
	"git.home.luguber.info/inful/glossarybuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/glossarybuilder/internal/lineio"
)

// DefaultTitle is used when no index title is configured.
const DefaultTitle = "Sample Glossary"

// WriteIndex writes the index page listing terms in the given order,
// duplicates included. It does not sort.
func WriteIndex(c lineio.Creator, title string, terms []string) error {
	if title == "" {
		title = DefaultTitle
	}

	w, err := c.Create(IndexPage)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create index page").
			Fatal().
			Build()
	}

	w.Println("<html>")
	w.Println("<head>")
	w.Println("<title>" + title + "</title>")
	w.Println("</head>")
	w.Println("<body>")
	w.Println("<h2>" + title + "</h2>")
	w.Println("<hr />")
	w.Println("<h3>Index</h3>")
	w.Println("<ul>")
	for _, term := range terms {
		w.Println("<li>" + Link(term) + "</li>")
	}
	w.Println("</ul>")
	w.Println("</body>")
	w.Println("</html>")

	if err := w.Close(); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write index page").
			Fatal().
			Build()
	}
	return nil
}
