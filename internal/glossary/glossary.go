// Package glossary holds the term list and definitions parsed from a glossary
// source, the case-insensitive term ordering, and the definition tokenizer.
package glossary

import (
	"errors"
	"io"
	"strings"

	"git.home.luguber.info/inful/glossarybuilder/internal/lineio"
)

// Glossary is the ordered term sequence plus the term to definition mapping.
// Terms keeps every occurrence, duplicates included; the mapping keeps the
// first definition seen for each term.
type Glossary struct {
	Terms       []string
	definitions map[string]string
}

// New returns an empty glossary.
func New() *Glossary {
	return &Glossary{definitions: make(map[string]string)}
}

// Add appends term to the sequence and records def unless term is already defined.
func (g *Glossary) Add(term, def string) {
	g.Terms = append(g.Terms, term)
	if _, exists := g.definitions[term]; !exists {
		g.definitions[term] = def
	}
}

// Definition returns the definition stored for term.
func (g *Glossary) Definition(term string) (string, bool) {
	def, ok := g.definitions[term]
	return def, ok
}

// Has reports whether term is a key of the mapping. Matching is case-sensitive.
func (g *Glossary) Has(term string) bool {
	_, ok := g.definitions[term]
	return ok
}

// Len returns the number of entries in the sequence, duplicates included.
func (g *Glossary) Len() int { return len(g.Terms) }

// Distinct returns the number of defined terms.
func (g *Glossary) Distinct() int { return len(g.definitions) }

// Extract reads entries from r until end of input. Each entry is a term line
// followed by definition lines, which are concatenated without separator, and
// ends at a blank line or end of input. Blank lines where a term is expected
// are skipped. The reader is not closed.
func Extract(r lineio.Reader) (*Glossary, error) {
	g := New()
	for {
		term, err := r.ReadLine()
		if errors.Is(err, io.EOF) {
			return g, nil
		}
		if err != nil {
			return nil, err
		}
		if term == "" {
			continue
		}

		def, err := readDefinition(r)
		if err != nil {
			return nil, err
		}
		g.Add(term, def)
	}
}

func readDefinition(r lineio.Reader) (string, error) {
	var def strings.Builder
	for {
		line, err := r.ReadLine()
		if errors.Is(err, io.EOF) {
			return def.String(), nil
		}
		if err != nil {
			return "", err
		}
		if line == "" {
			return def.String(), nil
		}
		def.WriteString(line)
	}
}
