package gen

import (
	"bytes"
	"io"
)

// Generator renders a graph into a document.
//
// Generators do no resolution of their own. Every identifier an edge refers
// to has been issued by NewGraph, so a generator only has to emit all
// containers and rows before the edges that reference them.
type Generator interface {
	// Name identifies the generator in errors, e.g. "drawio".
	Name() string
	// Generate writes the whole document for g to w.
	Generate(w io.Writer, g *Graph) error
}

// Generate renders g with its configured generator.
func Generate(w io.Writer, g *Graph) error {
	if g == nil || g.Config == nil || g.Generator == nil {
		return NewConfigError("Generator", nil, "no generator set: use WithGenerator")
	}
	if err := g.Generator.Generate(w, g); err != nil {
		if IsGenerationError(err) {
			return err
		}
		return NewGenerationError(g.Generator.Name(), "", "render document", err)
	}
	return nil
}

// Render returns the document for g as bytes.
func Render(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Generate(&buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
