// Package drawio renders a gen.Graph as a draw.io (mxGraph XML) document.
//
// Each entity becomes a swimlane container holding one text row per field,
// and each edge an orthogonal connector:
//
//	<mxfile>                      header
//	  <mxCell id="User_X1Y2Z3_id_1" .../>          container
//	  <mxCell id="User_X1Y2Z3_id_1_sub_1" .../>    rows
//	  ...
//	  <mxCell id="group_lineTo_Group_ABC123" edge="1" .../>
//	</mxfile>                     footer
//
// Usage:
//
//	g, err := gen.NewGraph(gen.MustNewConfig(gen.WithGenerator(drawio.New())), doc)
//	err = gen.Generate(os.Stdout, g)
package drawio

import (
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"io"
	"text/template"

	"github.com/syssam/modeldraw/compiler/gen"
)

//go:embed template/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("drawio").
	Funcs(template.FuncMap{"attr": attr}).
	ParseFS(templateFS, "template/*.tmpl"))

// Generator implements gen.Generator for draw.io.
type Generator struct {
	layout Layout
}

// Option configures the generator.
type Option func(*Generator)

// WithLayout replaces DefaultLayout.
func WithLayout(l Layout) Option {
	return func(g *Generator) {
		g.layout = l
	}
}

// WithStagger offsets each successive container by dx, dy.
func WithStagger(dx, dy int) Option {
	return func(g *Generator) {
		g.layout.StaggerX = dx
		g.layout.StaggerY = dy
	}
}

// New returns a draw.io generator.
func New(opts ...Option) *Generator {
	g := &Generator{layout: DefaultLayout}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name implements gen.Generator.
func (*Generator) Name() string { return "drawio" }

// Layout returns the layout in use.
func (g *Generator) Layout() Layout { return g.layout }

// Generate implements gen.Generator.
func (g *Generator) Generate(w io.Writer, graph *gen.Graph) error {
	l := g.layout
	doc := document{}
	for i, e := range graph.Entities() {
		x, y := l.position(i)
		c := container{
			ID:        e.ContainerID,
			Name:      e.Name,
			X:         x,
			Y:         y,
			Width:     l.Width,
			Height:    l.Height,
			StartSize: l.StartSize,
		}
		for _, f := range e.Fields {
			c.Rows = append(c.Rows, row{
				ID:     f.ID,
				Parent: e.ContainerID,
				Value:  f.Value(),
				Y:      l.StartSize,
				Width:  l.Width,
				Height: l.RowHeight,
			})
		}
		doc.Containers = append(doc.Containers, c)
	}
	for _, e := range graph.Edges {
		doc.Edges = append(doc.Edges, edge{
			ID:     e.ID,
			Source: e.Source,
			Target: e.Target,
			Label:  e.Label,
		})
	}
	if err := templates.ExecuteTemplate(w, "document", doc); err != nil {
		return gen.NewGenerationError(g.Name(), "", "execute template", err)
	}
	return nil
}

// document is the data passed to the "document" template.
type document struct {
	Containers []container
	Edges      []edge
}

type container struct {
	ID, Name            string
	X, Y, Width, Height int
	StartSize           int
	Rows                []row
}

type row struct {
	ID, Parent, Value string
	Y, Width, Height  int
}

type edge struct {
	ID, Source, Target, Label string
}

// attr escapes s for use inside a double-quoted XML attribute.
func attr(v any) (string, error) {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(fmt.Sprint(v))); err != nil {
		return "", err
	}
	return buf.String(), nil
}
