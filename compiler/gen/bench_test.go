package gen_test

import (
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/modeldraw/compiler/gen"
	"github.com/syssam/modeldraw/compiler/gen/drawio"
	"github.com/syssam/modeldraw/compiler/load"
)

// benchDocument returns apps*models entities, each with a foreign key to
// the previous model of its app.
func benchDocument(apps, models int) *load.Document {
	doc := &load.Document{}
	for a := range apps {
		app := &load.App{Name: fmt.Sprintf("app%d", a)}
		for m := range models {
			model := &load.Model{
				Name: fmt.Sprintf("Model%d_%d", a, m),
				Fields: []*load.Field{
					{Name: "id", Type: "BigAutoField"},
					{Name: "name", Type: "CharField"},
				},
			}
			if m > 0 {
				prev := fmt.Sprintf("Model%d_%d", a, m-1)
				model.Fields = append(model.Fields, &load.Field{Name: prev, Type: "ForeignKey (id)"})
				model.Relations = append(model.Relations, &load.Relation{Target: prev})
			}
			app.Models = append(app.Models, model)
		}
		doc.Graphs = append(doc.Graphs, app)
	}
	return doc
}

func BenchmarkNewGraph(b *testing.B) {
	doc := benchDocument(20, 50)
	for _, p := range []gen.Policy{gen.PolicyInferred, gen.PolicyExplicit} {
		b.Run(p.String(), func(b *testing.B) {
			c := gen.MustNewConfig(gen.WithPolicy(p))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := gen.NewGraph(c, doc)
				require.NoError(b, err)
			}
		})
	}
}

func BenchmarkGraph_Gen(b *testing.B) {
	g, err := gen.NewGraph(gen.MustNewConfig(gen.WithGenerator(drawio.New())), benchDocument(20, 50))
	require.NoError(b, err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		require.NoError(b, gen.Generate(io.Discard, g))
	}
}

func BenchmarkFileWriter(b *testing.B) {
	g, err := gen.NewGraph(gen.MustNewConfig(gen.WithGenerator(drawio.New())), benchDocument(20, 50))
	require.NoError(b, err)
	path := filepath.Join(b.TempDir(), "bench.drawio")
	w := gen.NewFileWriter(g)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		require.NoError(b, w.WriteFile(path))
	}
}
