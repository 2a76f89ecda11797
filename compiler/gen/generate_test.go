package gen

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator writes one line per entity and edge.
type stubGenerator struct {
	err error
}

func (stubGenerator) Name() string { return "stub" }

func (s stubGenerator) Generate(w io.Writer, g *Graph) error {
	if s.err != nil {
		return s.err
	}
	for _, e := range g.Entities() {
		if _, err := fmt.Fprintf(w, "entity %s\n", e.ContainerID); err != nil {
			return err
		}
	}
	for _, e := range g.Edges {
		if _, err := fmt.Fprintf(w, "edge %s %s\n", e.Source, e.Target); err != nil {
			return err
		}
	}
	return nil
}

func TestGenerate(t *testing.T) {
	g, err := NewGraph(MustNewConfig(
		WithGenerator(stubGenerator{}),
		WithIDGenerator(&SequenceGenerator{}),
		WithPolicy(PolicyExplicit),
	), shop())
	require.NoError(t, err)

	out, err := Render(g)
	require.NoError(t, err)
	assert.Equal(t, "entity User_1_id_1\n"+
		"entity Customer_2_id_1\n"+
		"entity Order_3_id_1\n"+
		"edge Customer_2_id_1 User_1_id_1\n"+
		"edge Order_3_id_1 Customer_2_id_1\n", string(out))
}

func TestGenerate_NoGenerator(t *testing.T) {
	g, err := NewGraph(&Config{}, shop())
	require.NoError(t, err)

	_, err = Render(g)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	assert.True(t, IsConfigError(Generate(io.Discard, nil)))
}

func TestGenerate_WrapsFailure(t *testing.T) {
	cause := errors.New("boom")
	g, err := NewGraph(MustNewConfig(WithGenerator(stubGenerator{err: cause})), shop())
	require.NoError(t, err)

	err = Generate(io.Discard, g)
	require.Error(t, err)
	assert.True(t, IsGenerationError(err))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "in stub")
}

func TestGenerate_KeepsGenerationError(t *testing.T) {
	cause := NewGenerationError("stub", "", "execute template", errors.New("bad"))
	g, err := NewGraph(MustNewConfig(WithGenerator(stubGenerator{err: cause})), shop())
	require.NoError(t, err)

	err = Generate(io.Discard, g)
	assert.Same(t, cause, err)
}
