package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/syssam/modeldraw"
	"github.com/syssam/modeldraw/compiler/load"
)

func TestWithPolicy(t *testing.T) {
	t.Run("sets policy", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithPolicy(PolicyNone)(c))
		assert.Equal(t, PolicyNone, c.Policy)
	})

	t.Run("rejects unknown policy", func(t *testing.T) {
		c := &Config{}
		err := WithPolicy(Policy(9))(c)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.Equal(t, PolicyInferred, c.Policy)
	})
}

func TestWithOmitPrefixes(t *testing.T) {
	tests := []struct {
		name     string
		prefixes []string
		expected []string
		wantErr  bool
	}{
		{"default", nil, []string{DefaultOmitPrefix}, false},
		{"custom", []string{"vendor.", "legacy_"}, []string{"vendor.", "legacy_"}, false},
		{"empty prefix", []string{"vendor.", ""}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithOmitPrefixes(tt.prefixes...)(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c.OmitPrefixes)
		})
	}

	t.Run("accumulates", func(t *testing.T) {
		c := MustNewConfig(WithOmitPrefixes(), WithOmitPrefixes("vendor."))
		assert.Equal(t, []string{DefaultOmitPrefix, "vendor."}, c.OmitPrefixes)
	})
}

func TestWithMappings(t *testing.T) {
	t.Run("sets mappings in order", func(t *testing.T) {
		a := &load.Mapping{Name: "usr", MapsTo: "User"}
		b := &load.Mapping{Name: "grp", MapsTo: "Group"}
		c := MustNewConfig(WithMappings(a), WithMappings(b))
		assert.Equal(t, []*load.Mapping{a, b}, c.Mappings)
	})

	t.Run("rejects incomplete mapping", func(t *testing.T) {
		_, err := NewConfig(WithMappings(&load.Mapping{Name: "usr"}))
		require.Error(t, err)
		assert.True(t, modeldraw.IsMissingKey(err))
	})
}

func TestWithRelationMarkers(t *testing.T) {
	c := &Config{}
	assert.Equal(t, DefaultRelationMarkers, c.markers())

	require.NoError(t, WithRelationMarkers("ParentalKey")(c))
	assert.Equal(t, []string{"ParentalKey"}, c.markers())

	assert.True(t, IsConfigError(WithRelationMarkers()(c)))
	assert.True(t, IsConfigError(WithRelationMarkers("ForeignKey", "")(c)))
}

func TestWithIDGenerator(t *testing.T) {
	c := &Config{}
	assert.IsType(t, &RandomGenerator{}, c.ids())

	g := &SequenceGenerator{}
	require.NoError(t, WithIDGenerator(g)(c))
	assert.Same(t, g, c.ids())

	assert.True(t, IsConfigError(WithIDGenerator(nil)(c)))
}

func TestWithToggles(t *testing.T) {
	c := MustNewConfig(WithInflection(true), WithEdgeLabels(true))
	assert.True(t, c.Inflect)
	assert.True(t, c.EdgeLabels)

	require.NoError(t, WithInflection(false)(c))
	assert.False(t, c.Inflect)
}

func TestWithLogger(t *testing.T) {
	c := &Config{}
	assert.NotNil(t, c.logger())

	l := zap.NewExample()
	require.NoError(t, WithLogger(l)(c))
	assert.Same(t, l, c.logger())

	assert.True(t, IsConfigError(WithLogger(nil)(c)))
}

func TestWithGenerator(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithGenerator(stubGenerator{})(c))
	assert.Equal(t, "stub", c.Generator.Name())
	assert.True(t, IsConfigError(WithGenerator(nil)(c)))
}

func TestConfig_Apply(t *testing.T) {
	t.Run("stops at first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(WithPolicy(Policy(9)), WithInflection(true))
		require.Error(t, err)
		assert.False(t, c.Inflect)
	})

	t.Run("ApplyAll collects errors", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(WithPolicy(Policy(9)), WithInflection(true), WithLogger(nil))
		require.Error(t, err)
		assert.True(t, c.Inflect)
		assert.True(t, errors.Is(err, ErrMissingConfig))
		assert.Contains(t, err.Error(), "Policy")
		assert.Contains(t, err.Error(), "Logger")
	})
}

func TestNewConfig(t *testing.T) {
	c, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, PolicyInferred, c.Policy)
	assert.Empty(t, c.OmitPrefixes)

	_, err = NewConfig(WithPolicy(Policy(9)))
	require.Error(t, err)

	assert.Panics(t, func() { MustNewConfig(WithPolicy(Policy(9))) })
}
