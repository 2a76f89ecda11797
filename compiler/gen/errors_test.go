package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modeldraw"
)

func TestSchemaError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := NewSchemaError("shop", "Order", "customer", "invalid type")
		err.Cause = errors.New("underlying error")

		assert.Contains(t, err.Error(), "modeldraw: schema error")
		assert.Contains(t, err.Error(), "in shop")
		assert.Contains(t, err.Error(), "entity Order")
		assert.Contains(t, err.Error(), "field customer")
		assert.Contains(t, err.Error(), "invalid type")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Error message with namespace only", func(t *testing.T) {
		err := &SchemaError{Namespace: "shop"}
		assert.Equal(t, "modeldraw: schema error in shop", err.Error())
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := &SchemaError{Cause: cause}
		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrInvalidSchema", func(t *testing.T) {
		err := NewSchemaError("shop", "", "", "nil document")
		assert.True(t, errors.Is(err, ErrInvalidSchema))
		assert.True(t, IsSchemaError(err))
		assert.False(t, IsSchemaError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("IDs", "snowflake", "unknown generator")
		assert.Equal(t, `modeldraw: config error for "IDs" (value: snowflake): unknown generator`, err.Error())
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Logger", nil, "logger cannot be nil")
		assert.Equal(t, `modeldraw: config error for "Logger": logger cannot be nil`, err.Error())
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Policy", 9, "unknown relation policy")
		assert.True(t, errors.Is(err, ErrMissingConfig))
		assert.True(t, IsConfigError(err))
	})
}

func TestEdgeError(t *testing.T) {
	cause := modeldraw.NewNotFoundError("group", "group")

	t.Run("inferred", func(t *testing.T) {
		err := NewEdgeError("Customer", "group", "group", cause)
		assert.Equal(t, `modeldraw: edge error (Customer.group -> group): modeldraw: target "group" not found`, err.Error())
	})

	t.Run("explicit", func(t *testing.T) {
		err := NewEdgeError("Customer", "", "Group", cause)
		assert.Contains(t, err.Error(), "(Customer -> Group)")
	})

	t.Run("unwraps to not found", func(t *testing.T) {
		err := NewEdgeError("Customer", "", "Group", cause)
		assert.True(t, errors.Is(err, ErrUnresolvedEdge))
		assert.True(t, errors.Is(err, modeldraw.ErrNotFound))
		assert.True(t, modeldraw.IsNotFound(err))
		assert.True(t, IsEdgeError(err))
	})
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewGenerationError("drawio", "out/erd.drawio", "write document", cause)

	assert.Equal(t, "modeldraw: generation error in drawio (file: out/erd.drawio): write document: disk full", err.Error())
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsGenerationError(err))

	bare := &GenerationError{Message: "render document"}
	assert.Equal(t, "modeldraw: generation error: render document", bare.Error())
}

func TestIdentifierError(t *testing.T) {
	err := &IdentifierError{Entity: "User", Attempts: 3, Last: "User_A_id_1"}
	assert.Equal(t, `modeldraw: no unique identifier for "User" after 3 attempts (last "User_A_id_1")`, err.Error())
	assert.True(t, errors.Is(err, ErrIdentifierExhausted))
	assert.True(t, IsIdentifierError(err))
}

func TestErrorsAs(t *testing.T) {
	var wrapped error = NewEdgeError("A", "b", "b", modeldraw.NewNotFoundError("b", "b"))

	var edgeErr *EdgeError
	require.True(t, errors.As(wrapped, &edgeErr))
	assert.Equal(t, "A", edgeErr.From)

	var nf *modeldraw.NotFoundError
	require.True(t, errors.As(wrapped, &nf))
	assert.Equal(t, "b", nf.Target())
}
