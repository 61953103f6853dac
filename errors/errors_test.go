package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrapf(t *testing.T) {
	original := New("original")
	wrapped := Wrapf(original, "wrapped: %d", 42)

	assert.Contains(t, wrapped.Error(), "wrapped: 42")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := New("error")
	withHint := WithHint(err, "try this fix")

	hints := GetAllHints(withHint)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WithDetail(nil, "detail"))
	assert.False(t, IsMissingInput(nil))
	assert.Equal(t, "", Kind(nil))
}

func TestNewMissingInput(t *testing.T) {
	err := NewMissingInput("metadata store", "resources/icons/metadata/icons.json")

	assert.True(t, IsMissingInput(err))
	assert.Contains(t, err.Error(), "required input missing")
	assert.Contains(t, err.Error(), "resources/icons/metadata/icons.json")
	assert.NotEmpty(t, GetAllHints(err))
}

func TestNewMalformed(t *testing.T) {
	err := NewMalformed("icons.json", New("unexpected end of JSON input"))

	assert.True(t, IsMalformedMetadata(err))
	assert.Contains(t, err.Error(), "icons.json")
	assert.Contains(t, GetAllDetails(err), "unexpected end of JSON input")
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{Wrap(ErrMissingInput, "x"), "missing-input"},
		{Wrap(ErrMalformedMetadata, "x"), "malformed-metadata"},
		{Wrap(ErrIdentifierCollision, "x"), "identifier-collision"},
		{Wrap(ErrDuplicateName, "x"), "identifier-collision"},
		{Wrap(ErrValidationFailed, "x"), "validation-failure"},
		{Wrap(ErrDownstreamTool, "x"), "downstream-tool-failure"},
		{Wrap(ErrInvalidConfig, "x"), "invalid-config"},
		{New("boom"), "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestErrorChaining(t *testing.T) {
	err := Wrapf(ErrMalformedMetadata, "tags.json")
	err = WithHint(err, "regenerate the metadata store")
	err = Wrap(err, "failed to load catalog")

	assert.True(t, IsMalformedMetadata(err))
	assert.Contains(t, err.Error(), "failed to load catalog")
	assert.Contains(t, err.Error(), "tags.json")
	assert.Contains(t, GetAllHints(err), "regenerate the metadata store")
}

func ExampleWrapf() {
	err := Wrapf(ErrMissingInput, "source directory %s", "svg")
	fmt.Println(err)
	// Output: source directory svg: required input missing
}
