package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("deck.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "deck.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "deck.yaml:12")
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("slides[1].blocks[0].content.color", "must be a hex color", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "slides[1].blocks[0].content.color", validationErr.Field)
	require.Contains(t, err.Error(), "must be a hex color")
}

func TestInvariantErrorNamesOperation(t *testing.T) {
	t.Parallel()

	err := NewInvariantError("delete slide", "a carousel needs at least one slide")

	var invErr *InvariantError
	require.ErrorAs(t, err, &invErr)
	require.Equal(t, "delete slide", invErr.Operation)
	require.Equal(t, "refused delete slide: a carousel needs at least one slide", err.Error())
}

func TestExportErrorIsOneBasedInMessage(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("image unreachable")
	err := NewExportError(2, "slide-3", underlying)

	var exportErr *ExportError
	require.ErrorAs(t, err, &exportErr)
	require.Equal(t, 2, exportErr.SlideIndex)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "slide 3")
}

func TestAssetAndTranslationErrorsUnwrap(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("boom")

	assetErr := NewAssetError("logo.png", underlying)
	require.True(t, stdErrors.Is(assetErr, underlying))
	require.Contains(t, assetErr.Error(), "logo.png")

	trErr := NewTranslationError("0.1.text", underlying)
	require.True(t, stdErrors.Is(trErr, underlying))
	require.Contains(t, trErr.Error(), "0.1.text")

	require.Equal(t, "translation error: boom", NewTranslationError("", underlying).Error())
}
