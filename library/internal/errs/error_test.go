package errs_test

import (
	"testing"

	"github.com/PrepZone-ai/LibraryConnekto-Backend/library/internal/errs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewf(t *testing.T) {
	err := errs.Newf(errs.ErrNotFound, "booking %s not found", "b1")
	require.Equal(t, "booking b1 not found", err.Error())
	require.True(t, errors.Is(err, errs.ErrNotFound))
	require.False(t, errors.Is(err, errs.ErrConflict))

	wrapped := errors.Wrap(err, "confirm")
	require.True(t, errors.Is(wrapped, errs.ErrNotFound))
}
