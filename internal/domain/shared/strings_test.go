package shared

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireText_CountsCharacters(t *testing.T) {
	v, err := RequireText("name", "  "+strings.Repeat("ü", 10)+"  ", 10)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ü", 10), v)

	_, err = RequireText("name", strings.Repeat("a", 11), 10)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = RequireText("name", "   ", 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOptionalText(t *testing.T) {
	blank := "  "
	v, err := OptionalText("vendor", &blank, 5)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = OptionalText("vendor", nil, 5)
	require.NoError(t, err)
	assert.Nil(t, v)

	ok := " acme "
	v, err = OptionalText("vendor", &ok, 5)
	require.NoError(t, err)
	assert.Equal(t, "acme", *v)

	long := "acme corp"
	_, err = OptionalText("vendor", &long, 5)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
