package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConvention(t *testing.T) {
	for _, name := range []string{"google", "numpy", "rest"} {
		conv, err := ParseConvention(name)
		require.NoError(t, err)
		assert.Equal(t, Convention(name), conv)
	}

	_, err := ParseConvention("sphinx")
	assert.Error(t, err)
}

func TestConvention_Instructions(t *testing.T) {
	assert.Contains(t, ConventionGoogle.Instructions(), "Args:")
	assert.Contains(t, ConventionNumpy.Instructions(), "dashes")
	assert.Contains(t, ConventionRest.Instructions(), ":param")
}
