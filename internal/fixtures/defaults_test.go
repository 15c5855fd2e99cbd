package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings("Acme")

	cutoff, err := s.LateCutoff()
	require.NoError(t, err)
	assert.Equal(t, "11:00", cutoff.String())

	autoOut, err := s.AutoClockOut()
	require.NoError(t, err)
	assert.Equal(t, "19:00", autoOut.String())

	assert.False(t, s.LatePolicyEnabled())
	assert.Equal(t, "Acme", s.CompanyName)
}
