package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	h, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	require.True(t, VerifyPassword(h, "secret123"))
	require.False(t, VerifyPassword(h, "secret124"))
}

func TestDummyHashMatchesConfiguredCost(t *testing.T) {
	for _, cost := range []int{bcrypt.MinCost, bcrypt.MinCost + 1} {
		got, err := bcrypt.Cost(dummyHash(cost))
		require.NoError(t, err)
		require.Equal(t, cost, got)
	}
	// Cached per cost.
	require.Equal(t, dummyHash(bcrypt.MinCost), dummyHash(bcrypt.MinCost))
}

func TestBurnPasswordCheck_InvalidCostFallsBack(t *testing.T) {
	got, err := bcrypt.Cost(dummyHash(bcrypt.MaxCost + 1))
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, got)
	BurnPasswordCheck("anything", bcrypt.MinCost)
}
