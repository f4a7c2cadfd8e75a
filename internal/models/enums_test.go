package models_test

import (
	"testing"

	"github.com/avissapr/campwatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseRankLevel verifies the full accepted range and rejection of
// out-of-range codes with the sentinel error.
func TestParseRankLevel(t *testing.T) {
	for code := 0; code <= 10; code++ {
		rank, err := models.ParseRankLevel(code)
		require.NoError(t, err, "code %d should decode", code)
		assert.Equal(t, models.RankLevel(code), rank)
	}

	for _, code := range []int{-1, 11, 99} {
		_, err := models.ParseRankLevel(code)
		assert.ErrorIs(t, err, models.ErrUnknownRank, "code %d should be rejected", code)
	}
}

// TestRankLevel_String verifies the stable display keys, including the
// gendered tiers and the empty key for no rank.
func TestRankLevel_String(t *testing.T) {
	assert.Equal(t, "", models.RankNone.String())
	assert.Equal(t, "RANK_FIRST_MALE", models.RankFirstM.String())
	assert.Equal(t, "RANK_FIRST_FEMALE", models.RankFirstF.String())
	assert.Equal(t, "RANK_FOURTH_FEMALE", models.RankFourthF.String())
	assert.Equal(t, "RANK_FIFTH", models.RankFifth.String())
	assert.Equal(t, "RANK_SIXTH", models.RankSixth.String())
}

// TestParseMethodology verifies the four category codes decode and anything
// else is rejected.
func TestParseMethodology(t *testing.T) {
	for code := 0; code <= 3; code++ {
		m, err := models.ParseMethodology(code)
		require.NoError(t, err)
		assert.Equal(t, models.Methodology(code), m)
	}

	for _, code := range []int{-1, 4} {
		_, err := models.ParseMethodology(code)
		assert.ErrorIs(t, err, models.ErrUnknownMethodology)
	}
}

// TestMethodology_GroupID verifies the fixed code-to-group-id mapping the
// reserved groups rely on.
func TestMethodology_GroupID(t *testing.T) {
	assert.Equal(t, 2, models.MethodologyCub.GroupID())
	assert.Equal(t, 3, models.MethodologyScout.GroupID())
	assert.Equal(t, 4, models.MethodologyVentureScout.GroupID())
	assert.Equal(t, 5, models.MethodologyRover.GroupID())
}

// TestMethodology_String verifies display names match the seeded group names.
func TestMethodology_String(t *testing.T) {
	assert.Equal(t, "Cub", models.MethodologyCub.String())
	assert.Equal(t, "Scout", models.MethodologyScout.String())
	assert.Equal(t, "Venture Scout", models.MethodologyVentureScout.String())
	assert.Equal(t, "Rover", models.MethodologyRover.String())
}

// TestParsePresence verifies only the two direction codes are accepted.
func TestParsePresence(t *testing.T) {
	out, err := models.ParsePresence(0)
	require.NoError(t, err)
	assert.Equal(t, models.PresenceOut, out)

	in, err := models.ParsePresence(1)
	require.NoError(t, err)
	assert.Equal(t, models.PresenceIn, in)

	_, err = models.ParsePresence(2)
	assert.ErrorIs(t, err, models.ErrUnknownPresence)
}

// TestPresence_String covers both directions.
func TestPresence_String(t *testing.T) {
	assert.Equal(t, "In", models.PresenceIn.String())
	assert.Equal(t, "Out", models.PresenceOut.String())
}
