package models

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func query(pairs ...string) url.Values {
	values := url.Values{}
	for i := 0; i < len(pairs)-1; i += 2 {
		values.Set(pairs[i], pairs[i+1])
	}
	return values
}

func TestParseListQuery_Pagination(t *testing.T) {
	t.Run("defaults when absent", func(t *testing.T) {
		filters := ParseListQuery(query())
		assert.Equal(t, DefaultLimit, filters.Limit)
		assert.Equal(t, 0, filters.Offset)
	})

	t.Run("limit above cap is clamped", func(t *testing.T) {
		filters := ParseListQuery(query("limit", "9999"))
		assert.Equal(t, MaxLimit, filters.Limit)
	})

	t.Run("negative limit defaults", func(t *testing.T) {
		filters := ParseListQuery(query("limit", "-5"))
		assert.Equal(t, DefaultLimit, filters.Limit)
	})

	t.Run("non-numeric limit defaults", func(t *testing.T) {
		filters := ParseListQuery(query("limit", "lots"))
		assert.Equal(t, DefaultLimit, filters.Limit)
	})

	t.Run("zero limit is honored", func(t *testing.T) {
		filters := ParseListQuery(query("limit", "0"))
		assert.Equal(t, 0, filters.Limit)
	})

	t.Run("negative offset defaults to zero", func(t *testing.T) {
		filters := ParseListQuery(query("offset", "-10"))
		assert.Equal(t, 0, filters.Offset)
	})

	t.Run("non-numeric offset defaults to zero", func(t *testing.T) {
		filters := ParseListQuery(query("offset", "ten"))
		assert.Equal(t, 0, filters.Offset)
	})
}

func TestParseListQuery_Filters(t *testing.T) {
	t.Run("valid grid id is parsed", func(t *testing.T) {
		gridID := uuid.NewString()
		filters := ParseListQuery(query("grid_id", gridID))
		require.NotNil(t, filters.GridID)
		assert.Equal(t, gridID, filters.GridID.String())
		assert.False(t, filters.MatchNone)
	})

	t.Run("malformed grid id matches nothing instead of failing", func(t *testing.T) {
		filters := ParseListQuery(query("grid_id", "not-a-uuid"))
		assert.Nil(t, filters.GridID)
		assert.True(t, filters.MatchNone)
	})

	t.Run("valid status is parsed", func(t *testing.T) {
		filters := ParseListQuery(query("status", "confirmed"))
		require.NotNil(t, filters.Status)
		assert.Equal(t, StatusConfirmed, *filters.Status)
	})

	t.Run("unknown status matches nothing", func(t *testing.T) {
		filters := ParseListQuery(query("status", "teleported"))
		assert.Nil(t, filters.Status)
		assert.True(t, filters.MatchNone)
	})
}

func TestParseIncludeCounts(t *testing.T) {
	assert.True(t, ParseIncludeCounts(""))
	assert.True(t, ParseIncludeCounts("true"))
	assert.True(t, ParseIncludeCounts("anything"))
	assert.False(t, ParseIncludeCounts("false"))
	assert.False(t, ParseIncludeCounts("0"))
	assert.False(t, ParseIncludeCounts("NO"))
}
