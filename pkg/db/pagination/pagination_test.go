package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "42"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	cursor, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "42", cursor.ID)

	_, err = DecodeCursor("not-base64!")
	assert.Error(t, err)
}

func TestBuildCursorPageInfo(t *testing.T) {
	type row struct{ ID int64 }
	extract := func(r *row) string { return strconv.FormatInt(r.ID, 10) }

	t.Run("empty", func(t *testing.T) {
		info := BuildCursorPageInfo([]*row{}, 2, extract)
		require.NotNil(t, info)
		assert.False(t, info.HasMore)
		assert.Empty(t, info.NextPageToken)
	})

	t.Run("partial page", func(t *testing.T) {
		info := BuildCursorPageInfo([]*row{{ID: 1}}, 2, extract)
		require.NotNil(t, info)
		assert.False(t, info.HasMore)
		assert.Equal(t, "1", info.NextPageToken)
	})

	t.Run("extra row signals more", func(t *testing.T) {
		info := BuildCursorPageInfo([]*row{{ID: 1}, {ID: 2}, {ID: 3}}, 2, extract)
		require.NotNil(t, info)
		assert.True(t, info.HasMore)
		assert.Equal(t, "2", info.NextPageToken)
	})
}
