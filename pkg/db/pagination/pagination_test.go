package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "42", CreatedAt: "2024-03-01T10:00:00.123456789Z"})
	require.NoError(t, err)

	cursor, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "42", cursor.ID)
	assert.Equal(t, "2024-03-01T10:00:00.123456789Z", cursor.CreatedAt)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("!!not-base64!!")
	assert.Error(t, err)

	_, err = DecodeCursor("bm90LWpzb24")
	assert.Error(t, err)
}

func TestBuildCursorPageInfo(t *testing.T) {
	extract := func(v *int) string { return "last" }

	info := BuildCursorPageInfo([]*int{}, 2, extract)
	assert.False(t, info.HasMore)
	assert.Empty(t, info.NextPageToken)

	one, two, three := 1, 2, 3

	info = BuildCursorPageInfo([]*int{&one, &two}, 2, extract)
	assert.False(t, info.HasMore)
	assert.Equal(t, "last", info.NextPageToken)

	info = BuildCursorPageInfo([]*int{&one, &two, &three}, 2, extract)
	assert.True(t, info.HasMore)
	assert.Equal(t, "last", info.NextPageToken)
}
