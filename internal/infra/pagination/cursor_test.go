package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	id := uuid.New()
	at := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)

	cursor := Encode(at, id)
	gotAt, gotID, err := Decode(cursor)

	require.NoError(t, err)
	assert.Equal(t, at, gotAt)
	assert.Equal(t, id, gotID)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"not base64 at all!!",
		Encode(time.Now(), uuid.New()) + "x",
	}
	for _, cursor := range cases {
		_, _, err := Decode(cursor)
		assert.ErrorIs(t, err, ErrInvalidCursor, "cursor %q", cursor)
	}
}

func TestDecodeRejectsBadParts(t *testing.T) {
	// valid base64 but missing separator / bad fields
	_, _, err := Decode("bm8tc2VwYXJhdG9y") // "no-separator"
	assert.ErrorIs(t, err, ErrInvalidCursor)

	_, _, err = Decode("YWJjfGRlZg") // "abc|def"
	assert.ErrorIs(t, err, ErrInvalidCursor)
}
