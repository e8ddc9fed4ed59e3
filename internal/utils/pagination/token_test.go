package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeEntryToken(t *testing.T) {
	createdAt := time.Date(2025, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeEntryToken(createdAt, 4821)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeEntryToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.True(t, createdAt.Equal(decodedAt), "Created at should match after decode")
	assert.Equal(t, int64(4821), decodedID)

	// Non-UTC input comes back as the same instant
	lagos := time.FixedZone("WAT", 3600)
	local := time.Date(2025, 1, 2, 9, 0, 0, 0, lagos)
	decodedAt, _, err = DecodeEntryToken(EncodeEntryToken(local, 1))
	assert.NoError(t, err)
	assert.True(t, local.Equal(decodedAt))
}

func TestDecodeEntryTokenError(t *testing.T) {
	_, _, err := DecodeEntryToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	noSep := base64.StdEncoding.EncodeToString([]byte("2025-05-15T00:00:00Z"))
	_, _, err = DecodeEntryToken(noSep)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.StdEncoding.EncodeToString([]byte("notadate|12"))
	_, _, err = DecodeEntryToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")

	badID := base64.StdEncoding.EncodeToString([]byte("2025-05-15T00:00:00Z|twelve"))
	_, _, err = DecodeEntryToken(badID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "entry id parse")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-3))
	assert.Equal(t, 25, ClampLimit(25))
	assert.Equal(t, MaxLimit, ClampLimit(1000))
}
