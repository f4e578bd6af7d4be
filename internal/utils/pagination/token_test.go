package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCursorRoundTrip(t *testing.T) {
	c := Cursor{
		Key:       time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2026, 3, 14, 9, 15, 42, 123456789, time.UTC),
	}

	decoded, err := Decode(c.Encode())
	assert.NoError(t, err)
	assert.True(t, c.Key.Equal(decoded.Key), "ordering key should survive the round trip")
	assert.True(t, c.CreatedAt.Equal(decoded.CreatedAt), "tie-break should survive the round trip")
}

func TestCursorRoundTripZeroValue(t *testing.T) {
	decoded, err := Decode(Cursor{}.Encode())
	assert.NoError(t, err)
	assert.True(t, decoded.Key.IsZero())
	assert.True(t, decoded.CreatedAt.IsZero())
}

func TestCursorTokenIsURLSafe(t *testing.T) {
	c := Cursor{
		Key:       time.Date(2026, 1, 31, 23, 59, 59, 999999999, time.UTC),
		CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 1, time.UTC),
	}

	token := c.Encode()
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "=")
}

func TestDecodeRejectsGarbage(t *testing.T) {
	enc := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	for name, token := range map[string]string{
		"not base64":        "%%not a token%%",
		"missing tie-break": enc("2026-03-14T00:00:00Z"),
		"bad ordering key":  enc("yesterday|2026-03-14T00:00:00Z"),
		"bad tie-break":     enc("2026-03-14T00:00:00Z|later"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(token)
			assert.Error(t, err)
		})
	}
}
