// Package pagination implements the opaque keyset tokens returned by list
// endpoints. A token carries the position of the last row on a page so the
// next query can resume strictly after it.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const stampFormat = time.RFC3339Nano

// Cursor is a keyset position. Key holds the value of the column a listing
// orders by and CreatedAt breaks ties between rows sharing that value.
type Cursor struct {
	Key       time.Time
	CreatedAt time.Time
}

// Encode renders the cursor as an opaque URL-safe token.
func (c Cursor) Encode() string {
	raw := c.Key.Format(stampFormat) + "|" + c.CreatedAt.Format(stampFormat)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode parses a token produced by Encode. Any error means the client
// supplied a token this service never issued.
func Decode(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("malformed page token: %w", err)
	}
	key, tie, found := strings.Cut(string(raw), "|")
	if !found {
		return Cursor{}, fmt.Errorf("malformed page token: missing tie-break")
	}
	var c Cursor
	if c.Key, err = time.Parse(stampFormat, key); err != nil {
		return Cursor{}, fmt.Errorf("malformed page token: %w", err)
	}
	if c.CreatedAt, err = time.Parse(stampFormat, tie); err != nil {
		return Cursor{}, fmt.Errorf("malformed page token: %w", err)
	}
	return c, nil
}
