// Package cursor encodes and decodes connection cursors: opaque base64
// strings wrapping a JSON array of ordering values. The first element is
// the cursor prefix; the rest are the row's values under the active
// ordering.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidCursor is reported for inputs that don't decode to a JSON
// array.
var ErrInvalidCursor = errors.New("invalid cursor")

var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.URLEncoding,
	base64.RawStdEncoding,
	base64.RawURLEncoding,
}

// Encode packs values into an opaque cursor string.
func Encode(values []any) (string, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encoding cursor: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode unpacks a cursor produced by Encode. Cursors travel through
// URLs and copy-paste, so all common base64 variants are accepted.
func Decode(s string) ([]any, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidCursor)
	}
	var raw []byte
	var err error
	for _, enc := range encodings {
		raw, err = enc.DecodeString(s)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	var values []any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("%w: not a JSON array", ErrInvalidCursor)
	}
	if values == nil {
		// JSON null unmarshals into a nil slice without an error.
		return nil, fmt.Errorf("%w: not a JSON array", ErrInvalidCursor)
	}
	return values, nil
}
