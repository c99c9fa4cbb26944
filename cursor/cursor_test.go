package cursor_test

import (
	"encoding/base64"
	"testing"

	"github.com/Graphile/graphql-build/cursor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	encoded, err := cursor.Encode([]any{"natural", 42, "2024-01-01"})
	require.NoError(t, err)
	decoded, err := cursor.Decode(encoded)
	require.NoError(t, err)
	// Numbers come back as float64, like everywhere JSON passes through.
	assert.Equal(t, []any{"natural", float64(42), "2024-01-01"}, decoded)
}

func TestDecodeAcceptsAllBase64Variants(t *testing.T) {
	// The payload includes bytes whose encoding differs between the
	// standard and URL alphabets.
	raw := []byte(`["???>>>",42]`)
	want := []any{"???>>>", float64(42)}
	tests := []struct {
		name string
		enc  *base64.Encoding
	}{
		{"std", base64.StdEncoding},
		{"url", base64.URLEncoding},
		{"raw_std", base64.RawStdEncoding},
		{"raw_url", base64.RawURLEncoding},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decoded, err := cursor.Decode(tc.enc.EncodeToString(raw))
			require.NoError(t, err)
			assert.Equal(t, want, decoded)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	_, err := cursor.Decode("")
	assert.ErrorIs(t, err, cursor.ErrInvalidCursor)
}

func TestDecodeBadBase64(t *testing.T) {
	_, err := cursor.Decode("!!!")
	assert.ErrorIs(t, err, cursor.ErrInvalidCursor)
}

func TestDecodeNotAnArray(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte(`{"page":2}`))
	_, err := cursor.Decode(encoded)
	assert.ErrorIs(t, err, cursor.ErrInvalidCursor)
}

func TestDecodeNullPayload(t *testing.T) {
	// JSON null is not an array, even though it unmarshals into a slice
	// without complaint.
	encoded := base64.StdEncoding.EncodeToString([]byte(`null`))
	_, err := cursor.Decode(encoded)
	assert.ErrorIs(t, err, cursor.ErrInvalidCursor)
}

func TestDecodeEmptyArray(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte(`[]`))
	decoded, err := cursor.Decode(encoded)
	require.NoError(t, err)
	require.NotNil(t, decoded)
	assert.Empty(t, decoded)
}

func TestEncodeUnserializable(t *testing.T) {
	_, err := cursor.Encode([]any{make(chan int)})
	assert.Error(t, err)
}
