package message

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
)

// MaxTokenSize maximum of token size that can be used in message
const MaxTokenSize = 8

type Token []byte

func (t Token) String() string {
	return base64.StdEncoding.EncodeToString(t)
}

// Equal compares tokens byte by byte, lengths included.
func (t Token) Equal(o Token) bool {
	return bytes.Equal(t, o)
}

// GetToken generates a random token of MaxTokenSize bytes.
func GetToken() (Token, error) {
	b := make(Token, MaxTokenSize)
	_, err := rand.Read(b)
	// Note that err == nil only if we read len(b) bytes.
	if err != nil {
		// fallback to cryptographically insecure pseudo-random generator
		if _, err = weakRng.Read(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}
