package message

import (
	"encoding/hex"
	"fmt"
)

// Identity is the (message ID, token) pair correlating requests, responses,
// acknowledgements and retransmissions. It is comparable and can be used as
// a map key; two identities are == iff the IDs and the token bytes and
// lengths are equal.
type Identity struct {
	MessageID uint16
	tokenLen  uint8
	token     [MaxTokenSize]byte
}

// NewIdentity copies token into a new identity.
func NewIdentity(messageID uint16, token []byte) (Identity, error) {
	if len(token) > MaxTokenSize {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidTokenLen, len(token))
	}
	id := Identity{
		MessageID: messageID,
		tokenLen:  uint8(len(token)),
	}
	copy(id.token[:], token)
	return id, nil
}

// Token returns a copy of the token bytes.
func (id Identity) Token() Token {
	return append(Token(nil), id.token[:id.tokenLen]...)
}

func (id Identity) TokenLength() int {
	return int(id.tokenLen)
}

// TokenMatches compares only the token part, the message ID is ignored.
func (id Identity) TokenMatches(token []byte) bool {
	return Token(id.token[:id.tokenLen]).Equal(token)
}

func (id Identity) String() string {
	return fmt.Sprintf("id %v, token %v (%vB)", id.MessageID, hex.EncodeToString(id.token[:id.tokenLen]), id.tokenLen)
}
