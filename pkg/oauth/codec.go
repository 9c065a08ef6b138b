package oauth

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// TokenCodec converts an access token to and from its session cookie value.
type TokenCodec interface {
	Encode(token string) string
	Decode(value string) (string, error)
}

// Base64Codec stores the token as standard base64 of its UTF-8 bytes.
type Base64Codec struct{}

func (Base64Codec) Encode(token string) string {
	return base64.StdEncoding.EncodeToString([]byte(token))
}

func (Base64Codec) Decode(value string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", errors.Join(ErrDecodeFailed, fmt.Errorf("decode token: %w", err))
	}
	return string(b), nil
}

// PlainCodec stores the token unchanged.
type PlainCodec struct{}

func (PlainCodec) Encode(token string) string {
	return token
}

func (PlainCodec) Decode(value string) (string, error) {
	return value, nil
}
