// Package id generates request identifiers.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"strings"
	"time"
)

// Crockford's Base32 alphabet (excludes I, L, O, U).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// ErrInvalidULID is returned when a string is not a 26-character ULID.
var ErrInvalidULID = errors.New("id: invalid ulid")

// NewULID returns a 26-character ULID: 48 bits of milliseconds followed by
// 80 random bits, Crockford base32 encoded. IDs sort by creation time.
func NewULID() string {
	return newULIDAt(time.Now())
}

func newULIDAt(t time.Time) string {
	var raw [16]byte
	ms := uint64(t.UnixMilli())
	binary.BigEndian.PutUint16(raw[0:2], uint16(ms>>32))
	binary.BigEndian.PutUint32(raw[2:6], uint32(ms))
	if _, err := rand.Read(raw[6:]); err != nil {
		binary.BigEndian.PutUint64(raw[6:14], uint64(t.UnixNano()))
	}
	return encode(raw)
}

// encode writes 128 bits as 26 base32 symbols, left-padded with two zero bits.
func encode(raw [16]byte) string {
	hi := binary.BigEndian.Uint64(raw[0:8])
	lo := binary.BigEndian.Uint64(raw[8:16])

	var out [26]byte
	for i := 25; i >= 0; i-- {
		out[i] = crockfordBase32[lo&0x1F]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}

// Time extracts the creation time of a ULID.
func Time(ulid string) (time.Time, error) {
	if len(ulid) != 26 {
		return time.Time{}, ErrInvalidULID
	}
	var ms uint64
	for i := range 10 {
		v := strings.IndexByte(crockfordBase32, ulid[i])
		if v < 0 {
			return time.Time{}, ErrInvalidULID
		}
		ms = ms<<5 | uint64(v)
	}
	if ms>>48 != 0 {
		return time.Time{}, ErrInvalidULID
	}
	return time.UnixMilli(int64(ms)), nil
}
