package badger

import (
	"encoding/binary"

	"github.com/poiesic/readmore/core"
)

// Key prefixes for different data types
const (
	responseCachePrefix = "rescache:"
)

// makeResponseKey generates a key for a cached response by request ID.
// Format: prefix + 8 byte big endian ID
func makeResponseKey(id core.ID) []byte {
	prefixBytes := []byte(responseCachePrefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
