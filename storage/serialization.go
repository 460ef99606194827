// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/readmore/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return core.ID(id), nil
}

// MarshalCacheEntry serializes a CacheEntry to bytes.
// Layout: key (varint), stored-at unix micros (varint), body (length-prefixed).
func MarshalCacheEntry(entry *core.CacheEntry) []byte {
	key := uint64(entry.Key)
	storedAt := entry.StoredAt.UnixMicro()
	body := string(entry.Body)

	size := varint.Uint64.Size(key) + varint.Int64.Size(storedAt) + ord.String.Size(body)
	buf := make([]byte, size)
	n := varint.Uint64.Marshal(key, buf)
	n += varint.Int64.Marshal(storedAt, buf[n:])
	ord.String.Marshal(body, buf[n:])
	return buf
}

// UnmarshalCacheEntry deserializes a CacheEntry from bytes.
func UnmarshalCacheEntry(data []byte) (*core.CacheEntry, error) {
	key, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: key: %w", ErrSerializationFailed, err)
	}
	storedAt, n1, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: stored at: %w", ErrSerializationFailed, err)
	}
	n += n1
	body, n2, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: body: %w", ErrSerializationFailed, err)
	}
	if n+n2 != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n-n2)
	}
	return &core.CacheEntry{
		Key:      core.ID(key),
		StoredAt: time.UnixMicro(storedAt).UTC(),
		Body:     []byte(body),
	}, nil
}
