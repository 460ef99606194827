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


// Package storage provides the storage abstraction layer for readmore.
//
// The only stored data is the query response cache: encoded API responses
// keyed by the BLAKE2b ID of their canonical request parameters. The
// ResponseCache interface decouples the cache from its backend so that
// BadgerDB, in-memory, or test doubles can be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors of backends return the storage.ResponseCache interface:
//
//	cache, err := badger.NewResponseCache(backend)
//
// Internal constructors may return concrete types since they are only used
// within the implementation package.
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	cache, backend, err := badger.NewMemoryResponseCache()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
// # Expiry
//
// Entries carry a time to live set at Put. Expired entries are reported as
// ErrNotFound and are reclaimed by the backend.
package storage
