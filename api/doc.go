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


// Package api is the client side of the wiki's read-only query API.
//
// A QueryClient accepts a flat parameter mapping and returns a decoded
// Response whose page list may be absent. Two implementations are provided:
//   - HTTPClient issues GET requests against an api.php endpoint and retries
//     transient failures with exponential backoff
//   - CachedClient wraps another client and keeps responses for requests
//     that declare a maxage, keyed by their canonical parameter encoding
package api
