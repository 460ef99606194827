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


// Package gateway decides where a page's related pages come from and fetches them.
//
// The Gateway type chooses between two sources:
//   - Editor curated pages, queried by exact title in the curated order
//   - A "more like this" similarity search against the current page title,
//     scoped to the wiki's content namespaces and shaped to be publicly cacheable
//
// When neither source is available the gateway answers with an empty list
// without touching the network. Transport failures and responses without a
// results container also degrade to an empty list: the panel is omitted,
// the page is never broken.
package gateway
