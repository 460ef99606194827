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

// Package bootstrap defers loading of the related pages panel until the
// reader scrolls near it.
//
// A Bootstrap watches scroll events, coalescing bursts with a trailing-edge
// debounce, and fires once when the panel comes within twice the viewport
// height of the visible area. On firing it detaches from the scroll source,
// loads the rendering modules and fetches related pages concurrently on a
// worker pool, and publishes the pages when both succeed.
//
// A Bootstrap runs at most once.
package bootstrap
