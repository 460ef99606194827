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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidGatewayConfig indicates a GatewayConfig failed validation.
	ErrInvalidGatewayConfig = errors.New("invalid gateway config")

	// ErrInvalidPageSummary indicates a PageSummary failed validation.
	ErrInvalidPageSummary = errors.New("invalid page summary")

	// ErrInvalidDescriptionSource indicates an unknown DescriptionSource value.
	ErrInvalidDescriptionSource = errors.New("invalid description source")

	// ErrEmptyTitle indicates a required title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvalidNamespace indicates a negative namespace number.
	ErrInvalidNamespace = errors.New("namespace cannot be negative")

	// ErrInvalidThumbnailSize indicates a negative thumbnail size.
	ErrInvalidThumbnailSize = errors.New("thumbnail size cannot be negative")
)
