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

import "fmt"

// ValidateGatewayConfig validates a GatewayConfig according to domain rules.
//
// Validation rules:
//   - CurrentPageTitle must not be empty
//   - DescriptionSource must be a known source
//   - ContentNamespaces must not be negative
//   - ThumbnailSize must not be negative
//
// NOT validated:
//   - EditorCuratedPages (empty and nil are both valid)
func ValidateGatewayConfig(cfg *GatewayConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidGatewayConfig)
	}

	if cfg.CurrentPageTitle == "" {
		return fmt.Errorf("%w: %w", ErrInvalidGatewayConfig, ErrEmptyTitle)
	}

	if err := ValidateDescriptionSource(cfg.DescriptionSource); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGatewayConfig, err)
	}

	for _, ns := range cfg.ContentNamespaces {
		if ns < 0 {
			return fmt.Errorf("%w: %w: %d", ErrInvalidGatewayConfig, ErrInvalidNamespace, ns)
		}
	}

	if cfg.ThumbnailSize < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidGatewayConfig, ErrInvalidThumbnailSize)
	}

	return nil
}

// ValidateDescriptionSource checks that the source is one of the known values.
func ValidateDescriptionSource(source DescriptionSource) error {
	switch source {
	case DescriptionNone, DescriptionWikidata, DescriptionTextExtracts, DescriptionPageDescription:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDescriptionSource, string(source))
	}
}

// ValidatePageSummary validates a PageSummary returned by the query API.
// Pages without a title cannot be linked and are rejected.
func ValidatePageSummary(page *PageSummary) error {
	if page == nil {
		return fmt.Errorf("%w: page is nil", ErrInvalidPageSummary)
	}
	if page.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPageSummary, ErrEmptyTitle)
	}
	return nil
}
