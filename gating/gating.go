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

// Package gating decides whether a page view gets the related pages panel.
package gating

import "slices"

// Page describes a single page view.
type Page struct {
	Namespace        int
	IsMainPage       bool
	IsDisambiguation bool
	// Action is the requested page action; only "view" shows the panel.
	Action string
	// IsDiff is set when a revision comparison is shown.
	IsDiff bool
	// OldID is the revision being viewed, or 0 for the current one.
	OldID     int64
	Skin      string
	BetaOptIn bool
}

// Policy holds the site-wide rules for showing the panel.
type Policy struct {
	// Namespaces the panel may appear in. Empty means namespace 0 only.
	Namespaces []int
	// Skins that show the panel to everyone.
	Skins []string
	// BetaRequired hides the panel from readers not opted in to beta features,
	// whatever their skin.
	BetaRequired bool
}

// ShouldShow reports whether page gets the panel.
func (p Policy) ShouldShow(page Page) bool {
	if !p.inNamespace(page.Namespace) {
		return false
	}
	if page.IsMainPage || page.IsDisambiguation {
		return false
	}
	if page.Action != "" && page.Action != "view" {
		return false
	}
	if page.IsDiff || page.OldID != 0 {
		return false
	}
	if p.BetaRequired {
		return page.BetaOptIn
	}
	return page.BetaOptIn || slices.Contains(p.Skins, page.Skin)
}

func (p Policy) inNamespace(ns int) bool {
	if len(p.Namespaces) == 0 {
		return ns == 0
	}
	return slices.Contains(p.Namespaces, ns)
}
