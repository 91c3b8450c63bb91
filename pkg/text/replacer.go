// Copyright 2025 walteh LLC
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

package text

import (
	"context"
	"fmt"
	"strings"

	"github.com/walteh/multireplace/pkg/pairs"
)

// NoChangesMessage is the whole change log when no pair replaced anything.
const NoChangesMessage = "No replacements made"

// Options selects how each pair is matched.
type Options struct {
	// UseRegex treats find values as regular expressions
	UseRegex bool

	// CaseSensitive toggles case-sensitive matching
	CaseSensitive bool

	// ReplaceAll replaces every match instead of only the first
	ReplaceAll bool
}

// DefaultOptions returns literal, case-sensitive, replace-all matching.
func DefaultOptions() Options {
	return Options{CaseSensitive: true, ReplaceAll: true}
}

// ChangeKind distinguishes log entries.
type ChangeKind int

const (
	ChangeReplaced ChangeKind = iota
	ChangeError
)

// Change is one change log entry
type Change struct {
	Kind  ChangeKind
	Pair  pairs.Pair
	Count int   // replacements made, for ChangeReplaced
	Err   error // pattern failure, for ChangeError
}

// String renders the entry as a change log line.
func (c Change) String() string {
	if c.Kind == ChangeError {
		return fmt.Sprintf("Regex error for pattern '%s': %v", c.Pair.Find, c.Err)
	}
	return fmt.Sprintf("Replaced '%s' -> '%s' (%dx)", c.Pair.Find, c.Pair.Replace, c.Count)
}

// ReplacementResult contains the results of applying a collection
type ReplacementResult struct {
	// OriginalText is the text before any pair was applied
	OriginalText string

	// Text is the text after every pair was applied
	Text string

	// Pairs is the input collection, passed through unchanged
	Pairs *pairs.Collection

	// Changes lists replaced and failed pairs in application order
	Changes []Change

	// ReplacementCount is the total across all pairs
	ReplacementCount int
}

// WasModified reports whether the text changed.
func (r *ReplacementResult) WasModified() bool {
	return r.Text != r.OriginalText
}

// Log joins the change lines with newlines, or returns NoChangesMessage.
func (r *ReplacementResult) Log() string {
	if len(r.Changes) == 0 {
		return NoChangesMessage
	}
	lines := make([]string, len(r.Changes))
	for i, c := range r.Changes {
		lines[i] = c.String()
	}
	return strings.Join(lines, "\n")
}

// TextReplacer defines the interface for applying find/replace collections
type TextReplacer interface {
	// Apply runs every pair of c over text in order, each pair seeing the
	// output of the one before it
	Apply(ctx context.Context, c *pairs.Collection, text string, opts Options) (*ReplacementResult, error)
}
