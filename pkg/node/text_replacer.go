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

package node

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/multireplace/pkg/pairs"
	"github.com/walteh/multireplace/pkg/text"
)

// TextReplacerDescriptor registers the engine node.
var TextReplacerDescriptor = Descriptor{
	Name:        "TextReplacer",
	DisplayName: "Text Replacer",
	Category:    Category,
	Description: "Applies find/replace pairs to input text. Supports regex and case-insensitive matching.",
	ReturnTypes: []string{"STRING", PairsType, "STRING", "INT"},
	ReturnNames: []string{"result", "pairs_passthrough", "changes_log", "replacement_count"},
	OutputTooltips: []string{
		"The text after all replacements have been applied",
		"The find/replace pairs (passed through for chaining)",
		"Log of all replacements made",
		"Total number of replacements performed",
	},
}

// ReplacerInputs are the engine node's inputs.
type ReplacerInputs struct {
	Pairs *pairs.Collection

	// InputText is the widget value
	InputText string

	// InputTextConnected overrides InputText when non-nil, even if empty
	InputTextConnected *string

	Options text.Options
}

// ReplacerInputsFrom reads the text and option inputs by name. Missing
// flags take text.DefaultOptions.
func ReplacerInputsFrom(c *pairs.Collection, in Inputs) ReplacerInputs {
	def := text.DefaultOptions()
	out := ReplacerInputs{
		Pairs:     c,
		InputText: in[InputTextKey],
		Options: text.Options{
			UseRegex:      in.Bool(UseRegexKey, def.UseRegex),
			CaseSensitive: in.Bool(CaseSensitiveKey, def.CaseSensitive),
			ReplaceAll:    in.Bool(ReplaceAllKey, def.ReplaceAll),
		},
	}
	if connected, ok := in[InputTextConnectedKey]; ok {
		out.InputTextConnected = &connected
	}
	return out
}

// Text returns the connected text when present, else the widget text.
func (in ReplacerInputs) Text() string {
	if in.InputTextConnected != nil {
		return *in.InputTextConnected
	}
	return in.InputText
}

// ReplacerOutput is the (result, pairs_passthrough, changes_log,
// replacement_count) tuple.
type ReplacerOutput struct {
	Result           string
	PairsPassthrough *pairs.Collection
	ChangesLog       string
	ReplacementCount int
}

// TextReplacer is the engine node.
type TextReplacer struct {
	Replacer text.TextReplacer
}

// NewTextReplacer wraps r, or a default engine when r is nil.
func NewTextReplacer(r text.TextReplacer) *TextReplacer {
	if r == nil {
		r = text.NewEngine()
	}
	return &TextReplacer{Replacer: r}
}

// ApplyReplacements runs the pairs over the resolved text.
func (n *TextReplacer) ApplyReplacements(ctx context.Context, in ReplacerInputs) (*ReplacerOutput, error) {
	res, err := n.Replacer.Apply(ctx, in.Pairs, in.Text(), in.Options)
	if err != nil {
		return nil, errors.Errorf("applying replacements: %w", err)
	}

	return &ReplacerOutput{
		Result:           res.Text,
		PairsPassthrough: res.Pairs,
		ChangesLog:       res.Log(),
		ReplacementCount: res.ReplacementCount,
	}, nil
}

// IsChanged fingerprints the resolved text, the pairs and the options.
func (n *TextReplacer) IsChanged(in ReplacerInputs) string {
	return text.Fingerprint(in.Text(), in.Pairs, in.Options)
}
