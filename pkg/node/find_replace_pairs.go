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
)

// PairsType is the host type name carried between the two nodes.
const PairsType = "FR_PAIRS"

// FindReplacePairsDescriptor registers the collector node.
var FindReplacePairsDescriptor = Descriptor{
	Name:        "FindReplacePairs",
	DisplayName: "Find/Replace Pairs",
	Category:    Category,
	Description: "Creates a collection of find/replace pairs that can be used with the TextReplacer node.",
	ReturnTypes: []string{PairsType, "STRING", "STRING"},
	ReturnNames: []string{"pairs", "json_output", "csv_output"},
	OutputTooltips: []string{
		"Find/Replace pairs object for use with TextReplacer node",
		"JSON representation of the pairs",
		"CSV representation of the pairs (find,replace per line)",
	},
}

// PairsOutput is the collector's (pairs, json_output, csv_output) tuple.
type PairsOutput struct {
	Pairs *pairs.Collection
	JSON  string
	CSV   string
}

// FindReplacePairs is the collector node.
type FindReplacePairs struct{}

// CreatePairs collects the active slots into a collection and its
// serializations.
func (FindReplacePairs) CreatePairs(ctx context.Context, in Inputs) (*PairsOutput, error) {
	c := pairs.Collect(ctx, in.Slots(), in.PairCount(), in[UniqueIDKey])

	js, err := c.JSON()
	if err != nil {
		return nil, errors.Errorf("encoding pairs as JSON: %w", err)
	}

	return &PairsOutput{
		Pairs: c,
		JSON:  js,
		CSV:   c.CSV(),
	}, nil
}

// IsChanged fingerprints the resolved slot values and the active count.
func (FindReplacePairs) IsChanged(in Inputs) string {
	return pairs.Fingerprint(in.Slots(), in.PairCount())
}
