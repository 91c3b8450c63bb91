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

package pairs

import (
	"encoding/json"
)

// MaxPairs is the number of slots a collector exposes.
const MaxPairs = 50

// 🔄 Pair is a single find/replace rule
type Pair struct {
	Find    string `json:"find"`    // Text or pattern to look for
	Replace string `json:"replace"` // Replacement, empty deletes the match
	Index   int    `json:"index"`   // 1-based slot the pair came from
}

// 📦 Collection is an ordered, filtered set of pairs. It is never mutated
// after construction, so it can be handed to any number of consumers.
type Collection struct {
	pairs    []Pair
	sourceID string
}

// NewCollection builds a collection from pairs in the given order. Unlike
// Collect it does not filter, which lets callers hand the engine anything.
func NewCollection(sourceID string, pairs ...Pair) *Collection {
	c := &Collection{
		pairs:    make([]Pair, len(pairs)),
		sourceID: sourceID,
	}
	copy(c.pairs, pairs)
	return c
}

// Pairs returns a copy of the pairs in application order.
func (c *Collection) Pairs() []Pair {
	if c == nil {
		return []Pair{}
	}
	out := make([]Pair, len(c.pairs))
	copy(out, c.pairs)
	return out
}

// Count is the number of pairs held.
func (c *Collection) Count() int {
	if c == nil {
		return 0
	}
	return len(c.pairs)
}

// SourceID is the opaque identifier of the node that produced the collection.
func (c *Collection) SourceID() string {
	if c == nil {
		return ""
	}
	return c.sourceID
}

type collectionJSON struct {
	Pairs    []Pair `json:"pairs"`
	Count    int    `json:"count"`
	SourceID string `json:"source_id"`
}

// MarshalJSON encodes the full collection, metadata included.
func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(collectionJSON{
		Pairs:    c.Pairs(),
		Count:    c.Count(),
		SourceID: c.SourceID(),
	})
}

// UnmarshalJSON decodes the MarshalJSON form. Count is recomputed from the
// decoded pairs rather than trusted.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var raw collectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = *NewCollection(raw.SourceID, raw.Pairs...)
	return nil
}
