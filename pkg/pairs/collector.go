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
	"context"

	"github.com/rs/zerolog"

	"github.com/walteh/multireplace/pkg/digest"
)

// 🎯 Slot holds every value source for one pair position
type Slot struct {
	Find            string // find_<i> widget value
	FindOverride    string // find_<i>_input connection value
	Replace         string // replace_<i> widget value
	ReplaceOverride string // replace_<i>_input connection value
}

// Resolve picks each side independently, preferring a non-empty override.
func (s Slot) Resolve() (find, replace string) {
	find = s.Find
	if s.FindOverride != "" {
		find = s.FindOverride
	}
	replace = s.Replace
	if s.ReplaceOverride != "" {
		replace = s.ReplaceOverride
	}
	return find, replace
}

// Slots is the fixed slot array. Slot i lives at Slots[i-1].
type Slots [MaxPairs]Slot

// At returns slot i (1-based). Out of range indices read as an empty slot.
func (s *Slots) At(i int) Slot {
	if s == nil || i < 1 || i > MaxPairs {
		return Slot{}
	}
	return s[i-1]
}

// Set stores slot i (1-based) and reports whether i was in range.
func (s *Slots) Set(i int, slot Slot) bool {
	if i < 1 || i > MaxPairs {
		return false
	}
	s[i-1] = slot
	return true
}

// ClampCount bounds a requested slot count to [0, MaxPairs].
func ClampCount(count int) int {
	switch {
	case count < 0:
		return 0
	case count > MaxPairs:
		return MaxPairs
	default:
		return count
	}
}

// 🏭 Collect resolves the first count slots and keeps those with a non-empty
// find value, in slot order. Dropped slots leave gaps in the Index sequence.
func Collect(ctx context.Context, slots *Slots, count int, sourceID string) *Collection {
	logger := zerolog.Ctx(ctx)
	count = ClampCount(count)

	out := make([]Pair, 0, count)
	for i := 1; i <= count; i++ {
		find, replace := slots.At(i).Resolve()
		if find == "" {
			logger.Trace().Int("index", i).Msg("dropping slot with empty find value")
			continue
		}
		out = append(out, Pair{Find: find, Replace: replace, Index: i})
	}

	logger.Debug().
		Int("requested", count).
		Int("retained", len(out)).
		Str("source_id", sourceID).
		Msg("collected find/replace pairs")

	return &Collection{pairs: out, sourceID: sourceID}
}

// Fingerprint digests the active slot count and every resolved value of the
// active slots, in order. Inactive slots do not contribute.
func Fingerprint(slots *Slots, count int) string {
	count = ClampCount(count)
	b := digest.New().Int(count)
	for i := 1; i <= count; i++ {
		find, replace := slots.At(i).Resolve()
		b.String(find).String(replace)
	}
	return b.Sum()
}
