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
	"strconv"
	"strings"

	"github.com/walteh/multireplace/pkg/pairs"
)

// Input names shared with the host.
const (
	PairCountKey          = "pair_count"
	UniqueIDKey           = "unique_id"
	InputTextKey          = "input_text"
	InputTextConnectedKey = "input_text_connected"
	UseRegexKey           = "use_regex"
	CaseSensitiveKey      = "case_sensitive"
	ReplaceAllKey         = "replace_all"

	findPrefix     = "find_"
	replacePrefix  = "replace_"
	overrideSuffix = "_input"
)

// Inputs are the raw named values the host passes to a node.
type Inputs map[string]string

// FindKey is the widget name for slot i.
func FindKey(i int) string { return findPrefix + strconv.Itoa(i) }

// ReplaceKey is the widget name for slot i.
func ReplaceKey(i int) string { return replacePrefix + strconv.Itoa(i) }

// FindInputKey is the override connection name for slot i.
func FindInputKey(i int) string { return FindKey(i) + overrideSuffix }

// ReplaceInputKey is the override connection name for slot i.
func ReplaceInputKey(i int) string { return ReplaceKey(i) + overrideSuffix }

// parseSlotKey extracts the slot index from find_<i>, replace_<i> and their
// _input forms.
func parseSlotKey(key string) (int, bool) {
	var rest string
	switch {
	case strings.HasPrefix(key, findPrefix):
		rest = strings.TrimPrefix(key, findPrefix)
	case strings.HasPrefix(key, replacePrefix):
		rest = strings.TrimPrefix(key, replacePrefix)
	default:
		return 0, false
	}
	rest = strings.TrimSuffix(rest, overrideSuffix)
	i, err := strconv.Atoi(rest)
	if err != nil || i < 1 {
		return 0, false
	}
	return i, true
}

// PairCount resolves the active slot count. An explicit pair_count that
// does not parse falls back to 1, and a parsed one is clamped to
// [0, MaxPairs], so zero or less selects no slots. Without pair_count the
// highest in-range slot index present in the inputs is used.
func (in Inputs) PairCount() int {
	if raw, ok := in[PairCountKey]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 1
		}
		return pairs.ClampCount(n)
	}

	highest := 0
	for key := range in {
		if i, ok := parseSlotKey(key); ok && i <= pairs.MaxPairs && i > highest {
			highest = i
		}
	}
	return highest
}

// Slots fills the fixed slot array. Keys outside 1..MaxPairs are ignored.
func (in Inputs) Slots() *pairs.Slots {
	var slots pairs.Slots
	for i := 1; i <= pairs.MaxPairs; i++ {
		slots.Set(i, pairs.Slot{
			Find:            in[FindKey(i)],
			FindOverride:    in[FindInputKey(i)],
			Replace:         in[ReplaceKey(i)],
			ReplaceOverride: in[ReplaceInputKey(i)],
		})
	}
	return &slots
}

// Bool reads a boolean input, returning def when it is absent or malformed.
func (in Inputs) Bool(key string, def bool) bool {
	raw, ok := in[key]
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}
