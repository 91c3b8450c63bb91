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
	"bytes"
	"encoding/json"
	"strings"
)

// JSON renders the pairs as a 2-space indented array. An empty collection
// renders as "[]".
func (c *Collection) JSON() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c.Pairs()); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// CSV renders one "find,replace" line per pair with no header and no
// trailing newline.
func (c *Collection) CSV() string {
	lines := make([]string, 0, c.Count())
	for _, p := range c.Pairs() {
		lines = append(lines, csvField(p.Find)+","+csvField(p.Replace))
	}
	return strings.Join(lines, "\n")
}

// csvField quotes only when the value holds a comma or a double quote.
// encoding/csv also quotes on leading spaces and line breaks, which changes
// the output for values that never needed it.
func csvField(s string) string {
	if !strings.ContainsAny(s, ",\"") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
