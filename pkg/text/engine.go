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
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/multireplace/pkg/digest"
	"github.com/walteh/multireplace/pkg/pairs"
)

// DefaultMatchTimeout bounds a single pattern's matching work.
const DefaultMatchTimeout = 2 * time.Second

var _ TextReplacer = (*Engine)(nil)

// Engine applies find/replace collections. It is safe for concurrent use.
type Engine struct {
	matchTimeout time.Duration
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithMatchTimeout sets the per-pattern match timeout. Zero or negative
// disables the bound.
func WithMatchTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.matchTimeout = d
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{matchTimeout: DefaultMatchTimeout}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Apply implements TextReplacer.Apply. Pattern failures are recorded in the
// result and never returned; the only error is a cancelled context.
func (e *Engine) Apply(ctx context.Context, c *pairs.Collection, text string, opts Options) (*ReplacementResult, error) {
	logger := zerolog.Ctx(ctx)

	result := &ReplacementResult{
		OriginalText: text,
		Text:         text,
		Pairs:        c,
	}

	for _, pair := range c.Pairs() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("applying pair %d: %w", pair.Index, err)
		}

		// Skip empty rules
		if pair.Find == "" {
			continue
		}

		next, n, err := e.applyPair(result.Text, pair, opts)
		if err != nil {
			logger.Debug().Err(err).Int("index", pair.Index).Str("find", pair.Find).Msg("skipping pair")
			result.Changes = append(result.Changes, Change{Kind: ChangeError, Pair: pair, Err: err})
			continue
		}
		if n == 0 {
			continue
		}

		logger.Trace().Int("index", pair.Index).Str("find", pair.Find).Int("count", n).Msg("applied pair")
		result.Text = next
		result.ReplacementCount += n
		result.Changes = append(result.Changes, Change{Kind: ChangeReplaced, Pair: pair, Count: n})
	}

	logger.Debug().
		Int("pairs", c.Count()).
		Int("replacements", result.ReplacementCount).
		Bool("regex", opts.UseRegex).
		Bool("case_sensitive", opts.CaseSensitive).
		Bool("replace_all", opts.ReplaceAll).
		Msg("applied find/replace pairs")

	return result, nil
}

// applyPair returns the new text and the number of replacements made. On
// error the input text is untouched.
func (e *Engine) applyPair(text string, pair pairs.Pair, opts Options) (string, int, error) {
	if !opts.UseRegex && opts.CaseSensitive {
		n := strings.Count(text, pair.Find)
		if !opts.ReplaceAll {
			return strings.Replace(text, pair.Find, pair.Replace, 1), min(n, 1), nil
		}
		return strings.ReplaceAll(text, pair.Find, pair.Replace), n, nil
	}

	re, tmpl, err := e.compile(pair, opts)
	if err != nil {
		return text, 0, err
	}

	n, err := countMatches(re, text)
	if err != nil {
		return text, 0, err
	}
	if n == 0 {
		return text, 0, nil
	}

	limit := -1
	if !opts.ReplaceAll {
		limit = 1
		n = 1
	}

	out, err := re.ReplaceFunc(text, tmpl.expand, -1, limit)
	if err != nil {
		return text, 0, err
	}
	return out, n, nil
}

// compile builds the matcher and the replacement for pair. In regex mode
// both sides use Python re syntax; otherwise find is escaped and the
// replacement is inserted verbatim.
func (e *Engine) compile(pair pairs.Pair, opts Options) (*regexp2.Regexp, template, error) {
	expr := regexp2.Escape(pair.Find)
	var pat *pattern
	if opts.UseRegex {
		var err error
		if pat, err = translatePattern(pair.Find); err != nil {
			return nil, nil, err
		}
		expr = pat.expr
	}

	flags := regexp2.None
	if !opts.CaseSensitive {
		flags |= regexp2.IgnoreCase
	}

	re, err := regexp2.Compile(expr, flags)
	if err != nil {
		return nil, nil, err
	}
	if e.matchTimeout > 0 {
		re.MatchTimeout = e.matchTimeout
	}

	if pat == nil {
		return re, template{{lit: pair.Replace, group: -1}}, nil
	}
	tmpl, err := parseTemplate(pair.Replace, pat)
	if err != nil {
		return nil, nil, err
	}
	return re, tmpl, nil
}

// countMatches counts non-overlapping matches, the same set Replace visits.
func countMatches(re *regexp2.Regexp, text string) (int, error) {
	n := 0
	m, err := re.FindStringMatch(text)
	for err == nil && m != nil {
		n++
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Fingerprint digests the resolved text, the collection content and the
// options, for callers that memoize Apply.
func Fingerprint(text string, c *pairs.Collection, opts Options) string {
	b := digest.New().
		String(text).
		Bool(opts.UseRegex).
		Bool(opts.CaseSensitive).
		Bool(opts.ReplaceAll).
		Int(c.Count())
	for _, p := range c.Pairs() {
		b.String(p.Find).String(p.Replace).Int(p.Index)
	}
	return b.Sum()
}
