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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/multireplace/pkg/pairs"
)

func collection(pp ...[2]string) *pairs.Collection {
	out := make([]pairs.Pair, len(pp))
	for i, p := range pp {
		out[i] = pairs.Pair{Find: p[0], Replace: p[1], Index: i + 1}
	}
	return pairs.NewCollection("test", out...)
}

func TestEngine_Apply(t *testing.T) {
	literal := DefaultOptions()
	literalFirst := Options{CaseSensitive: true}
	literalIgnoreCase := Options{ReplaceAll: true}
	regex := Options{UseRegex: true, CaseSensitive: true, ReplaceAll: true}
	regexIgnoreCase := Options{UseRegex: true, ReplaceAll: true}
	regexFirst := Options{UseRegex: true, CaseSensitive: true}

	tests := []struct {
		name      string
		content   string
		pairs     *pairs.Collection
		opts      Options
		want      string
		wantCount int
		wantLog   string
	}{
		{
			name:      "simple_replacement",
			content:   "Hello World",
			pairs:     collection([2]string{"World", "Universe"}),
			opts:      literal,
			want:      "Hello Universe",
			wantCount: 1,
			wantLog:   "Replaced 'World' -> 'Universe' (1x)",
		},
		{
			name:      "multiple_replacements",
			content:   "Hello World World",
			pairs:     collection([2]string{"World", "Universe"}),
			opts:      literal,
			want:      "Hello Universe Universe",
			wantCount: 2,
			wantLog:   "Replaced 'World' -> 'Universe' (2x)",
		},
		{
			name:      "multiple_rules",
			content:   "Hello World",
			pairs:     collection([2]string{"Hello", "Hi"}, [2]string{"World", "Universe"}),
			opts:      literal,
			want:      "Hi Universe",
			wantCount: 2,
			wantLog:   "Replaced 'Hello' -> 'Hi' (1x)\nReplaced 'World' -> 'Universe' (1x)",
		},
		{
			name:      "sequential_composition",
			content:   "a",
			pairs:     collection([2]string{"a", "b"}, [2]string{"b", "c"}),
			opts:      literal,
			want:      "c",
			wantCount: 2,
			wantLog:   "Replaced 'a' -> 'b' (1x)\nReplaced 'b' -> 'c' (1x)",
		},
		{
			name:      "no_match",
			content:   "Hello World",
			pairs:     collection([2]string{"Goodbye", "Hi"}),
			opts:      literal,
			want:      "Hello World",
			wantCount: 0,
			wantLog:   NoChangesMessage,
		},
		{
			name:      "empty_content",
			content:   "",
			pairs:     collection([2]string{"World", "Universe"}),
			opts:      literal,
			want:      "",
			wantCount: 0,
			wantLog:   NoChangesMessage,
		},
		{
			name:      "empty_collection",
			content:   "Hello World",
			pairs:     pairs.NewCollection(""),
			opts:      literal,
			want:      "Hello World",
			wantCount: 0,
			wantLog:   NoChangesMessage,
		},
		{
			name:      "nil_collection",
			content:   "Hello World",
			pairs:     nil,
			opts:      regex,
			want:      "Hello World",
			wantCount: 0,
			wantLog:   NoChangesMessage,
		},
		{
			name:      "empty_find_skipped",
			content:   "abc",
			pairs:     collection([2]string{"", "x"}, [2]string{"b", "B"}),
			opts:      literal,
			want:      "aBc",
			wantCount: 1,
			wantLog:   "Replaced 'b' -> 'B' (1x)",
		},
		{
			name:      "empty_replace_deletes",
			content:   "a-b-c",
			pairs:     collection([2]string{"-", ""}),
			opts:      literal,
			want:      "abc",
			wantCount: 2,
			wantLog:   "Replaced '-' -> '' (2x)",
		},
		{
			name:      "first_only",
			content:   "aaa",
			pairs:     collection([2]string{"a", "b"}),
			opts:      literalFirst,
			want:      "baa",
			wantCount: 1,
			wantLog:   "Replaced 'a' -> 'b' (1x)",
		},
		{
			name:      "case_sensitive_literal_misses_other_case",
			content:   "foo FOO",
			pairs:     collection([2]string{"Foo", "X"}),
			opts:      literal,
			want:      "foo FOO",
			wantCount: 0,
			wantLog:   NoChangesMessage,
		},
		{
			name:      "case_insensitive_literal",
			content:   "foo FOO",
			pairs:     collection([2]string{"Foo", "X"}),
			opts:      literalIgnoreCase,
			want:      "X X",
			wantCount: 2,
			wantLog:   "Replaced 'Foo' -> 'X' (2x)",
		},
		{
			name:      "case_insensitive_literal_escapes_metacharacters",
			content:   "a.b aXb A.B",
			pairs:     collection([2]string{"a.b", "_"}),
			opts:      literalIgnoreCase,
			want:      "_ aXb _",
			wantCount: 2,
			wantLog:   "Replaced 'a.b' -> '_' (2x)",
		},
		{
			name:      "case_insensitive_literal_replacement_is_verbatim",
			content:   "Cost",
			pairs:     collection([2]string{"cost", "$1 and $$"}),
			opts:      literalIgnoreCase,
			want:      "$1 and $$",
			wantCount: 1,
			wantLog:   "Replaced 'cost' -> '$1 and $$' (1x)",
		},
		{
			name:      "case_insensitive_literal_first_only",
			content:   "Foo foo",
			pairs:     collection([2]string{"foo", "x"}),
			opts:      Options{},
			want:      "x foo",
			wantCount: 1,
			wantLog:   "Replaced 'foo' -> 'x' (1x)",
		},
		{
			name:      "regex",
			content:   "cat bat rat",
			pairs:     collection([2]string{"[cb]at", "dog"}),
			opts:      regex,
			want:      "dog dog rat",
			wantCount: 2,
			wantLog:   "Replaced '[cb]at' -> 'dog' (2x)",
		},
		{
			name:      "regex_group_reference",
			content:   "foo",
			pairs:     collection([2]string{"(o+)", `[\1]`}),
			opts:      regex,
			want:      "f[oo]",
			wantCount: 1,
			wantLog:   `Replaced '(o+)' -> '[\1]' (1x)`,
		},
		{
			name:      "regex_case_sensitive_by_default",
			content:   "Abc abc",
			pairs:     collection([2]string{"a", "x"}),
			opts:      regex,
			want:      "Abc xbc",
			wantCount: 1,
			wantLog:   "Replaced 'a' -> 'x' (1x)",
		},
		{
			name:      "regex_ignore_case",
			content:   "Abc abc",
			pairs:     collection([2]string{"a", "x"}),
			opts:      regexIgnoreCase,
			want:      "xbc xbc",
			wantCount: 2,
			wantLog:   "Replaced 'a' -> 'x' (2x)",
		},
		{
			name:      "regex_first_only",
			content:   "1 2 3",
			pairs:     collection([2]string{`\d`, "#"}),
			opts:      regexFirst,
			want:      "# 2 3",
			wantCount: 1,
			wantLog:   `Replaced '\d' -> '#' (1x)`,
		},
		{
			name:      "literal_mode_ignores_regex_syntax",
			content:   "a+b aab",
			pairs:     collection([2]string{"a+b", "sum"}),
			opts:      literal,
			want:      "sum aab",
			wantCount: 1,
			wantLog:   "Replaced 'a+b' -> 'sum' (1x)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine()
			result, err := engine.Apply(context.Background(), tt.pairs, tt.content, tt.opts)

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, result.OriginalText)
			assert.Equal(t, tt.want, result.Text)
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantLog, result.Log())
			assert.Equal(t, tt.content != tt.want, result.WasModified())
			assert.Same(t, tt.pairs, result.Pairs, "pairs should pass through unchanged")
		})
	}
}

func TestEngine_RegexErrorContained(t *testing.T) {
	engine := NewEngine()
	c := collection([2]string{"[invalid", "x"}, [2]string{"foo", "bar"})

	result, err := engine.Apply(context.Background(), c, "foo", Options{UseRegex: true, CaseSensitive: true, ReplaceAll: true})
	require.NoError(t, err)

	assert.Equal(t, "bar", result.Text)
	assert.Equal(t, 1, result.ReplacementCount)
	require.Len(t, result.Changes, 2)

	assert.Equal(t, ChangeError, result.Changes[0].Kind)
	require.Error(t, result.Changes[0].Err)
	assert.Contains(t, result.Changes[0].String(), "Regex error for pattern '[invalid': ")
	assert.Contains(t, result.Changes[0].String(), result.Changes[0].Err.Error())

	assert.Equal(t, ChangeReplaced, result.Changes[1].Kind)
	assert.Equal(t, "Replaced 'foo' -> 'bar' (1x)", result.Changes[1].String())
}

func TestEngine_MatchTimeoutContained(t *testing.T) {
	engine := NewEngine(WithMatchTimeout(10 * time.Millisecond))
	c := collection([2]string{`(a+)+$`, "x"}, [2]string{"!", "?"})

	input := strings.Repeat("a", 40) + "!"
	result, err := engine.Apply(context.Background(), c, input, Options{UseRegex: true, CaseSensitive: true, ReplaceAll: true})
	require.NoError(t, err)

	require.Len(t, result.Changes, 2)
	assert.Equal(t, ChangeError, result.Changes[0].Kind, "runaway pattern should be reported, not applied")
	assert.Equal(t, ChangeReplaced, result.Changes[1].Kind)
	assert.Equal(t, strings.Repeat("a", 40)+"?", result.Text)
	assert.Equal(t, 1, result.ReplacementCount)
}

func TestEngine_ErrorOnlyLogHasNoSentinel(t *testing.T) {
	engine := NewEngine()
	c := collection([2]string{"(", "x"})

	result, err := engine.Apply(context.Background(), c, "()", Options{UseRegex: true})
	require.NoError(t, err)

	assert.Equal(t, "()", result.Text)
	assert.Equal(t, 0, result.ReplacementCount)
	assert.NotContains(t, result.Log(), NoChangesMessage)
	assert.Contains(t, result.Log(), "Regex error for pattern '(': ")
}

func TestEngine_Idempotent(t *testing.T) {
	engine := NewEngine()
	inputs := []struct {
		find, replace, content string
	}{
		{"foo", "bar", "foo foo bar"},
		{"ab", "x", "abababa"},
		{"needle", "", "hay needle hay"},
		{"zzz", "y", "nothing here"},
	}

	for _, in := range inputs {
		c := collection([2]string{in.find, in.replace})

		once, err := engine.Apply(context.Background(), c, in.content, DefaultOptions())
		require.NoError(t, err)
		twice, err := engine.Apply(context.Background(), c, once.Text, DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, once.Text, twice.Text, "applying %q twice should match once", in.find)
	}
}

func TestEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().Apply(ctx, collection([2]string{"a", "b"}), "a", DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_ConcurrentUse(t *testing.T) {
	engine := NewEngine(WithMatchTimeout(time.Second))
	c := collection([2]string{`\s+`, " "}, [2]string{"x", "y"})
	opts := Options{UseRegex: true, CaseSensitive: true, ReplaceAll: true}

	done := make(chan *ReplacementResult, 8)
	for i := 0; i < cap(done); i++ {
		go func() {
			r, err := engine.Apply(context.Background(), c, "x   x\t\tx", opts)
			assert.NoError(t, err)
			done <- r
		}()
	}
	for i := 0; i < cap(done); i++ {
		r := <-done
		require.NotNil(t, r)
		assert.Equal(t, "y y y", r.Text)
		assert.Equal(t, 5, r.ReplacementCount)
	}
}

func TestFingerprint(t *testing.T) {
	c := collection([2]string{"a", "b"})
	base := Fingerprint("text", c, DefaultOptions())

	assert.Equal(t, base, Fingerprint("text", collection([2]string{"a", "b"}), DefaultOptions()), "should be deterministic")
	assert.NotEqual(t, base, Fingerprint("other", c, DefaultOptions()), "text should matter")
	assert.NotEqual(t, base, Fingerprint("text", collection([2]string{"a", "c"}), DefaultOptions()), "pairs should matter")
	assert.NotEqual(t, base, Fingerprint("text", c, Options{CaseSensitive: true}), "replace_all should matter")
	assert.NotEqual(t, base, Fingerprint("text", c, Options{ReplaceAll: true}), "case_sensitive should matter")
	assert.NotEqual(t, base, Fingerprint("text", c, Options{UseRegex: true, CaseSensitive: true, ReplaceAll: true}), "use_regex should matter")
}
