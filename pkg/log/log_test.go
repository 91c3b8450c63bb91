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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/multireplace/pkg/pairs"
	"github.com/walteh/multireplace/pkg/text"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_change",
			op: func(t *testing.T, logger *Logger) {
				logger.LogChange(context.Background(), text.Change{
					Kind:  text.ChangeReplaced,
					Pair:  pairs.Pair{Find: "Hello", Replace: "Hi", Index: 1},
					Count: 2,
				})
			},
			wantLogs: []string{
				`✓ "Hello"                        "Hi"                 2x`,
			},
		},
		{
			name: "log_input",
			op: func(t *testing.T, logger *Logger) {
				logger.StartInput(context.Background(), InputOperation{
					Name:     "notes/a.txt",
					SourceID: "node-1",
					Pairs:    3,
				})
			},
			wantLogs: []string{
				"[replacing notes/a.txt]",
				"◆ node-1 • 3 pairs",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("applying 2 pairs")
			},
			wantLogs: []string{
				"multireplace • applying 2 pairs",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create buffer for console output
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			// Perform operation
			tt.op(t, logger)

			// Check output
			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerStructuredEvents(t *testing.T) {
	zbuf := &bytes.Buffer{}
	logger := New(io.Discard, zerolog.New(zbuf).Level(zerolog.InfoLevel))

	ctx := context.Background()
	logger.StartInput(ctx, InputOperation{Name: "<text>", SourceID: "node-1", Pairs: 2})
	logger.LogChange(ctx, text.Change{
		Kind:  text.ChangeReplaced,
		Pair:  pairs.Pair{Find: "a", Replace: "b", Index: 1},
		Count: 3,
	})
	logger.LogChange(ctx, text.Change{
		Kind: text.ChangeError,
		Pair: pairs.Pair{Find: "(", Index: 2},
		Err:  errors.New("missing )"),
	})
	logger.EndInput(ctx)

	events := strings.Split(strings.TrimSpace(zbuf.String()), "\n")
	require.Len(t, events, 4, "every console entry should have a structured event")
	assert.Contains(t, events[0], `"message":"starting input"`)
	assert.Contains(t, events[1], `"replacements":3`)
	assert.Contains(t, events[2], `"level":"warn"`)
	assert.Contains(t, events[2], `"pattern_error":"missing )"`)
	assert.Contains(t, events[3], `"failed_pairs":1`)
}

func TestLoggerContext(t *testing.T) {
	// Create logger
	logger := New(io.Discard, zerolog.Nop())

	// Add to context
	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	// Get from context
	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	// Check panic on missing logger
	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestChangeFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		ch   text.Change
		want string
	}{
		{
			name: "replaced",
			ch: text.Change{
				Kind:  text.ChangeReplaced,
				Pair:  pairs.Pair{Find: "Hello", Replace: "Hi"},
				Count: 2,
			},
			want: `    ✓ "Hello"                        "Hi"                 2x      `,
		},
		{
			name: "replaced_with_empty",
			ch: text.Change{
				Kind:  text.ChangeReplaced,
				Pair:  pairs.Pair{Find: "a,b"},
				Count: 1,
			},
			want: `    ✓ "a,b"                          ""                   1x      `,
		},
		{
			name: "pattern_error",
			ch: text.Change{
				Kind: text.ChangeError,
				Pair: pairs.Pair{Find: "("},
				Err:  errors.New("missing )"),
			},
			want: `    ✗ "("                                                 ERROR   `,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(io.Discard, zerolog.Nop())
			got := logger.formatChange(tt.ch)
			assert.Equal(t, tt.want, got, "formatted change should match")
		})
	}
}

func TestInputLifecycle(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.Nop())
	ctx := context.Background()

	// Ending without a start is a no-op
	logger.EndInput(ctx)

	logger.StartInput(ctx, InputOperation{Name: "<text>", SourceID: "s", Pairs: 1})
	logger.LogChange(ctx, text.Change{Kind: text.ChangeReplaced, Pair: pairs.Pair{Find: "a"}, Count: 3})
	logger.LogChange(ctx, text.Change{Kind: text.ChangeError, Pair: pairs.Pair{Find: "("}, Err: errors.New("bad")})
	require.Len(t, logger.changes, 2, "changes should be tracked while an input is open")

	logger.EndInput(ctx)
	assert.Nil(t, logger.currentOp, "current input should be cleared")
	assert.Nil(t, logger.changes, "changes should be cleared")
}
