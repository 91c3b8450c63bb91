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
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/walteh/multireplace/pkg/text"
)

// 🎨 Display configuration
const (
	entryIndent = 4  // spaces to indent change entries
	findWidth   = 30 // width for the find value
	replWidth   = 20 // width for the replacement value
	countWidth  = 8  // width for the count column
)

// 🎯 InputOperation is one text input being rewritten
type InputOperation struct {
	Name     string // file path or "<text>"
	SourceID string // collection source id
	Pairs    int    // number of pairs applied
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *InputOperation
	changes   []text.Change
}

// 🏭 New creates a new logger. Console lines go to console and structured
// events go to zlog, which is usually zerolog.Ctx of the command.
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatChange formats a change entry for display
func (l *Logger) formatChange(ch text.Change) string {
	symbol := '✓'
	symbolColor := color.FgGreen
	repl := fmt.Sprintf("%q", ch.Pair.Replace)
	status := fmt.Sprintf("%dx", ch.Count)
	if ch.Kind == text.ChangeError {
		symbol = '✗'
		symbolColor = color.FgRed
		repl = ""
		status = "ERROR"
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", entryIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", findWidth, fmt.Sprintf("%q", ch.Pair.Find)),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", replWidth, repl)),
		fmt.Sprintf("%-*s", countWidth, status))
}

// 📝 LogChange logs one change entry of the current input
func (l *Logger) LogChange(ctx context.Context, ch text.Change) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.changes = append(l.changes, ch)

	fmt.Fprintln(l.console, l.formatChange(ch))

	if ch.Kind == text.ChangeError {
		l.zlog.Warn().
			Str("find", ch.Pair.Find).
			Int("index", ch.Pair.Index).
			AnErr("pattern_error", ch.Err).
			Msg("pattern failed")
		return
	}

	l.zlog.Info().
		Str("find", ch.Pair.Find).
		Str("replace", ch.Pair.Replace).
		Int("index", ch.Pair.Index).
		Int("replacements", ch.Count).
		Msg("pair applied")
}

// 📝 StartInput starts a new input operation
func (l *Logger) StartInput(ctx context.Context, op InputOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.changes = nil

	fmt.Fprintf(l.console, "[replacing %s]\n",
		color.New(color.FgCyan).Sprint(op.Name))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.SourceID),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d pairs", op.Pairs))

	l.zlog.Info().
		Str("input", op.Name).
		Str("source_id", op.SourceID).
		Int("pairs", op.Pairs).
		Msg("starting input")
}

// 📝 EndInput ends the current input operation
func (l *Logger) EndInput(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	total := 0
	failed := 0
	for _, ch := range l.changes {
		if ch.Kind == text.ChangeError {
			failed++
			continue
		}
		total += ch.Count
	}

	l.zlog.Info().
		Str("input", l.currentOp.Name).
		Int("replacements", total).
		Int("failed_pairs", failed).
		Msg("input complete")

	l.currentOp = nil
	l.changes = nil
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("multireplace")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
