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

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/multireplace/cmd/multireplace/opts"
	"github.com/walteh/multireplace/pkg/log"
	"github.com/walteh/multireplace/pkg/node"
	"github.com/walteh/multireplace/pkg/pairs"
	"github.com/walteh/multireplace/pkg/text"
)

const (
	textKey       = "text"
	filesKey      = "files"
	regexKey      = "regex"
	ignoreCaseKey = "ignore-case"
	firstOnlyKey  = "first-only"
	writeKey      = "write"
	pairsFileKey  = "pairs"
)

// fileResult is one input file after replacement
type fileResult struct {
	path   string
	result *text.ReplacementResult
}

// NewApplyCmd creates the apply command
func NewApplyCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a workflow's pairs to text or files",
		Long: `Apply collects the workflow's pairs and runs them over the input text.
The text comes from, in order of precedence:
1. --files, a doublestar glob; every match is processed
2. --text, which acts like a connected text input
3. the workflow's text field

With --pairs the pairs come from a collection file instead of the workflow's
slots; the workflow still supplies the text and options.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "apply").Logger().WithContext(cmd.Context())
			ctx = log.NewContext(ctx, log.New(cmd.OutOrStdout(), *zerolog.Ctx(ctx)))

			wf, err := o.Workflow(ctx)
			if err != nil {
				return err
			}
			in := o.WorkflowInputs(wf)
			applyFlagOverrides(o, in)

			var collection *pairs.Collection
			source := wf.Location()
			if path := o.Viper.GetString(pairsFileKey); path != "" {
				if collection, err = loadCollection(path); err != nil {
					return err
				}
				source = path
			} else {
				pout, err := node.FindReplacePairs{}.CreatePairs(ctx, in)
				if err != nil {
					return errors.Errorf("collecting pairs: %w", err)
				}
				collection = pout.Pairs
			}

			rin := node.ReplacerInputsFrom(collection, in)
			engine := text.NewEngine()

			if pattern := o.Viper.GetString(filesKey); pattern != "" {
				return applyFiles(ctx, engine, rin, source, pattern, o.Viper.GetBool(writeKey))
			}

			res, err := engine.Apply(ctx, rin.Pairs, rin.Text(), rin.Options)
			if err != nil {
				return errors.Errorf("applying replacements: %w", err)
			}

			log.FromContext(ctx).Header(header(rin.Pairs.Count(), source, ""))
			report(ctx, "<text>", res)
			fmt.Fprintln(cmd.OutOrStdout(), res.Text)

			return nil
		},
	}

	cmd.Flags().String(textKey, "", "input text, overriding the workflow's text")
	cmd.Flags().String(filesKey, "", "glob of files to rewrite (supports **)")
	cmd.Flags().Bool(regexKey, false, "treat find values as regular expressions")
	cmd.Flags().Bool(ignoreCaseKey, false, "match case-insensitively")
	cmd.Flags().Bool(firstOnlyKey, false, "replace only the first match of each pair")
	cmd.Flags().BoolP(writeKey, "w", false, "write results back to the matched files")
	cmd.Flags().String(pairsFileKey, "", "collection JSON written by pairs --format collection, used instead of the workflow's pairs")
	for _, key := range []string{textKey, filesKey, regexKey, ignoreCaseKey, firstOnlyKey, writeKey, pairsFileKey} {
		_ = o.Viper.BindPFlag(key, cmd.Flags().Lookup(key))
	}

	return cmd
}

// applyFlagOverrides layers explicitly set flags over the workflow inputs.
func applyFlagOverrides(o *opts.RootOpts, in node.Inputs) {
	v := o.Viper
	if v.IsSet(textKey) {
		in[node.InputTextConnectedKey] = v.GetString(textKey)
	}
	if v.IsSet(regexKey) {
		in[node.UseRegexKey] = strconv.FormatBool(v.GetBool(regexKey))
	}
	if v.IsSet(ignoreCaseKey) {
		in[node.CaseSensitiveKey] = strconv.FormatBool(!v.GetBool(ignoreCaseKey))
	}
	if v.IsSet(firstOnlyKey) {
		in[node.ReplaceAllKey] = strconv.FormatBool(!v.GetBool(firstOnlyKey))
	}
}

// loadCollection reads a collection in its full JSON form.
func loadCollection(path string) (*pairs.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading pairs file: %w", err)
	}

	c := &pairs.Collection{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, errors.Errorf("decoding pairs file %s: %w", path, err)
	}
	return c, nil
}

// header is the banner line for a run; source and files are optional.
func header(count int, source, files string) string {
	msg := fmt.Sprintf("applying %d pairs", count)
	if files != "" {
		msg += " to " + files
	}
	if source != "" {
		msg += " from " + source
	}
	return msg
}

func applyFiles(ctx context.Context, engine *text.Engine, rin node.ReplacerInputs, source, pattern string, write bool) error {
	logger := log.FromContext(ctx)

	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return errors.Errorf("expanding glob %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		logger.Warningf("no files match %s", pattern)
		return nil
	}

	results := make([]fileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Errorf("reading %s: %w", path, err)
			}

			res, err := engine.Apply(gctx, rin.Pairs, string(data), rin.Options)
			if err != nil {
				return errors.Errorf("applying replacements to %s: %w", path, err)
			}

			if write && res.WasModified() {
				info, err := os.Stat(path)
				if err != nil {
					return errors.Errorf("stat %s: %w", path, err)
				}
				if err := os.WriteFile(path, []byte(res.Text), info.Mode().Perm()); err != nil {
					return errors.Errorf("writing %s: %w", path, err)
				}
			}

			results[i] = fileResult{path: path, result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Header(header(rin.Pairs.Count(), source, fmt.Sprintf("%d files", len(paths))))

	total := 0
	modified := 0
	for _, fr := range results {
		report(ctx, fr.path, fr.result)
		total += fr.result.ReplacementCount
		if fr.result.WasModified() {
			modified++
		}
	}

	if write {
		logger.Successf("%d replacements across %d files, %d written", total, len(paths), modified)
	} else {
		logger.Successf("%d replacements across %d files, %d would change", total, len(paths), modified)
	}
	return nil
}

// report prints one input's change entries.
func report(ctx context.Context, name string, res *text.ReplacementResult) {
	logger := log.FromContext(ctx)

	logger.StartInput(ctx, log.InputOperation{
		Name:     name,
		SourceID: res.Pairs.SourceID(),
		Pairs:    res.Pairs.Count(),
	})
	defer logger.EndInput(ctx)

	if len(res.Changes) == 0 {
		logger.Info(text.NoChangesMessage)
		return
	}

	failed := 0
	for _, ch := range res.Changes {
		logger.LogChange(ctx, ch)
		if ch.Kind == text.ChangeError {
			failed++
		}
	}
	if failed > 0 {
		logger.Errorf("%d of %d pairs failed", failed, res.Pairs.Count())
	}
	logger.Infof("%d replacements", res.ReplacementCount)
}
