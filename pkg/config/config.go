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

package config

import (
	"context"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/multireplace/pkg/node"
	"github.com/walteh/multireplace/pkg/pairs"
)

// 🔌 Parser is the interface for workflow parsers
type Parser interface {
	// 📝 Parse parses the workflow from bytes
	Parse(ctx context.Context, data []byte) (*Workflow, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 PairSlot is one slot's widget and override values
type PairSlot struct {
	Find         string `json:"find,omitempty" yaml:"find,omitempty"`
	FindInput    string `json:"find_input,omitempty" yaml:"find_input,omitempty"`
	Replace      string `json:"replace,omitempty" yaml:"replace,omitempty"`
	ReplaceInput string `json:"replace_input,omitempty" yaml:"replace_input,omitempty"`
}

// 🔧 OptionFlags are the engine toggles. Unset flags keep engine defaults.
type OptionFlags struct {
	UseRegex      *bool `json:"use_regex,omitempty" yaml:"use_regex,omitempty"`
	CaseSensitive *bool `json:"case_sensitive,omitempty" yaml:"case_sensitive,omitempty"`
	ReplaceAll    *bool `json:"replace_all,omitempty" yaml:"replace_all,omitempty"`
}

// 📚 Workflow is one collector + replacer run
type Workflow struct {
	SourceID  string       `json:"source_id,omitempty" yaml:"source_id,omitempty"`
	PairCount *int         `json:"pair_count,omitempty" yaml:"pair_count,omitempty"`
	Text      string       `json:"text,omitempty" yaml:"text,omitempty"`
	Pairs     []PairSlot   `json:"pairs,omitempty" yaml:"pairs,omitempty"`
	Options   *OptionFlags `json:"options,omitempty" yaml:"options,omitempty"`

	location string
}

// 🎯 Load loads a workflow from a file
func Load(ctx context.Context, path string) (*Workflow, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading workflow")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading workflow file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	wf, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing workflow: %w", err)
	}

	if err := wf.Validate(); err != nil {
		return nil, errors.Errorf("validating workflow: %w", err)
	}

	wf.location = path
	logger.Debug().Str("path", path).Int("slots", len(wf.Pairs)).Msg("loaded workflow")
	return wf, nil
}

// 🔍 Validate checks slot and count bounds
func (wf *Workflow) Validate() error {
	if len(wf.Pairs) > pairs.MaxPairs {
		return errors.Errorf("pairs: %d slots given, at most %d supported", len(wf.Pairs), pairs.MaxPairs)
	}
	if wf.PairCount != nil && (*wf.PairCount < 0 || *wf.PairCount > pairs.MaxPairs) {
		return errors.Errorf("pair_count: %d out of range 0..%d", *wf.PairCount, pairs.MaxPairs)
	}
	return nil
}

// Location is the file the workflow was loaded from, if any.
func (wf *Workflow) Location() string {
	return wf.location
}

// Inputs renders the workflow as the named inputs a host would pass to
// both nodes. Without an explicit pair_count every listed slot is active.
func (wf *Workflow) Inputs() node.Inputs {
	in := node.Inputs{}
	if wf.SourceID != "" {
		in[node.UniqueIDKey] = wf.SourceID
	}

	switch {
	case wf.PairCount != nil:
		in[node.PairCountKey] = strconv.Itoa(*wf.PairCount)
	case len(wf.Pairs) > 0:
		in[node.PairCountKey] = strconv.Itoa(len(wf.Pairs))
	}

	for i, p := range wf.Pairs {
		setIfNotEmpty(in, node.FindKey(i+1), p.Find)
		setIfNotEmpty(in, node.FindInputKey(i+1), p.FindInput)
		setIfNotEmpty(in, node.ReplaceKey(i+1), p.Replace)
		setIfNotEmpty(in, node.ReplaceInputKey(i+1), p.ReplaceInput)
	}

	in[node.InputTextKey] = wf.Text

	if wf.Options != nil {
		setBool(in, node.UseRegexKey, wf.Options.UseRegex)
		setBool(in, node.CaseSensitiveKey, wf.Options.CaseSensitive)
		setBool(in, node.ReplaceAllKey, wf.Options.ReplaceAll)
	}

	return in
}

func setIfNotEmpty(in node.Inputs, key, value string) {
	if value != "" {
		in[key] = value
	}
}

func setBool(in node.Inputs, key string, v *bool) {
	if v != nil {
		in[key] = strconv.FormatBool(*v)
	}
}
