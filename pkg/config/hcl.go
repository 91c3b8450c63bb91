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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

type hclPair struct {
	Find         string `hcl:"find,optional"`
	FindInput    string `hcl:"find_input,optional"`
	Replace      string `hcl:"replace,optional"`
	ReplaceInput string `hcl:"replace_input,optional"`
}

type hclOptions struct {
	UseRegex      *bool `hcl:"use_regex,optional"`
	CaseSensitive *bool `hcl:"case_sensitive,optional"`
	ReplaceAll    *bool `hcl:"replace_all,optional"`
}

type hclWorkflow struct {
	SourceID  string      `hcl:"source_id,optional"`
	PairCount *int        `hcl:"pair_count,optional"`
	Text      string      `hcl:"text,optional"`
	Pairs     []hclPair   `hcl:"pair,block"`
	Options   *hclOptions `hcl:"options,block"`
}

// 📝 Parse parses the workflow from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Workflow, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "workflow.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var hclWf hclWorkflow
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclWf)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	wf := &Workflow{
		SourceID:  hclWf.SourceID,
		PairCount: hclWf.PairCount,
		Text:      hclWf.Text,
	}

	for _, p := range hclWf.Pairs {
		wf.Pairs = append(wf.Pairs, PairSlot{
			Find:         p.Find,
			FindInput:    p.FindInput,
			Replace:      p.Replace,
			ReplaceInput: p.ReplaceInput,
		})
	}

	if hclWf.Options != nil {
		wf.Options = &OptionFlags{
			UseRegex:      hclWf.Options.UseRegex,
			CaseSensitive: hclWf.Options.CaseSensitive,
			ReplaceAll:    hclWf.Options.ReplaceAll,
		}
	}

	return wf, nil
}
