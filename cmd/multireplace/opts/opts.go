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

package opts

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/multireplace/pkg/config"
	"github.com/walteh/multireplace/pkg/node"
)

// Viper keys shared by every command
const (
	ConfigKey   = "config"
	DebugKey    = "debug"
	SourceIDKey = "source-id"
)

// RootOpts contains the shared options for all commands
type RootOpts struct {
	// Viper holds flag values with MULTIREPLACE_* environment fallbacks
	Viper *viper.Viper
}

// Workflow loads the configured workflow file, or an empty workflow when
// no file is configured.
func (o *RootOpts) Workflow(ctx context.Context) (*config.Workflow, error) {
	path := o.Viper.GetString(ConfigKey)
	if path == "" {
		return &config.Workflow{}, nil
	}

	wf, err := config.Load(ctx, path)
	if err != nil {
		return nil, errors.Errorf("loading workflow: %w", err)
	}
	return wf, nil
}

// Inputs loads the workflow and renders it as node inputs.
func (o *RootOpts) Inputs(ctx context.Context) (node.Inputs, error) {
	wf, err := o.Workflow(ctx)
	if err != nil {
		return nil, err
	}
	return o.WorkflowInputs(wf), nil
}

// WorkflowInputs renders wf as node inputs. A source id is filled in from
// the flag, or generated, when the workflow has none.
func (o *RootOpts) WorkflowInputs(wf *config.Workflow) node.Inputs {
	in := wf.Inputs()
	if in[node.UniqueIDKey] == "" {
		id := o.Viper.GetString(SourceIDKey)
		if id == "" {
			id = uuid.NewString()
		}
		in[node.UniqueIDKey] = id
	}
	return in
}
