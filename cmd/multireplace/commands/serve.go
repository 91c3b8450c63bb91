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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/multireplace/cmd/multireplace/opts"
	"github.com/walteh/multireplace/pkg/server"
)

const addrKey = "addr"

// NewServeCmd creates the serve command
func NewServeCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only node info routes",
		Long: `Serve exposes:
- GET /multi_replace/info
- GET /multi_replace/nodes
- GET /multi_replace/nodes/{name}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "serve").Logger().WithContext(cmd.Context())
			return server.New(o.Viper.GetString(addrKey), nil).Run(ctx)
		},
	}

	cmd.Flags().String(addrKey, ":8188", "listen address")
	_ = o.Viper.BindPFlag(addrKey, cmd.Flags().Lookup(addrKey))

	return cmd
}
