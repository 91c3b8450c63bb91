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

package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/walteh/multireplace/cmd/multireplace/commands"
	"github.com/walteh/multireplace/cmd/multireplace/opts"
)

// envPrefix prefixes every environment fallback, e.g. MULTIREPLACE_CONFIG
const envPrefix = "MULTIREPLACE"

// newViper creates a viper instance reading MULTIREPLACE_* variables
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// newRootCmd builds the command tree around one set of shared options
func newRootCmd(v *viper.Viper) *cobra.Command {
	o := &opts.RootOpts{Viper: v}

	rootCmd := &cobra.Command{
		Use:   "multireplace",
		Short: "Run multi find/replace workflows outside a node graph",
		Long: `multireplace collects find/replace pairs from a workflow file and applies
them to text, the same way the FindReplacePairs and TextReplacer nodes do.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(v.GetBool(opts.DebugKey))
			cmd.SetContext(zerolog.DefaultContextLogger.WithContext(cmd.Context()))
		},
	}

	addRootFlags(rootCmd, v)

	rootCmd.AddCommand(
		commands.NewPairsCmd(o),
		commands.NewApplyCmd(o),
		commands.NewServeCmd(o),
		commands.NewVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.PersistentFlags().StringP(opts.ConfigKey, "c", "", "workflow file path (.yaml, .yml, .hcl, .json)")
	cmd.PersistentFlags().BoolP(opts.DebugKey, "d", false, "enable debug logging")
	cmd.PersistentFlags().String(opts.SourceIDKey, "", "source id for the collected pairs (default: random uuid)")
	for _, key := range []string{opts.ConfigKey, opts.DebugKey, opts.SourceIDKey} {
		_ = v.BindPFlag(key, cmd.PersistentFlags().Lookup(key))
	}
}

// setupLogging configures zerolog based on flags
func setupLogging(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
