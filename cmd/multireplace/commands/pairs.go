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
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/multireplace/cmd/multireplace/opts"
	"github.com/walteh/multireplace/pkg/node"
	"github.com/walteh/multireplace/pkg/pairs"
)

const formatKey = "format"

// NewPairsCmd creates the pairs command
func NewPairsCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "Print the find/replace pairs collected from a workflow",
		Long: `Pairs runs the collector over the workflow's slots and prints the result.
Formats:
- json:       the pretty JSON array the node emits
- csv:        the find,replace rows the node emits
- table:      a console table with slot indexes
- collection: the full collection with its source id, readable by apply --pairs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "pairs").Logger().WithContext(cmd.Context())

			in, err := o.Inputs(ctx)
			if err != nil {
				return err
			}

			out, err := node.FindReplacePairs{}.CreatePairs(ctx, in)
			if err != nil {
				return errors.Errorf("collecting pairs: %w", err)
			}

			w := cmd.OutOrStdout()
			switch format := o.Viper.GetString(formatKey); format {
			case "json":
				fmt.Fprintln(w, out.JSON)
			case "csv":
				if out.CSV != "" {
					fmt.Fprintln(w, out.CSV)
				}
			case "collection":
				data, err := json.MarshalIndent(out.Pairs, "", "  ")
				if err != nil {
					return errors.Errorf("encoding collection: %w", err)
				}
				fmt.Fprintln(w, string(data))
			case "table":
				table, err := renderTable(out.Pairs)
				if err != nil {
					return err
				}
				fmt.Fprint(w, table)
			default:
				return errors.Errorf("unknown format %q", format)
			}

			return nil
		},
	}

	cmd.Flags().StringP(formatKey, "f", "json", "output format (json, csv, table, collection)")
	_ = o.Viper.BindPFlag(formatKey, cmd.Flags().Lookup(formatKey))

	return cmd
}

func renderTable(c *pairs.Collection) (string, error) {
	data := pterm.TableData{{"#", "find", "replace"}}
	for _, p := range c.Pairs() {
		data = append(data, []string{fmt.Sprint(p.Index), p.Find, p.Replace})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering table: %w", err)
	}
	return table + "\n", nil
}
