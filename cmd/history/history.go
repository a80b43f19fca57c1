/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package history

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-xhci/cmd/decode"
	"jinr.ru/greenlab/go-xhci/pkg/command"
	"jinr.ru/greenlab/go-xhci/pkg/config"
	"jinr.ru/greenlab/go-xhci/pkg/render"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Work with saved snapshots",
	}
	cmd.AddCommand(NewListCommand(cfg))
	cmd.AddCommand(NewShowCommand(cfg))
	cmd.AddCommand(NewDeleteCommand(cfg))
	return cmd
}

func NewListCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := command.OpenHistory(cfg)
			if err != nil {
				return err
			}
			defer state.Close()
			snapshots, err := state.List()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), render.SnapshotsTable(snapshots))
			return err
		},
	}
	return cmd
}

func NewShowCommand(cfg *config.Config) *cobra.Command {
	var format string
	var grid, reserved bool
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Decode a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed(decode.FormatOptionName) && cfg.DecodeConfig != nil {
				format = cfg.DecodeConfig.Format
			}
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			state, err := command.OpenHistory(cfg)
			if err != nil {
				return err
			}
			defer state.Close()
			snapshot, err := state.Get(args[0])
			if err != nil {
				return err
			}
			result, err := snapshot.Decode()
			if err != nil {
				return err
			}
			return render.Render(cmd.OutOrStdout(), result, f, render.Options{Grid: grid, Reserved: reserved})
		},
	}
	cmd.Flags().StringVarP(&format, decode.FormatOptionName, "o", "", "Output format: text, json, yaml or cbor")
	cmd.Flags().BoolVar(&grid, decode.GridOptionName, false, "Show the bit grid of every structure")
	cmd.Flags().BoolVar(&reserved, decode.ReservedOptionName, false, "Show reserved fields")
	return cmd
}

func NewDeleteCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := command.OpenHistory(cfg)
			if err != nil {
				return err
			}
			defer state.Close()
			return state.Delete(args[0])
		},
	}
	return cmd
}
