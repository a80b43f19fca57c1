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

package remote

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-xhci/cmd/decode"
	"jinr.ru/greenlab/go-xhci/cmd/serve"
	"jinr.ru/greenlab/go-xhci/pkg/command"
	"jinr.ru/greenlab/go-xhci/pkg/config"
	"jinr.ru/greenlab/go-xhci/pkg/input"
	"jinr.ru/greenlab/go-xhci/pkg/prompt"
	"jinr.ru/greenlab/go-xhci/pkg/render"
	"jinr.ru/greenlab/go-xhci/pkg/srv"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	var address string
	var port int
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Send requests to the API server",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// cobra runs only the closest persistent pre run
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			if cmd.Flags().Changed(serve.AddressOptionName) {
				cfg.ApiConfig.Address = address
			}
			if cmd.Flags().Changed(serve.PortOptionName) {
				cfg.ApiConfig.Port = port
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&address, serve.AddressOptionName, config.DefaultApiAddress, "API server address")
	cmd.PersistentFlags().IntVar(&port, serve.PortOptionName, config.DefaultApiPort, "API server port")
	cmd.AddCommand(NewDecodeCommand(cfg))
	cmd.AddCommand(NewStructsCommand(cfg))
	return cmd
}

func NewDecodeCommand(cfg *config.Config) *cobra.Command {
	o := &decode.Options{}
	cmd := &cobra.Command{
		Use:   "decode [hex data...]",
		Short: "Decode xHCI context data on the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Apply(cmd, cfg)
			format, err := render.ParseFormat(o.Format)
			if err != nil {
				return err
			}
			kind, err := command.ResolveKind(cfg, o.Struct, prompt.Interactive(cmd.InOrStdin(), cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			data, err := command.ReadData(kind, o.Source(cmd, args))
			if err != nil {
				return err
			}
			result, err := command.NewApiClient(cfg).Decode(kind.Code(), &srv.DecodeRequest{
				Data:          input.Format(data),
				Save:          o.Save,
				Head:          o.Head,
				EndpointIndex: o.EndpointIndex(cmd),
			})
			if err != nil {
				return err
			}
			return render.Render(cmd.OutOrStdout(), result, format, o.RenderOptions())
		},
	}
	o.Bind(cmd)
	return cmd
}

func NewStructsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "structs",
		Short: "List data structures supported by the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := command.NewApiClient(cfg).Structs()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), render.KindsTable(infos))
			return err
		},
	}
	return cmd
}
