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

package serve

import (
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-xhci/pkg/command"
	"jinr.ru/greenlab/go-xhci/pkg/config"
)

const (
	AddressOptionName = "address"
	PortOptionName    = "port"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	var address string
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed(AddressOptionName) {
				cfg.ApiConfig.Address = address
			}
			if cmd.Flags().Changed(PortOptionName) {
				cfg.ApiConfig.Port = port
			}
			return command.StartApiServer(cfg)
		},
	}
	cmd.Flags().StringVar(&address, AddressOptionName, config.DefaultApiAddress, "Address to listen on")
	cmd.Flags().IntVar(&port, PortOptionName, config.DefaultApiPort, "Port to listen on")
	return cmd
}
