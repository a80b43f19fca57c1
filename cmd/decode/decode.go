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

package decode

import (
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-xhci/pkg/command"
	"jinr.ru/greenlab/go-xhci/pkg/config"
	"jinr.ru/greenlab/go-xhci/pkg/history"
	"jinr.ru/greenlab/go-xhci/pkg/log"
	"jinr.ru/greenlab/go-xhci/pkg/prompt"
	"jinr.ru/greenlab/go-xhci/pkg/render"
	"jinr.ru/greenlab/go-xhci/pkg/xhci"
)

const decodeExample = `
Decode a Slot Context given as 32-bit words
# go-xhci decode -s slotctx -w 08100000 00010000 0 0 0 0 0 0

Decode a Device Context stored as 32-bit words, with bit grids
# go-xhci decode -s devctx -w --grid -f devctx.txt

Decode endpoint context number 3 and save it in history
# go-xhci decode -s endpctx --index 3 --save ep3 -f ep.txt
`

func NewCommand(cfg *config.Config) *cobra.Command {
	o := &Options{}
	cmd := &cobra.Command{
		Use:     "decode [hex data...]",
		Short:   "Decode xHCI context data",
		Example: decodeExample,
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

			snapshot := &history.Snapshot{
				Name:          o.Save,
				Kind:          kind,
				Data:          data,
				Head:          o.Head,
				EndpointIndex: o.EndpointIndex(cmd),
			}
			result, err := xhci.Decode(kind, data, snapshot.Options()...)
			if err != nil {
				return err
			}

			if o.Save != "" {
				if err := save(cfg, snapshot); err != nil {
					return err
				}
			}
			return render.Render(cmd.OutOrStdout(), result, format, o.RenderOptions())
		},
	}
	o.Bind(cmd)
	return cmd
}

func save(cfg *config.Config, snapshot *history.Snapshot) error {
	state, err := command.OpenHistory(cfg)
	if err != nil {
		return err
	}
	defer state.Close()
	if err := state.Save(snapshot); err != nil {
		return err
	}
	log.Info("Saved snapshot %s", snapshot.Name)
	return nil
}
