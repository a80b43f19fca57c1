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

package structs

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-xhci/pkg/render"
	"jinr.ru/greenlab/go-xhci/pkg/xhci"
)

// NewCommand creates a command listing the supported data structures
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "structs",
		Short: "List supported data structures",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), render.KindsTable(xhci.Describe()))
			return err
		},
	}
	return cmd
}
