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
	"jinr.ru/greenlab/go-xhci/pkg/prompt"
	"jinr.ru/greenlab/go-xhci/pkg/render"
)

const (
	StructOptionName   = "struct"
	FileOptionName     = "file"
	WordOptionName     = "word"
	FormatOptionName   = "format"
	GridOptionName     = "grid"
	ReservedOptionName = "reserved"
	SaveOptionName     = "save"
	HeadOptionName     = "head"
	IndexOptionName    = "index"
)

// Options are the flags shared by the local and the remote decode commands
type Options struct {
	Struct   string
	File     string
	Format   string
	Save     string
	Head     string
	Index    int
	Word     bool
	Grid     bool
	Reserved bool
}

func (o *Options) Bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Struct, StructOptionName, "s", "", "Data structure codename, see the structs command")
	cmd.Flags().StringVarP(&o.File, FileOptionName, "f", "", "Read hex data from a file")
	cmd.Flags().BoolVarP(&o.Word, WordOptionName, "w", false, "Data tokens are little-endian 32-bit words")
	cmd.Flags().StringVarP(&o.Format, FormatOptionName, "o", "", "Output format: text, json, yaml or cbor")
	cmd.Flags().BoolVar(&o.Grid, GridOptionName, false, "Show the bit grid of every structure")
	cmd.Flags().BoolVar(&o.Reserved, ReservedOptionName, false, "Show reserved fields")
	cmd.Flags().StringVar(&o.Save, SaveOptionName, "", "Save the data in history under this name")
	cmd.Flags().StringVar(&o.Head, HeadOptionName, "", "Title of the first structure")
	cmd.Flags().IntVar(&o.Index, IndexOptionName, 0, "Endpoint context number, 0..30")
}

// EndpointIndex is the endpoint context number, nil unless the flag was set
func (o *Options) EndpointIndex(cmd *cobra.Command) *int {
	if !cmd.Flags().Changed(IndexOptionName) {
		return nil
	}
	index := o.Index
	return &index
}

// Apply fills the flags that were not set from the decode section of the config
func (o *Options) Apply(cmd *cobra.Command, cfg *config.Config) {
	d := cfg.DecodeConfig
	if d == nil {
		return
	}
	if !cmd.Flags().Changed(FormatOptionName) {
		o.Format = d.Format
	}
	if !cmd.Flags().Changed(WordOptionName) {
		o.Word = d.Word
	}
	if !cmd.Flags().Changed(GridOptionName) {
		o.Grid = d.Grid
	}
}

func (o *Options) RenderOptions() render.Options {
	return render.Options{Grid: o.Grid, Reserved: o.Reserved}
}

func (o *Options) Source(cmd *cobra.Command, args []string) command.DataSource {
	return command.DataSource{
		Args:        args,
		File:        o.File,
		In:          cmd.InOrStdin(),
		Word:        o.Word,
		Interactive: prompt.Interactive(cmd.InOrStdin(), cmd.OutOrStdout()),
	}
}
