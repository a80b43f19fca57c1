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

package command

import (
	"errors"
	"io"

	"jinr.ru/greenlab/go-xhci/pkg/config"
	"jinr.ru/greenlab/go-xhci/pkg/input"
	"jinr.ru/greenlab/go-xhci/pkg/log"
	"jinr.ru/greenlab/go-xhci/pkg/prompt"
	"jinr.ru/greenlab/go-xhci/pkg/xhci"
)

var ErrNoStruct = errors.New("No data structure given. Use --struct or set decode.defaultStruct in the config file")

// DataSource tells where the data of a decode command comes from
type DataSource struct {
	Args []string
	File string
	In   io.Reader
	Word bool
	// Interactive allows prompting when there is no other source
	Interactive bool
}

// ResolveKind picks the structure from the flag, then the config, then the interactive picker
func ResolveKind(cfg *config.Config, code string, interactive bool) (xhci.Kind, error) {
	if code == "" && cfg.DecodeConfig != nil {
		code = cfg.DecodeConfig.DefaultStruct
	}
	if code != "" {
		return xhci.ParseKind(code)
	}
	if !interactive {
		return 0, ErrNoStruct
	}
	return prompt.PickStructure()
}

// ReadData reads the data from args, a file, the prompt or the input stream, in that order
func ReadData(kind xhci.Kind, src DataSource) ([]byte, error) {
	switch {
	case len(src.Args) > 0:
		return input.ParseTokens(src.Args, src.Word)
	case src.File != "":
		log.Debug("Reading data file: %s", src.File)
		return input.ReadFile(src.File, src.Word)
	case src.Interactive:
		text, err := prompt.ReadData(kind, src.Word)
		if err != nil {
			return nil, err
		}
		return input.Parse(text, src.Word)
	case src.In != nil:
		content, err := io.ReadAll(src.In)
		if err != nil {
			return nil, err
		}
		return input.Parse(string(content), src.Word)
	}
	return nil, input.ErrNoData
}
