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

package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-xhci/pkg/xhci"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatCBOR}

type ErrUnknownFormat struct {
	Format string
}

func (e ErrUnknownFormat) Error() string {
	return fmt.Sprintf("Unknown output format %q. Must be one of: text, json, yaml, cbor", e.Format)
}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", ErrUnknownFormat{Format: s}
}

type Options struct {
	// Grid adds the bit grid of every member to text output
	Grid bool
	// Reserved keeps reserved regions in the text field tables
	Reserved bool
}

// Document is the serialized form of a decode result
type Document struct {
	Structure   string        `json:"structure"`
	Description string        `json:"description"`
	Members     []xhci.Member `json:"members"`
}

func NewDocument(result *xhci.Result) *Document {
	return &Document{
		Structure:   result.Kind.Code(),
		Description: result.Kind.String(),
		Members:     result.Members,
	}
}

// Render writes the result to w in the given format
func Render(w io.Writer, result *xhci.Result, format Format, opts Options) error {
	switch format {
	case FormatText:
		return Text(w, result, opts)
	case FormatJSON:
		data, err := json.MarshalIndent(NewDocument(result), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(NewDocument(result))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatCBOR:
		data, err := MarshalCBOR(NewDocument(result))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return ErrUnknownFormat{Format: string(format)}
}

// MarshalCBOR encodes v with deterministic core encoding
func MarshalCBOR(v interface{}) ([]byte, error) {
	encMode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(v)
}
