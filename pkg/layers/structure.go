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

package layers

import (
	"fmt"
	"strconv"

	"jinr.ru/greenlab/go-xhci/pkg/bits"
)

type ByteRange struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// Field is a decoded field record
type Field struct {
	Name      string    `json:"name"`
	BitWidth  int       `json:"bitWidth"`
	ByteRange ByteRange `json:"byteRange"`
	Raw       uint64    `json:"raw"`
	Text      string    `json:"text"`
	Reserved  bool      `json:"reserved,omitempty"`
}

type GridCell struct {
	Label string `json:"label"`
	Width int    `json:"width"`
}

// GridRow is one little-endian word of a context annotated with the fields owning its bits
type GridRow struct {
	Offset string      `json:"offset"`
	Word   uint32      `json:"word"`
	Bits   bits.BitRow `json:"bits"`
	Cells  []GridCell  `json:"cells"`
}

// Structure is a decoded context data structure. It is never modified after it is built.
type Structure struct {
	Title  string    `json:"title"`
	Kind   string    `json:"kind"`
	Fields []Field   `json:"fields"`
	Grid   []GridRow `json:"grid,omitempty"`
}

// Field returns the named field record
func (s *Structure) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Text returns the rendered text of the named field or an empty string
func (s *Structure) Text(name string) string {
	f, _ := s.Field(name)
	return f.Text
}

// WithTitle returns a shallow copy of the structure carrying another title
func (s *Structure) WithTitle(title string) *Structure {
	c := *s
	c.Title = title
	return &c
}

// ReservedMarker renders a reserved region of the given width
func ReservedMarker(width int) string {
	if width <= bits.WordBits {
		return RsvdZ(width)
	}
	return fmt.Sprintf("RsvdZ[%d]", width)
}

// buildStructure walks the layout in order. Fields missing from texts render their raw value in decimal.
func buildStructure(title string, layout *Layout, window []byte, texts map[string]string) *Structure {
	s := &Structure{
		Title:  title,
		Kind:   layout.Name,
		Fields: make([]Field, 0, len(layout.Fields)),
	}
	for _, fl := range layout.Fields {
		first, last := bits.ByteSpan(fl.Segments)
		f := Field{
			Name:      fl.Name,
			BitWidth:  fl.Width(),
			ByteRange: ByteRange{First: first, Last: last},
			Reserved:  fl.Reserved,
		}
		if f.BitWidth <= 64 {
			f.Raw = bits.Extract(window, fl.Segments)
		}
		switch {
		case fl.Reserved:
			f.Text = ReservedMarker(f.BitWidth)
		case texts[fl.Name] != "":
			f.Text = texts[fl.Name]
		default:
			f.Text = strconv.FormatUint(f.Raw, 10)
		}
		s.Fields = append(s.Fields, f)
	}
	s.Grid = buildGrid(layout, window)
	return s
}

// OffsetLabel returns the byte offset label of a grid row, e.g. 07-04H
func OffsetLabel(row int) string {
	return fmt.Sprintf("%02X-%02XH", row*bits.WordSize+bits.WordSize-1, row*bits.WordSize)
}

func buildGrid(layout *Layout, window []byte) []GridRow {
	words, err := bits.BytesToWords(window[:layout.Size])
	if err != nil {
		return nil
	}
	grid := make([]GridRow, 0, len(words))
	for r, word := range words {
		row := GridRow{
			Offset: OffsetLabel(r),
			Word:   word,
			Bits:   bits.WordToBitRow(word),
		}
		var current *FieldLayout
		for k := bits.WordBits - 1; k >= 0; k-- {
			owner := layout.Owner(r*bits.WordSize+k/8, k%8)
			if len(row.Cells) > 0 && owner == current {
				row.Cells[len(row.Cells)-1].Width++
				continue
			}
			current = owner
			label := "?"
			if owner != nil {
				label = owner.Label()
			}
			row.Cells = append(row.Cells, GridCell{Label: label, Width: 1})
		}
		grid = append(grid, row)
	}
	return grid
}

// contextWindow copies a context so decoded structures never alias the input buffer
func contextWindow(data []byte) []byte {
	window := make([]byte, ContextSize)
	copy(window, data)
	return window
}
