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
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"

	"jinr.ru/greenlab/go-xhci/pkg/history"
	"jinr.ru/greenlab/go-xhci/pkg/layers"
	"jinr.ru/greenlab/go-xhci/pkg/xhci"
)

var (
	borderColor   = lipgloss.AdaptiveColor{Light: "#6C6CFF", Dark: "#6C6CFF"}
	reservedColor = lipgloss.AdaptiveColor{Light: "#808080", Dark: "#6C6C6C"}

	baseCell      = lipgloss.NewStyle().Padding(0, 1)
	headerStyle   = lipgloss.NewStyle().Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(borderColor)
	reservedStyle = baseCell.Foreground(reservedColor)
)

// Text writes one field table per member, followed by its bit grid when asked
func Text(w io.Writer, result *xhci.Result, opts Options) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%s)", result.Kind, result.Kind.Code()))); err != nil {
		return err
	}
	for _, m := range result.Members {
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", titleStyle.Render(m.Name), FieldTable(m.Structure, opts.Reserved)); err != nil {
			return err
		}
		if opts.Grid {
			if _, err := fmt.Fprintln(w, GridTable(m.Structure)); err != nil {
				return err
			}
		}
	}
	return nil
}

func byteRange(r layers.ByteRange) string {
	if r.First == r.Last {
		return fmt.Sprintf("%02XH", r.First)
	}
	return fmt.Sprintf("%02X-%02XH", r.Last, r.First)
}

// FieldTable renders the field records of a structure
func FieldTable(s *layers.Structure, reserved bool) string {
	fields := lo.Filter(s.Fields, func(f layers.Field, _ int) bool {
		return reserved || !f.Reserved
	})
	rows := lo.Map(fields, func(f layers.Field, _ int) []string {
		return []string{f.Name, fmt.Sprintf("%d", f.BitWidth), byteRange(f.ByteRange), fmt.Sprintf("0x%x", f.Raw), f.Text}
	})
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		Headers(headerStyle.Render("Field"), headerStyle.Render("Bits"), headerStyle.Render("Bytes"),
			headerStyle.Render("Raw"), headerStyle.Render("Value")).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := baseCell
			if row >= 0 && row < len(fields) && fields[row].Reserved {
				s = reservedStyle
			}
			if col == 1 || col == 3 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	return t.Render()
}

func cellsString(cells []layers.GridCell) string {
	return strings.Join(lo.Map(cells, func(c layers.GridCell, _ int) string {
		return fmt.Sprintf("%s:%d", c.Label, c.Width)
	}), " | ")
}

// GridTable renders the words of a structure with the fields owning their bits, bit 31 first
func GridTable(s *layers.Structure) string {
	rows := lo.Map(s.Grid, func(r layers.GridRow, _ int) []string {
		return []string{r.Offset, fmt.Sprintf("%08x", r.Word), r.Bits.String(), cellsString(r.Cells)}
	})
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		Headers(headerStyle.Render("Offset"), headerStyle.Render("Word"), headerStyle.Render("31..0"),
			headerStyle.Render("Fields")).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return baseCell
		}).
		Render()
}

// KindsTable renders the supported structures
func KindsTable(infos []xhci.KindInfo) string {
	rows := lo.Map(infos, func(k xhci.KindInfo, i int) []string {
		return []string{fmt.Sprintf("%02d", i+1), k.Code, k.Description, fmt.Sprintf("%d", k.MinSize)}
	})
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		Headers(headerStyle.Render("Number"), headerStyle.Render("Codename"), headerStyle.Render("Type of Data Structure"),
			headerStyle.Render("Min Bytes")).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 3 {
				return baseCell.Align(lipgloss.Right)
			}
			return baseCell
		}).
		Render()
}

// SnapshotsTable renders the snapshots kept in history
func SnapshotsTable(snapshots []*history.Snapshot) string {
	rows := lo.Map(snapshots, func(s *history.Snapshot, _ int) []string {
		return []string{s.Name, s.Kind.Code(), fmt.Sprintf("%d", len(s.Data)), s.Created.Local().Format("2006-01-02 15:04:05")}
	})
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		Headers(headerStyle.Render("Name"), headerStyle.Render("Codename"), headerStyle.Render("Bytes"),
			headerStyle.Render("Created")).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 2 {
				return baseCell.Align(lipgloss.Right)
			}
			return baseCell
		}).
		Render()
}
