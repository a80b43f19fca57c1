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

package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"jinr.ru/greenlab/go-xhci/pkg/xhci"
)

var ErrAborted = errors.New("Aborted")

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	codeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// IsTTY ...
func IsTTY(f *os.File) bool {
	return term.IsTerminal(f.Fd())
}

// Interactive reports whether both streams are terminals
func Interactive(in io.Reader, out io.Writer) bool {
	inFile, ok := in.(*os.File)
	if !ok {
		return false
	}
	outFile, ok := out.(*os.File)
	return ok && IsTTY(inFile) && IsTTY(outFile)
}

// --- structure picker ---

type pickerModel struct {
	infos   []xhci.KindInfo
	cursor  int
	chosen  bool
	aborted bool
}

func newPickerModel(infos []xhci.KindInfo) *pickerModel {
	return &pickerModel{infos: infos}
}

func (m *pickerModel) Init() tea.Cmd { return nil }

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.infos)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = len(m.infos) > 0
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *pickerModel) View() string {
	if m.chosen || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString("Select the data structure:\n\n")
	for i, info := range m.infos {
		line := fmt.Sprintf("%s %s", codeStyle.Render(fmt.Sprintf("%-8s", info.Code)), info.Description)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString(helpStyle.Render("\n↑/↓ or j/k move • enter select • esc cancel\n"))
	return b.String()
}

// selected returns the chosen kind once the picker has quit
func (m *pickerModel) selected() (xhci.Kind, error) {
	if m.aborted || !m.chosen {
		return 0, ErrAborted
	}
	return xhci.ParseKind(m.infos[m.cursor].Code)
}

// PickStructure asks the user to choose one of the supported structures
func PickStructure() (xhci.Kind, error) {
	res, err := tea.NewProgram(newPickerModel(xhci.Describe())).Run()
	if err != nil {
		return 0, err
	}
	return res.(*pickerModel).selected()
}

// --- data prompt ---

type dataModel struct {
	ti      textinput.Model
	done    bool
	aborted bool
}

func newDataModel(kind xhci.Kind, word bool) dataModel {
	unit := "bytes"
	if word {
		unit = "32-bit words"
	}
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("hex %s separated by spaces or commas", unit)
	ti.Prompt = fmt.Sprintf("%s (%d bytes): ", kind.String(), kind.Size())
	ti.CharLimit = 0
	ti.Focus()
	return dataModel{ti: ti}
}

func (m dataModel) Init() tea.Cmd { return textinput.Blink }

func (m dataModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m dataModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return "\n" + m.ti.View() + "\n"
}

func (m dataModel) value() (string, error) {
	if m.aborted {
		return "", ErrAborted
	}
	return strings.TrimSpace(m.ti.Value()), nil
}

// ReadData asks the user for the hex data of a structure
func ReadData(kind xhci.Kind, word bool) (string, error) {
	res, err := tea.NewProgram(newDataModel(kind, word)).Run()
	if err != nil {
		return "", err
	}
	return res.(dataModel).value()
}
