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
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-xhci/pkg/history"
	"jinr.ru/greenlab/go-xhci/pkg/layers"
	"jinr.ru/greenlab/go-xhci/pkg/xhci"
)

func slotResult(t *testing.T) *xhci.Result {
	data := make([]byte, layers.ContextSize)
	data[0] = 0x28
	result, err := xhci.Decode(xhci.KindSlot, data)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "JSON", " yaml ", "cbor"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", s, err)
		}
	}
	var e ErrUnknownFormat
	if _, err := ParseFormat("png"); !errors.As(err, &e) {
		t.Errorf("ParseFormat(png) error = %v", err)
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, slotResult(t), FormatText, Options{Grid: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Slot Context", "slotctx", "Context Entries", "5. Total Size 192 bytes.", "03-00H", "1F-1CH", "MTT:1"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output misses %q", want)
		}
	}
	if strings.Contains(out, "RsvdZ[128]") {
		t.Error("reserved fields shown without Options.Reserved")
	}

	buf.Reset()
	if err := Render(&buf, slotResult(t), FormatText, Options{Reserved: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "RsvdZ[128]") || strings.Contains(buf.String(), "03-00H") {
		t.Error("reserved option output is wrong")
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, slotResult(t), FormatJSON, Options{}); err != nil {
		t.Fatal(err)
	}
	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Structure != "slotctx" || len(doc.Members) != 1 || doc.Members[0].Name != "Slot Context" {
		t.Errorf("document = %+v", doc)
	}
	if got := doc.Members[0].Structure.Text(layers.FieldContextEntries); got != "5. Total Size 192 bytes." {
		t.Errorf("Context Entries = %q", got)
	}
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, slotResult(t), FormatYAML, Options{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "structure: slotctx") {
		t.Errorf("yaml output %q", buf.String())
	}
	var doc Document
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Members) != 1 || len(doc.Members[0].Structure.Grid) != 8 {
		t.Errorf("document = %+v", doc)
	}
}

func TestCBOR(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, slotResult(t), FormatCBOR, Options{}); err != nil {
		t.Fatal(err)
	}
	var doc Document
	if err := cbor.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Description != "Slot Context" || doc.Members[0].Structure.Grid[0].Word != 0x28 {
		t.Errorf("document = %+v", doc)
	}
}

func TestKindsTable(t *testing.T) {
	out := KindsTable(xhci.Describe())
	for _, code := range xhci.Codes() {
		if !strings.Contains(out, code) {
			t.Errorf("table misses %s", code)
		}
	}
	if !strings.Contains(out, "1056") {
		t.Error("table misses the Input Context size")
	}
}

func TestSnapshotsTable(t *testing.T) {
	out := SnapshotsTable([]*history.Snapshot{
		{Name: "boot-slot", Kind: xhci.KindSlot, Data: make([]byte, 32), Created: time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)},
		{Name: "dev1", Kind: xhci.KindDevice, Data: make([]byte, 1024)},
	})
	for _, want := range []string{"boot-slot", "slotctx", "dev1", "devctx", "1024", "2024-01-02 03:04:05"} {
		if !strings.Contains(out, want) {
			t.Errorf("table misses %q", want)
		}
	}
}
