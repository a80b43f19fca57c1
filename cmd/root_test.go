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

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jinr.ru/greenlab/go-xhci/pkg/config"
	"jinr.ru/greenlab/go-xhci/pkg/history"
	"jinr.ru/greenlab/go-xhci/pkg/layers"
	"jinr.ru/greenlab/go-xhci/pkg/render"
	"jinr.ru/greenlab/go-xhci/pkg/srv"
)

const slotHex = "28 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 " +
	"00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00"

// newConfig writes a config file keeping history in a temporary directory
func newConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	content := "history:\n  dbPath: " + filepath.Join(dir, "history.db") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand(out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeDocument(t *testing.T, out string) *render.Document {
	t.Helper()
	doc := &render.Document{}
	if err := json.Unmarshal([]byte(out), doc); err != nil {
		t.Fatalf("output is not a JSON document: %v\n%s", err, out)
	}
	return doc
}

func contextEntries(doc *render.Document) string {
	if len(doc.Members) == 0 {
		return ""
	}
	return doc.Members[0].Structure.Text(layers.FieldContextEntries)
}

func TestDecodeCommand(t *testing.T) {
	cfgPath := newConfig(t)
	args := append([]string{"decode", "--config", cfgPath, "-s", "slotctx", "-o", "json"}, strings.Fields(slotHex)...)
	out, err := execute(t, "", args...)
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	doc := decodeDocument(t, out)
	if doc.Structure != "slotctx" || contextEntries(doc) != "5. Total Size 192 bytes." {
		t.Errorf("document = %+v", doc)
	}
}

func TestDecodeCommandStdin(t *testing.T) {
	cfgPath := newConfig(t)
	out, err := execute(t, "28 0 0 0 0 0 0 0\n", "decode", "--config", cfgPath, "-s", "slotctx", "-w", "-o", "json")
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if got := contextEntries(decodeDocument(t, out)); got != "5. Total Size 192 bytes." {
		t.Errorf("Context Entries = %q", got)
	}
}

func TestDecodeCommandText(t *testing.T) {
	cfgPath := newConfig(t)
	out, err := execute(t, slotHex, "decode", "--config", cfgPath, "-s", "slotctx", "--grid")
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	for _, want := range []string{layers.SlotContextName, "Context Entries", "5. Total Size 192 bytes.", "03-00H"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q", want)
		}
	}
}

func TestDecodeCommandErrors(t *testing.T) {
	cfgPath := newConfig(t)
	tests := []struct {
		name string
		args []string
	}{
		{"unknown structure", []string{"-s", "trb", "00"}},
		{"no structure", []string{"00"}},
		{"short data", []string{"-s", "slotctx", "00", "00"}},
		{"bad token", []string{"-s", "slotctx", "0g"}},
		{"bad format", []string{"-s", "slotctx", "-o", "xml", slotHex}},
		{"endpoint index", []string{"-s", "endpctx", "--index", "31", slotHex}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"decode", "--config", cfgPath}, tt.args...)
			if _, err := execute(t, "", args...); err == nil {
				t.Errorf("decode %v succeeded", tt.args)
			}
		})
	}
}

func TestHistoryCommands(t *testing.T) {
	cfgPath := newConfig(t)
	if _, err := execute(t, slotHex, "decode", "--config", cfgPath, "-s", "slotctx", "--save", "five"); err != nil {
		t.Fatalf("decode --save error = %v", err)
	}

	out, err := execute(t, "", "history", "list", "--config", cfgPath)
	if err != nil {
		t.Fatalf("history list error = %v", err)
	}
	if !strings.Contains(out, "five") || !strings.Contains(out, "slotctx") {
		t.Errorf("history list output:\n%s", out)
	}

	out, err = execute(t, "", "history", "show", "five", "--config", cfgPath, "-o", "json")
	if err != nil {
		t.Fatalf("history show error = %v", err)
	}
	if got := contextEntries(decodeDocument(t, out)); got != "5. Total Size 192 bytes." {
		t.Errorf("Context Entries = %q", got)
	}

	if _, err := execute(t, "", "history", "delete", "five", "--config", cfgPath); err != nil {
		t.Fatalf("history delete error = %v", err)
	}
	if _, err := execute(t, "", "history", "show", "five", "--config", cfgPath); err == nil {
		t.Error("history show after delete succeeded")
	}
}

func TestHistoryKeepsEndpointIndex(t *testing.T) {
	cfgPath := newConfig(t)
	if _, err := execute(t, slotHex, "decode", "--config", cfgPath, "-s", "endpctx", "--index", "3", "--save", "ep3"); err != nil {
		t.Fatalf("decode --save error = %v", err)
	}
	out, err := execute(t, "", "history", "show", "ep3", "--config", cfgPath, "-o", "json")
	if err != nil {
		t.Fatalf("history show error = %v", err)
	}
	doc := decodeDocument(t, out)
	if len(doc.Members) != 1 || doc.Members[0].Name != "Endpoint Context 2 - OUT" {
		t.Errorf("members = %+v", doc.Members)
	}
}

func TestStructsCommand(t *testing.T) {
	out, err := execute(t, "", "structs", "--config", newConfig(t))
	if err != nil {
		t.Fatalf("structs error = %v", err)
	}
	for _, want := range []string{"slotctx", "endpctx", "icctx", "devctx", "ipctx"} {
		if !strings.Contains(out, want) {
			t.Errorf("structs output misses %s", want)
		}
	}
}

func TestConfigCommands(t *testing.T) {
	cfgPath := newConfig(t)
	if _, err := execute(t, "", "config", "init", "--config", cfgPath); err == nil {
		t.Error("config init over an existing file succeeded")
	}
	if _, err := execute(t, "", "config", "init", "--overwrite", "--config", cfgPath); err != nil {
		t.Fatalf("config init --overwrite error = %v", err)
	}
	out, err := execute(t, "", "config", "show", "--config", cfgPath)
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"dbPath", "history.db", "port: 8000"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show output misses %q:\n%s", want, out)
		}
	}

	newPath := filepath.Join(t.TempDir(), "sub", "config")
	if _, err := execute(t, "", "config", "init", "--config", newPath); err != nil {
		t.Fatalf("config init on a new path error = %v", err)
	}
	if _, err := os.Stat(newPath); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestLogLevelOption(t *testing.T) {
	if _, err := execute(t, "", "structs", "--config", newConfig(t), "--log-level", "verbose"); err == nil {
		t.Error("unknown log level accepted")
	}
}

func TestRemoteCommands(t *testing.T) {
	dir := t.TempDir()
	state, err := history.NewState(filepath.Join(dir, "server.db"))
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()
	s, err := srv.NewApiServer(context.Background(), config.NewDefaultConfig(), state)
	if err != nil {
		t.Fatalf("NewApiServer() error = %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()
	addr := ts.Listener.Addr().(*net.TCPAddr)

	cfgPath := newConfig(t)
	remote := []string{"remote", "--config", cfgPath, "--address", addr.IP.String(), "--port", fmt.Sprint(addr.Port)}

	out, err := execute(t, "", append(remote, "structs")...)
	if err != nil {
		t.Fatalf("remote structs error = %v", err)
	}
	if !strings.Contains(out, "ipctx") {
		t.Errorf("remote structs output:\n%s", out)
	}

	out, err = execute(t, "28 0 0 0 0 0 0 0", append(remote, "decode", "-s", "slotctx", "-w", "-o", "json", "--save", "five")...)
	if err != nil {
		t.Fatalf("remote decode error = %v", err)
	}
	if got := contextEntries(decodeDocument(t, out)); got != "5. Total Size 192 bytes." {
		t.Errorf("Context Entries = %q", got)
	}
	if _, err := state.Get("five"); err != nil {
		t.Errorf("snapshot not saved on the server: %v", err)
	}

	if _, err := execute(t, "", append(remote, "decode", "-s", "devctx", "00")...); err == nil {
		t.Error("remote decode of short data succeeded")
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := execute(t, "", "completion", shell, "--config", newConfig(t))
		if err != nil || !strings.Contains(out, "go-xhci") {
			t.Errorf("completion %s: error = %v, output length %d", shell, err, len(out))
		}
	}
	if _, err := execute(t, "", "completion", "tcsh", "--config", newConfig(t)); err == nil {
		t.Error("completion for an unsupported shell succeeded")
	}
}
