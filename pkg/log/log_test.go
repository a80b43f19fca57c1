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

package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, "warning")
	defer Init(os.Stderr, "info")

	Debug("debug %d", 1)
	Info("info %d", 2)
	Warning("warning %d", 3)
	Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("messages below the level were written: %q", out)
	}
	if !strings.Contains(out, LogPrefix) || !strings.Contains(out, WarningPrefix+"warning 3") || !strings.Contains(out, ErrorPrefix+"error 4") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")
	if err := SetLevel("debug"); err != nil {
		t.Fatal(err)
	}
	if Level() != DebugLevel {
		t.Errorf("Level() = %d", Level())
	}
	if err := SetLevel("verbose"); err == nil {
		t.Error("expected an error for an unknown level")
	}
	if Level() != DebugLevel {
		t.Error("a wrong level changed the current level")
	}
}

func TestInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go-xhci.log")
	if err := InitFile(path, "info"); err != nil {
		t.Fatal(err)
	}
	Info("written to %s", "file")
	if err := Close(); err != nil {
		t.Fatal(err)
	}
	defer Init(os.Stderr, "info")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file contains %q", data)
	}
	if err := InitFile(path, "loud"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
