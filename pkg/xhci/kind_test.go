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

package xhci

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		code string
		want Kind
	}{
		{"slotctx", KindSlot},
		{"  EndpCtx ", KindEndpoint},
		{"ICCTX", KindInputControl},
		{"devctx\n", KindDevice},
		{"ipctx", KindInput},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.code)
		if err != nil {
			t.Errorf("ParseKind(%q) error = %v", tt.code, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestParseKindUnsupported(t *testing.T) {
	_, err := ParseKind("trbctx")
	var e ErrUnsupportedStructure
	if !errors.As(err, &e) {
		t.Fatalf("error = %v, want ErrUnsupportedStructure", err)
	}
	if e.Code != "trbctx" || !reflect.DeepEqual(e.Valid, []string{"slotctx", "endpctx", "icctx", "devctx", "ipctx"}) {
		t.Errorf("error = %+v", e)
	}
}

func TestKindSizes(t *testing.T) {
	tests := []struct {
		kind    Kind
		minSize int
		size    int
	}{
		{KindSlot, 32, 32},
		{KindEndpoint, 32, 32},
		{KindInputControl, 32, 32},
		{KindDevice, 1024, 1024},
		{KindInput, 1056, 1056},
	}
	for _, tt := range tests {
		if tt.kind.MinSize() != tt.minSize || tt.kind.Size() != tt.size {
			t.Errorf("%v: min %d size %d", tt.kind, tt.kind.MinSize(), tt.kind.Size())
		}
	}
}

func TestKindJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Kind Kind `json:"kind"`
	}{KindDevice})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"kind":"devctx"}` {
		t.Errorf("json = %s", data)
	}
	var decoded struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal([]byte(`{"kind":"ipctx"}`), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Kind != KindInput {
		t.Errorf("kind = %v", decoded.Kind)
	}
	if _, err := Kind(42).MarshalText(); err == nil {
		t.Error("expected an error for an unknown kind")
	}
}

func TestDescribe(t *testing.T) {
	infos := Describe()
	if len(infos) != len(Kinds) {
		t.Fatalf("%d infos", len(infos))
	}
	if infos[3] != (KindInfo{Code: "devctx", Description: "Device Context", MinSize: 1024, Size: 1024}) {
		t.Errorf("devctx info = %+v", infos[3])
	}
}
