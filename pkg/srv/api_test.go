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

package srv

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"jinr.ru/greenlab/go-xhci/pkg/config"
	"jinr.ru/greenlab/go-xhci/pkg/history"
	"jinr.ru/greenlab/go-xhci/pkg/layers"
	"jinr.ru/greenlab/go-xhci/pkg/xhci"
)

// slotHex is a slot context with Context Entries = 5
const slotHex = "28 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 " +
	"00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	state, err := history.NewState(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	t.Cleanup(func() { state.Close() })

	s, err := NewApiServer(context.Background(), config.NewDefaultConfig(), state)
	if err != nil {
		t.Fatalf("NewApiServer() error = %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s error = %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
}

func TestLoadDocument(t *testing.T) {
	doc, err := LoadDocument()
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	if doc.BasePath() != ApiPrefix {
		t.Errorf("BasePath() = %q, want %q", doc.BasePath(), ApiPrefix)
	}
	var paths []string
	for p := range doc.Spec().Paths.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	want := []string{"/decode/{code}", "/history", "/history/{name}", "/structs"}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestStructs(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/api/structs", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var infos []xhci.KindInfo
	decodeBody(t, resp, &infos)
	if len(infos) != len(xhci.Kinds) {
		t.Fatalf("got %d structures, want %d", len(infos), len(xhci.Kinds))
	}
	if infos[0].Code != "slotctx" || infos[0].Size != layers.ContextSize {
		t.Errorf("first structure = %+v", infos[0])
	}
}

func TestDecode(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodPost, ts.URL+"/api/decode/slotctx", `{"data": "`+slotHex+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	result := &xhci.Result{}
	decodeBody(t, resp, result)
	if result.Kind != xhci.KindSlot || result.Len() != 1 {
		t.Fatalf("result = %+v", result)
	}
	s, ok := result.Member(layers.SlotContextName)
	if !ok {
		t.Fatalf("members = %v", result.Names())
	}
	if got := s.Text(layers.FieldContextEntries); got != "5. Total Size 192 bytes." {
		t.Errorf("Context Entries = %q", got)
	}
}

func TestDecodeWordMode(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodPost, ts.URL+"/api/decode/slotctx", `{"data": "28 0 0 0 0 0 0 0", "word": true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	result := &xhci.Result{}
	decodeBody(t, resp, result)
	s, _ := result.Member(layers.SlotContextName)
	if s == nil || s.Text(layers.FieldContextEntries) != "5. Total Size 192 bytes." {
		t.Errorf("result = %+v", result)
	}
}

func TestDecodeErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{name: "unknown structure", path: "/api/decode/trb", body: `{"data": "00"}`, want: http.StatusNotFound},
		{name: "bad token", path: "/api/decode/slotctx", body: `{"data": "zz"}`, want: http.StatusBadRequest},
		{name: "no data", path: "/api/decode/slotctx", body: `{"data": ""}`, want: http.StatusBadRequest},
		{name: "short data", path: "/api/decode/slotctx", body: `{"data": "00 00 00 00"}`, want: http.StatusBadRequest},
		{name: "bad json", path: "/api/decode/slotctx", body: `{"data": `, want: http.StatusBadRequest},
		{name: "short device context", path: "/api/decode/devctx", body: `{"data": "` + slotHex + `"}`, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+tt.path, tt.body)
			if resp.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			status := &Status{}
			decodeBody(t, resp, status)
			if status.Code != tt.want || status.Error == "" {
				t.Errorf("body = %+v", status)
			}
		})
	}
}

func TestHistory(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodPost, ts.URL+"/api/decode/slotctx", `{"data": "`+slotHex+`", "save": "entries5"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("decode status = %d", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/history", "")
	var snapshots []history.Snapshot
	decodeBody(t, resp, &snapshots)
	if len(snapshots) != 1 || snapshots[0].Name != "entries5" || snapshots[0].Kind != xhci.KindSlot {
		t.Fatalf("snapshots = %+v", snapshots)
	}
	if len(snapshots[0].Data) != layers.ContextSize {
		t.Errorf("snapshot data length = %d", len(snapshots[0].Data))
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/history/entries5", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}
	snapshotResult := &SnapshotResult{}
	decodeBody(t, resp, snapshotResult)
	s, ok := snapshotResult.Result.Member(layers.SlotContextName)
	if !ok || s.Text(layers.FieldContextEntries) != "5. Total Size 192 bytes." {
		t.Errorf("snapshot result = %+v", snapshotResult.Result)
	}

	if resp = do(t, http.MethodDelete, ts.URL+"/api/history/entries5", ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		if resp = do(t, method, ts.URL+"/api/history/entries5", ""); resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s after delete: status = %d", method, resp.StatusCode)
		}
	}
}

func TestDecodeNamingOptions(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodPost, ts.URL+"/api/decode/endpctx",
		`{"data": "`+slotHex+`", "endpointIndex": 3, "save": "ep3"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("decode status = %d", resp.StatusCode)
	}
	result := &xhci.Result{}
	decodeBody(t, resp, result)
	const title = "Endpoint Context 2 - OUT"
	if names := result.Names(); len(names) != 1 || names[0] != title {
		t.Errorf("members = %v, want [%s]", names, title)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/history/ep3", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}
	snapshotResult := &SnapshotResult{}
	decodeBody(t, resp, snapshotResult)
	if idx := snapshotResult.Snapshot.EndpointIndex; idx == nil || *idx != 3 {
		t.Errorf("snapshot endpoint index = %v", idx)
	}
	if names := snapshotResult.Result.Names(); len(names) != 1 || names[0] != title {
		t.Errorf("snapshot members = %v, want [%s]", names, title)
	}

	resp = do(t, http.MethodPost, ts.URL+"/api/decode/slotctx", `{"data": "`+slotHex+`", "head": "Hub Slot"}`)
	result = &xhci.Result{}
	decodeBody(t, resp, result)
	if _, ok := result.Member("Hub Slot"); !ok {
		t.Errorf("members = %v, want [Hub Slot]", result.Names())
	}

	resp = do(t, http.MethodPost, ts.URL+"/api/decode/endpctx", `{"data": "`+slotHex+`", "endpointIndex": 31}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("out of range endpoint index: status = %d", resp.StatusCode)
	}
}

func TestDocs(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/swagger.json", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("swagger.json status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !json.Valid(body) || !strings.Contains(string(body), `"/decode/{code}"`) {
		t.Errorf("swagger.json body = %s", body)
	}

	resp = do(t, http.MethodGet, ts.URL+"/docs", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("docs status = %d", resp.StatusCode)
	}
	body, _ = io.ReadAll(resp.Body)
	if !strings.Contains(strings.ToLower(string(body)), "redoc") {
		t.Errorf("docs page does not load redoc")
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{layers.ErrInsufficientData{Structure: layers.SlotContextName, Required: 32, Actual: 4}, http.StatusBadRequest},
		{layers.ErrEndpointIndex{Index: 31}, http.StatusBadRequest},
		{xhci.ErrUnsupportedStructure{Code: "trb"}, http.StatusNotFound},
		{history.ErrSnapshotNotFound{Name: "x"}, http.StatusNotFound},
		{history.ErrEmptyName, http.StatusBadRequest},
		{ErrBadRequest{Err: io.ErrUnexpectedEOF}, http.StatusBadRequest},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
