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
	"fmt"
	"net/http"
	"net/url"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-xhci/pkg/config"
	"jinr.ru/greenlab/go-xhci/pkg/history"
	"jinr.ru/greenlab/go-xhci/pkg/log"
	"jinr.ru/greenlab/go-xhci/pkg/srv"
	"jinr.ru/greenlab/go-xhci/pkg/xhci"
)

// ErrApi is returned when the API server answers with an error status
type ErrApi struct {
	StatusCode int
	Message    string
}

func (e ErrApi) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API request failed: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("API request failed: %d %s", e.StatusCode, e.Message)
}

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: cfg.ApiURL() + srv.ApiPrefix,
	}
}

func (c *ApiClient) decodeUrl(code string) string {
	return fmt.Sprintf("%s/decode/%s", c.ApiPrefix, url.PathEscape(code))
}

func (c *ApiClient) historyUrl(name string) string {
	if name == "" {
		return fmt.Sprintf("%s/history", c.ApiPrefix)
	}
	return fmt.Sprintf("%s/history/%s", c.ApiPrefix, url.PathEscape(name))
}

// checkResponse turns an error status into ErrApi
func checkResponse(r *req.Resp) error {
	if r.Response().StatusCode == http.StatusOK {
		return nil
	}
	status := &srv.Status{}
	if err := r.ToJSON(status); err != nil || status.Error == "" {
		return ErrApi{StatusCode: r.Response().StatusCode}
	}
	return ErrApi{StatusCode: r.Response().StatusCode, Message: status.Error}
}

// Structs requests the list of supported structures
func (c *ApiClient) Structs() ([]xhci.KindInfo, error) {
	r, err := req.Get(fmt.Sprintf("%s/structs", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if err := checkResponse(r); err != nil {
		return nil, err
	}
	var infos []xhci.KindInfo
	if err := r.ToJSON(&infos); err != nil {
		return nil, err
	}
	return infos, nil
}

// Decode sends hex data to the server and returns the decoded structure.
// The server saves the data as a snapshot when decodeRequest.Save is not empty.
func (c *ApiClient) Decode(code string, decodeRequest *srv.DecodeRequest) (*xhci.Result, error) {
	log.Debug("Sending decode request: struct: %s word: %t save: %s", code, decodeRequest.Word, decodeRequest.Save)
	r, err := req.Post(c.decodeUrl(code), req.BodyJSON(decodeRequest))
	if err != nil {
		return nil, err
	}
	if err := checkResponse(r); err != nil {
		return nil, err
	}
	result := &xhci.Result{}
	if err := r.ToJSON(result); err != nil {
		return nil, err
	}
	return result, nil
}

// History requests the list of saved snapshots
func (c *ApiClient) History() ([]*history.Snapshot, error) {
	r, err := req.Get(c.historyUrl(""))
	if err != nil {
		return nil, err
	}
	if err := checkResponse(r); err != nil {
		return nil, err
	}
	var snapshots []*history.Snapshot
	if err := r.ToJSON(&snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// Snapshot requests a saved snapshot decoded by the server
func (c *ApiClient) Snapshot(name string) (*srv.SnapshotResult, error) {
	r, err := req.Get(c.historyUrl(name))
	if err != nil {
		return nil, err
	}
	if err := checkResponse(r); err != nil {
		return nil, err
	}
	snapshotResult := &srv.SnapshotResult{}
	if err := r.ToJSON(snapshotResult); err != nil {
		return nil, err
	}
	return snapshotResult, nil
}

// DeleteSnapshot ...
func (c *ApiClient) DeleteSnapshot(name string) error {
	r, err := req.Delete(c.historyUrl(name))
	if err != nil {
		return err
	}
	return checkResponse(r)
}
