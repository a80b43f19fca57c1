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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"jinr.ru/greenlab/go-xhci/pkg/bits"
	"jinr.ru/greenlab/go-xhci/pkg/history"
	"jinr.ru/greenlab/go-xhci/pkg/input"
	"jinr.ru/greenlab/go-xhci/pkg/layers"
	"jinr.ru/greenlab/go-xhci/pkg/log"
	"jinr.ru/greenlab/go-xhci/pkg/xhci"
)

// Status is the body of every error response
type Status struct {
	Code  int    `json:"code"`
	Error string `json:"error,omitempty"`
}

// ErrBadRequest marks a request body that could not be read
type ErrBadRequest struct {
	Err error
}

func (e ErrBadRequest) Error() string {
	return fmt.Sprintf("Bad request body: %s", e.Err)
}

func (e ErrBadRequest) Unwrap() error {
	return e.Err
}

// StatusCode maps an error to the HTTP status it is reported with
func StatusCode(err error) int {
	var insufficient layers.ErrInsufficientData
	var endpointIndex layers.ErrEndpointIndex
	var invalidLength bits.ErrInvalidLength
	var badToken input.ErrBadToken
	var unsupported xhci.ErrUnsupportedStructure
	var notFound history.ErrSnapshotNotFound
	var badRequest ErrBadRequest
	switch {
	case errors.As(err, &insufficient), errors.As(err, &invalidLength), errors.As(err, &badToken),
		errors.As(err, &endpointIndex),
		errors.Is(err, input.ErrNoData), errors.Is(err, history.ErrEmptyName),
		errors.As(err, &badRequest):
		return http.StatusBadRequest
	case errors.As(err, &unsupported), errors.As(err, &notFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Error while encoding response: %s", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := StatusCode(err)
	if code == http.StatusInternalServerError {
		log.Error("Request failed: %s", err)
	} else {
		log.Debug("Request rejected: %d %s", code, err)
	}
	writeJSON(w, code, &Status{Code: code, Error: err.Error()})
}
