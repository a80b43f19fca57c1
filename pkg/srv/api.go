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

// Package srv go-xhci API
//
// The API decodes xHCI context data structures and keeps named snapshots of decoded data.
//
//     Schemes: http
//     BasePath: /api
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// swagger:meta
package srv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-openapi/loads"
	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"jinr.ru/greenlab/go-xhci/pkg/config"
	"jinr.ru/greenlab/go-xhci/pkg/history"
	"jinr.ru/greenlab/go-xhci/pkg/input"
	"jinr.ru/greenlab/go-xhci/pkg/log"
	"jinr.ru/greenlab/go-xhci/pkg/xhci"
)

const (
	ApiPrefix       = "/api"
	DocsPath        = "docs"
	ShutdownTimeout = 5 * time.Second
)

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	state *history.State
	doc   *loads.Document
}

// DecodeRequest is the body of a decode request
// swagger:model decodeRequest
type DecodeRequest struct {
	// hex tokens separated by spaces or commas
	Data string `json:"data"`
	// tokens are little-endian 32-bit words
	Word bool `json:"word,omitempty"`
	// save the data as a snapshot with this name
	Save string `json:"save,omitempty"`
	// title of the first structure
	Head string `json:"head,omitempty"`
	// Device Context position of a standalone Endpoint Context, 0..30
	EndpointIndex *int `json:"endpointIndex,omitempty"`
}

// SnapshotResult is a saved snapshot together with its decoded structure
// swagger:model snapshotResult
type SnapshotResult struct {
	Snapshot *history.Snapshot `json:"snapshot"`
	Result   *xhci.Result      `json:"result"`
}

// RespOk ...
// swagger:response okResp
type RespOk struct {
	// in:body
	Body Status
}

// ReqBadRequest ...
// swagger:response badReq
type ReqBadRequest struct {
	// in:body
	Body Status
}

// LoadDocument parses and analyzes the embedded OpenAPI document
func LoadDocument() (*loads.Document, error) {
	doc, err := loads.Analyzed(json.RawMessage(SwaggerJSON), "")
	if err != nil {
		return nil, fmt.Errorf("Couldn't load OpenAPI document: %w", err)
	}
	return doc, nil
}

func NewApiServer(ctx context.Context, cfg *config.Config, state *history.State) (*ApiServer, error) {
	doc, err := LoadDocument()
	if err != nil {
		return nil, err
	}
	s := &ApiServer{
		Context: ctx,
		Config:  cfg,
		state:   state,
		doc:     doc,
	}
	s.configureRouter()
	return s, nil
}

// Handler wraps the router with the docs and the middleware chain
func (s *ApiServer) Handler() http.Handler {
	var h http.Handler = s.Router
	h = middleware.Redoc(middleware.RedocOpts{
		BasePath: "/",
		Path:     DocsPath,
		SpecURL:  "/swagger.json",
		Title:    s.doc.Spec().Info.Title,
	}, h)
	h = middleware.Spec("/", s.doc.Raw(), h)
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	h = handlers.CombinedLoggingHandler(log.Writer(), h)
	return handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))(h)
}

// Run serves the API until the server context is done
func (s *ApiServer) Run() error {
	log.Info("Starting API server: address: %s", s.Config.ListenAddress())
	httpServer := &http.Server{
		Handler: s.Handler(),
		Addr:    s.Config.ListenAddress(),
	}

	g, ctx := errgroup.WithContext(s.Context)
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Stopping API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix(ApiPrefix).Subrouter()
	subRouter.HandleFunc("/structs", s.handleStructs()).Methods("GET")
	subRouter.HandleFunc("/decode/{code}", s.handleDecode()).Methods("POST")
	subRouter.HandleFunc("/history", s.handleHistoryList()).Methods("GET")
	subRouter.HandleFunc("/history/{name}", s.handleHistoryGet()).Methods("GET")
	subRouter.HandleFunc("/history/{name}", s.handleHistoryDelete()).Methods("DELETE")
}

// swagger:operation GET /structs getStructs
// List supported structures
// ---
// responses:
//   '200':
//     description: Supported structures
func (s *ApiServer) handleStructs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, xhci.Describe())
	}
}

// swagger:operation POST /decode/{code} decode
// Decode data as a structure
// ---
// parameters:
// - name: code
//   in: path
//   required: true
//   type: string
// responses:
//   '200':
//     description: Decoded structure
//   '400':
//     "$ref": "#/responses/badReq"
//   '404':
//     "$ref": "#/responses/notFound"
func (s *ApiServer) handleDecode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := xhci.ParseKind(mux.Vars(r)["code"])
		if err != nil {
			writeError(w, err)
			return
		}

		decodeRequest := &DecodeRequest{}
		if err := json.NewDecoder(r.Body).Decode(decodeRequest); err != nil {
			writeError(w, ErrBadRequest{Err: err})
			return
		}

		data, err := input.Parse(decodeRequest.Data, decodeRequest.Word)
		if err != nil {
			writeError(w, err)
			return
		}

		snapshot := &history.Snapshot{
			Name:          decodeRequest.Save,
			Kind:          kind,
			Data:          data,
			Head:          decodeRequest.Head,
			EndpointIndex: decodeRequest.EndpointIndex,
		}
		result, err := xhci.Decode(kind, data, snapshot.Options()...)
		if err != nil {
			writeError(w, err)
			return
		}

		if decodeRequest.Save != "" {
			if err := s.state.Save(snapshot); err != nil {
				writeError(w, err)
				return
			}
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// swagger:operation GET /history getHistory
// List saved snapshots
// ---
// responses:
//   '200':
//     description: Snapshots
func (s *ApiServer) handleHistoryList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshots, err := s.state.List()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snapshots)
	}
}

// swagger:operation GET /history/{name} getSnapshot
// Decode a saved snapshot
// ---
// responses:
//   '200':
//     description: Snapshot and its decoded structure
//   '404':
//     "$ref": "#/responses/notFound"
func (s *ApiServer) handleHistoryGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := s.state.Get(mux.Vars(r)["name"])
		if err != nil {
			writeError(w, err)
			return
		}
		result, err := snapshot.Decode()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, &SnapshotResult{Snapshot: snapshot, Result: result})
	}
}

// swagger:operation DELETE /history/{name} deleteSnapshot
// Delete a saved snapshot
// ---
// responses:
//   '200':
//     "$ref": "#/responses/okResp"
//   '404':
//     "$ref": "#/responses/notFound"
func (s *ApiServer) handleHistoryDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.state.Delete(mux.Vars(r)["name"]); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, &Status{Code: http.StatusOK})
	}
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	log.Error("Recovered from panic: %s", fmt.Sprint(v...))
}
