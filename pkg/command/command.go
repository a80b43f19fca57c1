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
	"context"
	"os"
	"os/signal"
	"syscall"

	"jinr.ru/greenlab/go-xhci/pkg/config"
	"jinr.ru/greenlab/go-xhci/pkg/history"
	"jinr.ru/greenlab/go-xhci/pkg/log"
	"jinr.ru/greenlab/go-xhci/pkg/srv"
)

// OpenHistory opens the snapshot database configured in cfg
func OpenHistory(cfg *config.Config) (*history.State, error) {
	return history.NewState(cfg.HistoryDBPath())
}

// StartApiServer serves the API until the process is interrupted
func StartApiServer(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state, err := OpenHistory(cfg)
	if err != nil {
		return err
	}
	defer state.Close()

	s, err := srv.NewApiServer(ctx, cfg, state)
	if err != nil {
		return err
	}
	if err := s.Run(); err != nil {
		log.Error("API server failed: %s", err)
		return err
	}
	return nil
}
