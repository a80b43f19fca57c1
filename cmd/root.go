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
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-xhci/cmd/completion"
	"jinr.ru/greenlab/go-xhci/cmd/config"
	"jinr.ru/greenlab/go-xhci/cmd/decode"
	"jinr.ru/greenlab/go-xhci/cmd/history"
	"jinr.ru/greenlab/go-xhci/cmd/remote"
	"jinr.ru/greenlab/go-xhci/cmd/serve"
	"jinr.ru/greenlab/go-xhci/cmd/structs"
	pkgconfig "jinr.ru/greenlab/go-xhci/pkg/config"
	"jinr.ru/greenlab/go-xhci/pkg/log"
)

const (
	LogLevelOptionName = "log-level"
	ConfigOptionName   = "config"
)

// loadConfig reads the config file. A missing file leaves the defaults, so that config init can create it.
func loadConfig(cfg *pkgconfig.Config, path string) error {
	if path != "" {
		cfg.SetPath(path)
	}
	if err := cfg.LoadConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func NewRootCommand(out io.Writer) *cobra.Command {
	var logLevel, configPath string
	cfg := pkgconfig.NewDefaultConfig()
	cmd := &cobra.Command{
		Use:           "go-xhci",
		Short:         "Tool to decode xHCI context data structures",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cfg, configPath); err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
				return err
			}
			if cfg.LogFile != "" {
				return log.InitFile(cfg.LogFile, cfg.LogLevel)
			}
			log.Init(cmd.ErrOrStderr(), cfg.LogLevel)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return log.Close()
		},
	}
	cmd.SetOut(out)
	cmd.AddCommand(decode.NewCommand(cfg))
	cmd.AddCommand(structs.NewCommand())
	cmd.AddCommand(history.NewCommand(cfg))
	cmd.AddCommand(serve.NewCommand(cfg))
	cmd.AddCommand(remote.NewCommand(cfg))
	cmd.AddCommand(config.NewCommand(cfg))
	cmd.AddCommand(completion.NewCommand())
	cmd.PersistentFlags().StringVar(&logLevel, LogLevelOptionName, "", fmt.Sprintf("Log level. %s", log.HelpLevels))
	cmd.PersistentFlags().StringVar(&configPath, ConfigOptionName, "", fmt.Sprintf("Config file (default %s)", pkgconfig.DefaultConfigPath()))
	return cmd
}
