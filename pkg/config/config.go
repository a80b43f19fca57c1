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

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

type ApiConfig struct {
	Address string `json:"address,omitempty"`
	Port    int    `json:"port,omitempty"`
}

type HistoryConfig struct {
	DBPath string `json:"dbPath,omitempty"`
}

type DecodeConfig struct {
	DefaultStruct string `json:"defaultStruct,omitempty"`
	Word          bool   `json:"word"`
	Format        string `json:"format,omitempty"`
	Grid          bool   `json:"grid"`
}

type Config struct {
	LogLevel       string `json:"logLevel,omitempty"`
	LogFile        string `json:"logFile,omitempty"`
	*ApiConfig     `json:"api,omitempty"`
	*HistoryConfig `json:"history,omitempty"`
	*DecodeConfig  `json:"decode,omitempty"`
	filepath       string
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	return os.WriteFile(c.filepath, data, 0644)
}

// LoadConfig reads the config file over the current values,
// sections missing from the file keep their defaults
func (c *Config) LoadConfig() error {
	data, err := os.ReadFile(c.filepath)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("Couldn't parse config file %s: %w", c.filepath, err)
	}
	c.fillDefaults()
	return nil
}

func (c *Config) Path() string {
	return c.filepath
}

func (c *Config) SetPath(path string) {
	c.filepath = path
}

// ApiURL is the base URL of the API server
func (c *Config) ApiURL() string {
	return fmt.Sprintf("http://%s:%d", c.ApiConfig.Address, c.ApiConfig.Port)
}

// ListenAddress is the address the API server binds to
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.ApiConfig.Address, c.ApiConfig.Port)
}

func (c *Config) HistoryDBPath() string {
	return c.HistoryConfig.DBPath
}

func (c *Config) fillDefaults() {
	d := NewDefaultConfig()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.ApiConfig == nil {
		c.ApiConfig = d.ApiConfig
	}
	if c.ApiConfig.Address == "" {
		c.ApiConfig.Address = d.ApiConfig.Address
	}
	if c.ApiConfig.Port == 0 {
		c.ApiConfig.Port = d.ApiConfig.Port
	}
	if c.HistoryConfig == nil || c.HistoryConfig.DBPath == "" {
		c.HistoryConfig = d.HistoryConfig
	}
	if c.DecodeConfig == nil {
		c.DecodeConfig = d.DecodeConfig
	}
	if c.DecodeConfig.Format == "" {
		c.DecodeConfig.Format = d.DecodeConfig.Format
	}
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir)
}

func DefaultConfigPath() string {
	return filepath.Join(defaultDir(), ConfigFile)
}

func DefaultHistoryDBPath() string {
	return filepath.Join(defaultDir(), HistoryDBFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		ApiConfig: &ApiConfig{
			Address: DefaultApiAddress,
			Port:    DefaultApiPort,
		},
		HistoryConfig: &HistoryConfig{
			DBPath: DefaultHistoryDBPath(),
		},
		DecodeConfig: &DecodeConfig{
			Format: DefaultFormat,
		},
		filepath: DefaultConfigPath(),
	}
}
