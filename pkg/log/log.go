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
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

type LogLevel int

const (
	LogPrefix     = "[go-xhci] "
	ErrorPrefix   = "[error] "
	WarningPrefix = "[warn] "
	InfoPrefix    = "[info] "
	DebugPrefix   = "[debug] "
	HelpLevels    = "Must be one of: error, warning, info, debug."
)

const (
	ErrorLevel LogLevel = iota
	WarningLevel
	InfoLevel
	DebugLevel
)

const (
	// Rotation settings of the log file
	MaxFileSizeMB  = 10
	MaxFileBackups = 3
	MaxFileAgeDays = 28
)

var levelMapping = map[string]LogLevel{
	"error":   ErrorLevel,
	"warning": WarningLevel,
	"info":    InfoLevel,
	"debug":   DebugLevel,
}

type Logger struct {
	mu     sync.RWMutex
	level  LogLevel
	out    io.Writer
	closer io.Closer
	*log.Logger
}

var logger = &Logger{
	level:  InfoLevel,
	out:    os.Stderr,
	Logger: log.New(os.Stderr, LogPrefix, log.LstdFlags),
}

func ParseLevel(strLevel string) (LogLevel, error) {
	level, ok := levelMapping[strLevel]
	if !ok {
		return InfoLevel, errors.New("Wrong log level. " + HelpLevels)
	}
	return level, nil
}

func SetLevel(strLevel string) error {
	level, err := ParseLevel(strLevel)
	if err != nil {
		return err
	}
	logger.mu.Lock()
	logger.level = level
	logger.mu.Unlock()
	return nil
}

func Level() LogLevel {
	logger.mu.RLock()
	defer logger.mu.RUnlock()
	return logger.level
}

func Init(out io.Writer, strLevel string) {
	logger.mu.Lock()
	logger.out = out
	logger.SetOutput(out)
	logger.mu.Unlock()
	if err := SetLevel(strLevel); err != nil {
		panic(err)
	}
}

// InitFile sends the log to a size rotated file in addition to stderr
func InitFile(path, strLevel string) error {
	if _, err := ParseLevel(strLevel); err != nil {
		return err
	}
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    MaxFileSizeMB,
		MaxBackups: MaxFileBackups,
		MaxAge:     MaxFileAgeDays,
	}
	Init(io.MultiWriter(os.Stderr, file), strLevel)
	logger.mu.Lock()
	logger.closer = file
	logger.mu.Unlock()
	return nil
}

// Close closes the log file opened by InitFile and falls back to stderr
func Close() error {
	logger.mu.Lock()
	closer := logger.closer
	logger.closer = nil
	logger.out = os.Stderr
	logger.SetOutput(os.Stderr)
	logger.mu.Unlock()
	if closer == nil {
		return nil
	}
	return closer.Close()
}

// Writer returns the current log destination, used for access logs
func Writer() io.Writer {
	logger.mu.RLock()
	defer logger.mu.RUnlock()
	return logger.out
}

func logf(level LogLevel, prefix, format string, v ...interface{}) {
	if Level() >= level {
		logger.Println(fmt.Sprintf(prefix+format, v...))
	}
}

func Error(format string, v ...interface{}) {
	logf(ErrorLevel, ErrorPrefix, format, v...)
}

func Warning(format string, v ...interface{}) {
	logf(WarningLevel, WarningPrefix, format, v...)
}

func Info(format string, v ...interface{}) {
	logf(InfoLevel, InfoPrefix, format, v...)
}

func Debug(format string, v ...interface{}) {
	logf(DebugLevel, DebugPrefix, format, v...)
}
