// Copyright The OpenTelemetry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package global holds the process-wide error/info sink the metrics
// engine reports to instead of panicking or returning errors from
// contexts that cannot propagate them (a periodic reader's background
// collection, and a reader's final collect during Shutdown).
package global // import "github.com/otelworks/metricsdk/internal/global"

import (
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// loggerHolder lets us swap the installed logr.Logger atomically without
// requiring callers to hold a lock.
type loggerHolder struct {
	l logr.Logger
}

var (
	globalLogger = func() *atomic.Value {
		v := &atomic.Value{}
		v.Store(loggerHolder{l: stdr.New(nil)})
		return v
	}()
	setOnce sync.Once
)

// SetLogger installs l as the destination for Error and Info. It may only
// meaningfully be called once; subsequent calls are logged as a warning
// against whichever logger is already installed.
func SetLogger(l logr.Logger) {
	success := false
	setOnce.Do(func() {
		globalLogger.Store(loggerHolder{l: l})
		success = true
	})
	if !success {
		GetLogger().Info("ignoring call to SetLogger after a logger was already installed")
	}
}

// GetLogger returns the currently installed logr.Logger.
func GetLogger() logr.Logger {
	return globalLogger.Load().(loggerHolder).l
}

// Error logs an error condition that could not be propagated to a caller:
// a collection failure in a periodic reader's background worker, or a
// failed final collect during Reader.Shutdown.
func Error(err error, msg string, keysAndValues ...any) {
	GetLogger().Error(err, msg, keysAndValues...)
}

// Info logs an informational message at verbosity level 4.
func Info(msg string, keysAndValues ...any) {
	GetLogger().V(4).Info(msg, keysAndValues...)
}
