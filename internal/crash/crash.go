/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package crash turns a fatal panic into a report file and, when possible,
// a rescued copy of the page being edited.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"pagesmith/internal/export"
	applog "pagesmith/internal/log"
	"pagesmith/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Rescue returns the markup of the current page. It is called after a panic,
// so it must not depend on the state of the goroutine that panicked.
type Rescue func() string

// Recover captures a panic, logs an error with stacktrace, writes an error
// report to dir (the temp dir when empty) and saves the markup returned by
// rescue next to it.
//
// Usage: defer crash.Recover(dir, func() string { return ctl.Export() })
func Recover(dir string, rescue Rescue) {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		stamp := time.Now().Format("20060102-150405")
		reportPath, err := writeReport(dir, stamp, r, stack)
		if err != nil {
			l.Error("crash report failed", slog.Any("err", err))
		}
		if rescue != nil {
			if path, err := writeRescue(dir, stamp, rescue); err != nil {
				l.Error("page rescue failed", slog.Any("err", err))
			} else {
				l.Info("page rescued", slog.String("path", path))
			}
		}

		if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
			l.Error("failed to write crash message to stderr", slog.Any("err", err))
		}
		if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
			l.Error("failed to write version info to stderr", slog.Any("err", err))
		}
		// Exit with a non-zero code to indicate failure in CLI context.
		exitFn(2)
	}
}

func reportDir(dir string) string {
	if dir == "" {
		return os.TempDir()
	}
	_ = os.MkdirAll(dir, 0o755)
	return dir
}

func writeReport(dir, stamp string, panicVal any, stack []byte) (string, error) {
	path := filepath.Join(reportDir(dir), fmt.Sprintf("crash-%s.log", stamp))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Pagesmith Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	_ = f.Sync()
	return path, nil
}

// writeRescue guards against rescue itself panicking; the document may be
// the reason for the crash.
func writeRescue(dir, stamp string, rescue Rescue) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render rescued page: %v", r)
		}
	}()
	markup := rescue()
	if markup == "" {
		return "", fmt.Errorf("nothing to rescue")
	}
	path = filepath.Join(reportDir(dir), fmt.Sprintf("crash-%s.html", stamp))
	return path, export.WriteFile(path, markup)
}
