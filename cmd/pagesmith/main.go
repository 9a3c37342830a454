/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"pagesmith/internal/config"
	"pagesmith/internal/crash"
	"pagesmith/internal/document"
	"pagesmith/internal/domain"
	"pagesmith/internal/editor"
	"pagesmith/internal/history"
	applog "pagesmith/internal/log"
	"pagesmith/internal/script"
	"pagesmith/internal/version"
)

func usage() {
	fmt.Println("Pagesmith — page editor core")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pagesmith version|-v|--version           Show version")
	fmt.Println("  pagesmith kinds                           List element kinds and their defaults")
	fmt.Println("  pagesmith validate <script>               Check a session script without running it")
	fmt.Println("  pagesmith build <script> [<out.html>]     Replay a session script and export the page (stdout if no output)")
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(cfg.Logging.LogOptions())
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config not loaded, using defaults", slog.Any("err", cfgErr))
	}

	// ctl is captured by reference so a panic during build still rescues the page.
	var ctl *editor.Controller
	defer crash.Recover("", func() string {
		if ctl == nil {
			return ""
		}
		return ctl.Export()
	})

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Pagesmith — page editor core")
			fmt.Println(version.String())
			return
		case "kinds":
			for _, k := range domain.Kinds() {
				d := domain.DefaultsFor(k)
				fmt.Printf("%-10s %4dx%-4d %q\n", k, d.Size.Width, d.Size.Height, d.Content)
			}
			return
		case "validate":
			if len(args) < 3 {
				fmt.Println("validate requires <script>")
				usage()
				os.Exit(2)
			}
			s, err := script.Load(args[2])
			if err != nil {
				l.Error("validate failed", slog.String("script", args[2]), slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Printf("OK: %d operations\n", len(s.Ops))
			return
		case "build":
			if len(args) < 3 {
				fmt.Println("build requires <script>")
				usage()
				os.Exit(2)
			}
			var out string
			if len(args) >= 4 {
				out, _ = filepath.Abs(args[3])
			}
			s, err := script.Load(args[2])
			if err != nil {
				l.Error("load script failed", slog.String("script", args[2]), slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}

			exportOpts := cfg.Export.Options()
			if strings.TrimSpace(s.Title) != "" {
				exportOpts.Title = s.Title
			}
			session := uuid.NewString()
			ctx := applog.WithSession(context.Background(), session)
			ctl = editor.New(document.NewStore(cfg.Editor.Generator()), editor.Options{
				History: history.Config{MaxEntries: cfg.Editor.HistoryLimit},
				Export:  exportOpts,
				Snap:    cfg.Editor.SnapOptions(),
				Logger:  applog.WithComponent("editor").With(slog.String("session", session)),
			})
			l.InfoContext(ctx, "build", slog.String("script", args[2]), slog.String("out", out))

			if _, err := script.Run(ctx, ctl, s); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if out == "" {
				fmt.Print(ctl.Export())
				return
			}
			if err := ctl.ExportTo(out); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Exported page to", out)
			return
		}
	}

	usage()
}
