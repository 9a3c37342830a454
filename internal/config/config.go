/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"pagesmith/internal/document"
	"pagesmith/internal/export"
	"pagesmith/internal/geom"
	applog "pagesmith/internal/log"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type EditorConfig struct {
	// HistoryLimit caps the undo log length; 0 keeps every checkpoint.
	HistoryLimit int    `yaml:"history_limit"`
	IDStrategy   string `yaml:"id_strategy"` // "nanoid" | "uuid"
	IDLength     int    `yaml:"id_length"`   // nanoid only, at least document.MinNanoIDLength
	// SnapThreshold is the drag snapping distance in pixels; negative disables snapping.
	SnapThreshold int `yaml:"snap_threshold"`
}

type ExportConfig struct {
	Title       string `yaml:"title"`
	Lang        string `yaml:"lang"`
	ClassPrefix string `yaml:"class_prefix"`
	RootClass   string `yaml:"root_class"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Logging       LoggingConfig `yaml:"logging"`
	Editor        EditorConfig  `yaml:"editor"`
	Export        ExportConfig  `yaml:"export"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	eo := export.DefaultOptions()
	return AppConfig{
		ConfigVersion: 1,
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
		Editor:        EditorConfig{HistoryLimit: 0, IDStrategy: "nanoid", IDLength: 16, SnapThreshold: 6},
		Export:        ExportConfig{Title: eo.Title, Lang: eo.Lang, ClassPrefix: eo.ClassPrefix, RootClass: eo.RootClass},
	}
}

// Env var names used as overrides.
const (
	EnvHistoryLimit = "PSM_HISTORY_LIMIT"
	EnvIDStrategy   = "PSM_ID_STRATEGY"
	EnvSnap         = "PSM_SNAP_THRESHOLD"
	EnvExportTitle  = "PSM_EXPORT_TITLE"
	EnvExportLang   = "PSM_EXPORT_LANG"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "PSM_LOG_LEVEL"
	EnvLogFormat = "PSM_LOG_FORMAT"
	EnvLogSource = "PSM_LOG_SOURCE"
	EnvLogFile   = "PSM_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Pagesmith")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Pagesmith")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "pagesmith")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit path. A missing file is not an error;
// a malformed one is.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			applyEnvOverrides(&cfg)
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		applyEnvOverrides(&cfg)
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML to the per-user location.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
	// editor
	if src.Editor.HistoryLimit > 0 {
		dst.Editor.HistoryLimit = src.Editor.HistoryLimit
	}
	if strings.TrimSpace(src.Editor.IDStrategy) != "" {
		dst.Editor.IDStrategy = strings.ToLower(strings.TrimSpace(src.Editor.IDStrategy))
	}
	if src.Editor.IDLength > 0 {
		dst.Editor.IDLength = max(src.Editor.IDLength, document.MinNanoIDLength)
	}
	if src.Editor.SnapThreshold != 0 {
		dst.Editor.SnapThreshold = src.Editor.SnapThreshold
	}
	// export
	if strings.TrimSpace(src.Export.Title) != "" {
		dst.Export.Title = strings.TrimSpace(src.Export.Title)
	}
	if strings.TrimSpace(src.Export.Lang) != "" {
		dst.Export.Lang = strings.TrimSpace(src.Export.Lang)
	}
	if strings.TrimSpace(src.Export.ClassPrefix) != "" {
		dst.Export.ClassPrefix = strings.TrimSpace(src.Export.ClassPrefix)
	}
	if strings.TrimSpace(src.Export.RootClass) != "" {
		dst.Export.RootClass = strings.TrimSpace(src.Export.RootClass)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvHistoryLimit)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Editor.HistoryLimit = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvIDStrategy)); v != "" {
		cfg.Editor.IDStrategy = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvSnap)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Editor.SnapThreshold = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportTitle)); v != "" {
		cfg.Export.Title = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportLang)); v != "" {
		cfg.Export.Lang = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	var env string
	switch key {
	case "editor.history_limit":
		env = EnvHistoryLimit
	case "editor.id_strategy":
		env = EnvIDStrategy
	case "editor.snap_threshold":
		env = EnvSnap
	case "export.title":
		env = EnvExportTitle
	case "export.lang":
		env = EnvExportLang
	case "logging.level":
		env = EnvLogLevel
	case "logging.format":
		env = EnvLogFormat
	case "logging.source":
		env = EnvLogSource
	case "logging.file":
		env = EnvLogFile
	default:
		return "", false
	}
	if os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}

// LogOptions maps the logging section onto logger options.
func (l LoggingConfig) LogOptions() applog.Options {
	return applog.Options{Level: l.Level, Format: l.Format, AddSource: l.Source, File: l.File}
}

// Generator returns the element id generator selected by the editor section.
func (e EditorConfig) Generator() document.Generator {
	switch e.IDStrategy {
	case "uuid", "uuidv7":
		return document.UUIDv7()
	default:
		return document.NanoID(e.IDLength)
	}
}

// SnapOptions maps the snapping threshold onto guide options.
func (e EditorConfig) SnapOptions() geom.SnapOptions {
	if e.SnapThreshold <= 0 {
		return geom.SnapOptions{}
	}
	o := geom.DefaultSnapOptions()
	o.Threshold = e.SnapThreshold
	return o
}

// Options maps the export section onto exporter options.
func (e ExportConfig) Options() export.Options {
	return export.Options{Title: e.Title, Lang: e.Lang, ClassPrefix: e.ClassPrefix, RootClass: e.RootClass}
}
