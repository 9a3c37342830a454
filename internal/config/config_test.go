package config

import (
	"os"
	"path/filepath"
	"testing"

	"pagesmith/internal/document"
	"pagesmith/internal/domain"
)

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Editor.IDStrategy != "nanoid" || cfg.Export.Lang != "en" || cfg.ConfigVersion != 1 {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
}

func TestSaveAndLoadFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.yaml")
	cfg := Defaults()
	cfg.Editor.HistoryLimit = 50
	cfg.Export.Title = "Landing"
	if err := SaveFile(path, cfg); err != nil {
		t.Fatalf("SaveFile error: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if got.Editor.HistoryLimit != 50 || got.Export.Title != "Landing" {
		t.Fatalf("round trip mismatch: %#v", got)
	}
}

func TestLoadFileRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("editor: [oops"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFile(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg.Export.Lang != "en" {
		t.Fatalf("defaults should still be returned on error: %#v", cfg)
	}
}

func TestMergeIncludesEditorAndExport(t *testing.T) {
	dst := Defaults()
	src := AppConfig{
		Editor: EditorConfig{HistoryLimit: 10, IDStrategy: " UUID ", IDLength: 8},
		Export: ExportConfig{Title: " T ", ClassPrefix: "n-"},
	}
	mergeInto(&dst, &src)
	if dst.Editor.HistoryLimit != 10 || dst.Editor.IDStrategy != "uuid" || dst.Editor.IDLength != 8 {
		t.Fatalf("editor fields not merged: %#v", dst.Editor)
	}
	if dst.Export.Title != "T" || dst.Export.ClassPrefix != "n-" || dst.Export.RootClass != Defaults().Export.RootClass {
		t.Fatalf("export fields not merged: %#v", dst.Export)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/psm.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/psm.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvHistoryLimit, "25")
	t.Setenv(EnvIDStrategy, "UUID")
	t.Setenv(EnvExportTitle, "From env")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogSource, "1")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Editor.HistoryLimit != 25 || cfg.Editor.IDStrategy != "uuid" || cfg.Export.Title != "From env" {
		t.Fatalf("env overrides not applied: %#v", cfg)
	}
	if cfg.Logging.Level != "error" || !cfg.Logging.Source {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
	if env, ok := EnvOverrideFor("export.title"); !ok || env != EnvExportTitle {
		t.Fatalf("EnvOverrideFor(export.title) = %q, %v", env, ok)
	}
	if _, ok := EnvOverrideFor("export.root_class"); ok {
		t.Fatalf("root_class has no env override")
	}
}

func TestSectionMappings(t *testing.T) {
	cfg := Defaults()
	if id := cfg.Editor.Generator()(); len(id) != 16 {
		t.Fatalf("default generator should yield 16-char ids, got %q", id)
	}
	cfg.Editor.IDStrategy = "uuid"
	if id := cfg.Editor.Generator()(); len(id) != 36 {
		t.Fatalf("uuid generator should yield 36-char ids, got %q", id)
	}
	if o := cfg.Export.Options(); o.ClassPrefix != "el-" || o.RootClass != "page-root" {
		t.Fatalf("unexpected export options: %#v", o)
	}
	cfg.Logging.Source = true
	if o := cfg.Logging.LogOptions(); !o.AddSource || o.Level != "info" {
		t.Fatalf("unexpected log options: %#v", o)
	}
}

func TestSnapOptions(t *testing.T) {
	if o := Defaults().Editor.SnapOptions(); o.Threshold != 6 || !o.Edges || !o.Centers {
		t.Fatalf("unexpected default snapping: %#v", o)
	}
	if o := (EditorConfig{SnapThreshold: -1}).SnapOptions(); o.Threshold != 0 {
		t.Fatalf("negative threshold must disable snapping: %#v", o)
	}

	t.Setenv(EnvSnap, "-1")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Editor.SnapThreshold != -1 {
		t.Fatalf("env override not applied: %d", cfg.Editor.SnapThreshold)
	}
	if env, ok := EnvOverrideFor("editor.snap_threshold"); !ok || env != EnvSnap {
		t.Fatalf("EnvOverrideFor mismatch: %q %v", env, ok)
	}
}

func TestShortIDLengthIsRaised(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("editor:\n  id_length: 1\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Editor.IDLength != document.MinNanoIDLength {
		t.Fatalf("expected id_length raised to %d, got %d", document.MinNanoIDLength, cfg.Editor.IDLength)
	}

	store := document.NewStore(cfg.Editor.Generator())
	doc := domain.EmptyDocument()
	for i := 0; i < 200; i++ {
		doc, err = store.Create(doc, domain.KindHeading, domain.Position{})
		if err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}
	if id := doc.Elements[0].ID; len(id) != document.MinNanoIDLength {
		t.Fatalf("unexpected id %q", id)
	}
}
