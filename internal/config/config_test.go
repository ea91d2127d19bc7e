package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Build.Source != "contacts/Contract of Sale.docx" {
		t.Errorf("expected default source, got %s", cfg.Build.Source)
	}
	if cfg.Build.Target != "contacts/Contract Template.docx" {
		t.Errorf("expected default target, got %s", cfg.Build.Target)
	}
	if cfg.Build.Catalogue != "" {
		t.Errorf("expected built-in catalogue, got %s", cfg.Build.Catalogue)
	}
	if cfg.Dump.Source != cfg.Build.Source {
		t.Errorf("expected dump source %s, got %s", cfg.Build.Source, cfg.Dump.Source)
	}
	if cfg.Dump.Output != "contacts/contract_dump.txt" {
		t.Errorf("expected default dump output, got %s", cfg.Dump.Output)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Log.Level)
	}
}

func TestConfig_SetAndGet(t *testing.T) {
	cfg := DefaultConfig()

	for _, key := range Keys {
		value := "value-for-" + key
		if key == "log.level" {
			value = "debug"
		}
		if err := cfg.Set(key, value); err != nil {
			t.Fatalf("Set(%q): %v", key, err)
		}
		got, ok := cfg.Get(key)
		if !ok || got != value {
			t.Errorf("Get(%q) = %q, %v; want %q", key, got, ok, value)
		}
	}
}

func TestConfig_SetInvalid(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		key   string
		value string
		want  string
	}{
		{"log.level", "loud", "invalid log level"},
		{"log.level", "", "invalid log level"},
		{"build.output", "x", "unknown config key"},
	}

	for _, tc := range tests {
		err := cfg.Set(tc.key, tc.value)
		if err == nil {
			t.Errorf("Set(%q, %q): expected error", tc.key, tc.value)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("Set(%q, %q): expected %q in %v", tc.key, tc.value, tc.want, err)
		}
	}

	if cfg.Log.Level != "info" {
		t.Errorf("failed Set must not change level, got %s", cfg.Log.Level)
	}
	if _, ok := cfg.Get("build.output"); ok {
		t.Error("expected unknown key to be absent")
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv(EnvSource, "in.docx")
	t.Setenv(EnvTarget, "out.docx")
	t.Setenv(EnvDebug, "1")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Build.Source != "in.docx" || cfg.Dump.Source != "in.docx" {
		t.Errorf("expected env source, got %s / %s", cfg.Build.Source, cfg.Dump.Source)
	}
	if cfg.Build.Target != "out.docx" {
		t.Errorf("expected env target, got %s", cfg.Build.Target)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Log.Level)
	}
}

func TestConfig_ApplyEnvUnset(t *testing.T) {
	t.Setenv(EnvSource, "")
	t.Setenv(EnvTarget, "")
	t.Setenv(EnvDebug, "")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoader_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	loader := NewLoaderWithPath(configPath)

	cfg := DefaultConfig()
	cfg.Build.Target = "out/Template.docx"
	cfg.Build.Catalogue = "rules.yaml"

	if err := loader.Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if !loader.Exists() {
		t.Error("expected config file to exist")
	}

	loaded, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestLoader_LoadNonExistent(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nonexistent.yaml")

	loader := NewLoaderWithPath(configPath)
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent config, got: %v", err)
	}

	if *cfg != *DefaultConfig() {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestLoader_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := "build:\n  target: custom.docx\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := NewLoaderWithPath(configPath).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Build.Target != "custom.docx" {
		t.Errorf("expected target 'custom.docx', got %s", cfg.Build.Target)
	}
	if cfg.Build.Source != DefaultSource {
		t.Errorf("expected default source, got %s", cfg.Build.Source)
	}
	if cfg.Dump.Output != DefaultDump {
		t.Errorf("expected default dump output, got %s", cfg.Dump.Output)
	}
}

func TestLoader_EnvVarExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("TEST_CONTRACTS_DIR", "/srv/contracts")

	content := `build:
  source: ${TEST_CONTRACTS_DIR}/sale.docx
  target: ${TEST_CONTRACTS_DIR}/template.docx
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	loader := NewLoaderWithPath(configPath)

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Build.Source != "/srv/contracts/sale.docx" {
		t.Errorf("expected expanded source, got %s", cfg.Build.Source)
	}

	raw, err := loader.LoadRaw()
	if err != nil {
		t.Fatalf("failed to load raw config: %v", err)
	}
	if raw.Build.Source != "${TEST_CONTRACTS_DIR}/sale.docx" {
		t.Errorf("expected unexpanded source, got %s", raw.Build.Source)
	}
}

func TestExpandEnvVars_UnsetVar(t *testing.T) {
	os.Unsetenv("UNSET_VAR_FOR_TEST")

	if got := expandEnvVars("a/${UNSET_VAR_FOR_TEST}/b"); got != "a//b" {
		t.Errorf("expected unset var to expand to empty, got %s", got)
	}
}

func TestLoader_HCL(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.hcl")

	t.Setenv("TEST_CONTRACTS_DIR", "/srv/contracts")

	content := `
build {
  source = "${env.TEST_CONTRACTS_DIR}/sale.docx"
  catalogue = "rules.yaml"
}

log {
  level = "debug"
}
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := NewLoaderWithPath(configPath).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Build.Source != "/srv/contracts/sale.docx" {
		t.Errorf("expected interpolated source, got %s", cfg.Build.Source)
	}
	if cfg.Build.Target != DefaultTarget {
		t.Errorf("expected default target, got %s", cfg.Build.Target)
	}
	if cfg.Build.Catalogue != "rules.yaml" {
		t.Errorf("expected catalogue 'rules.yaml', got %s", cfg.Build.Catalogue)
	}
	if cfg.Dump.Output != DefaultDump {
		t.Errorf("expected default dump output, got %s", cfg.Dump.Output)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected level 'debug', got %s", cfg.Log.Level)
	}
}

func TestLoader_HCLSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	loader := NewLoaderWithPath(filepath.Join(tmpDir, "config.hcl"))

	cfg := DefaultConfig()
	cfg.Dump.Output = "dump.txt"
	if err := loader.Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	data, err := os.ReadFile(loader.ConfigPath())
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if !strings.Contains(string(data), "dump {") {
		t.Errorf("expected HCL dump block, got:\n%s", data)
	}

	loaded, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestLoader_LoadInvalidHCL(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.hcl")

	if err := os.WriteFile(configPath, []byte("build {\n  source = \n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := NewLoaderWithPath(configPath).Load(); err == nil {
		t.Error("expected error for invalid HCL")
	}
}

func TestLoader_HCLUnknownAttribute(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.hcl")

	if err := os.WriteFile(configPath, []byte("build {\n  sourcee = \"x\"\n}\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := NewLoaderWithPath(configPath).Load(); err == nil {
		t.Error("expected error for unknown attribute")
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	if v := GetEnvOrDefault("TEST_VAR", "default"); v != "test-value" {
		t.Errorf("expected 'test-value', got %s", v)
	}

	if v := GetEnvOrDefault("NONEXISTENT_VAR", "default"); v != "default" {
		t.Errorf("expected 'default', got %s", v)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"", false},
		{"invalid", false},
	}

	for _, tc := range tests {
		os.Setenv("TEST_BOOL", tc.value)
		got := GetEnvBool("TEST_BOOL")
		if got != tc.expected {
			t.Errorf("GetEnvBool(%q): expected %v, got %v", tc.value, tc.expected, got)
		}
	}
	os.Unsetenv("TEST_BOOL")
}

func TestNewLoader(t *testing.T) {
	loader, err := NewLoader()
	if err != nil {
		t.Fatalf("failed to create loader: %v", err)
	}

	path := loader.ConfigPath()
	if filepath.Base(path) != ConfigFileName {
		t.Errorf("expected config file name %s, got %s", ConfigFileName, filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ConfigDirName {
		t.Errorf("expected config dir %s, got %s", ConfigDirName, filepath.Dir(path))
	}
}

func TestLoader_Init(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	loader := NewLoaderWithPath(configPath)

	if err := loader.Init(); err != nil {
		t.Fatalf("failed to init config: %v", err)
	}

	if !loader.Exists() {
		t.Error("expected config file to exist after init")
	}

	if err := loader.Init(); err == nil {
		t.Error("expected error when initializing existing config")
	}
}

func TestLoader_LoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("{{{{invalid yaml"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	loader := NewLoaderWithPath(configPath)
	if _, err := loader.Load(); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
