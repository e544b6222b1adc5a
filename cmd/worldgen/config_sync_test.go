package main

import (
	"encoding/base64"
	"encoding/json"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"voxelworld/internal/config"
)

func TestWriteConfigFromEnvJSON(t *testing.T) {
	t.Setenv(envConfigYAMLB64, "")

	cfg := config.Default()
	cfg.Generator.Seed = 4242
	cfg.Output.Name = "json-config"
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	t.Setenv(envConfigJSON, string(data))

	path := filepath.Join(t.TempDir(), "nested", "config.json")
	wrote, err := writeConfigFromEnv(path)
	if err != nil {
		t.Fatalf("writeConfigFromEnv: %v", err)
	}
	if !wrote {
		t.Fatalf("expected config to be written")
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if loaded.Generator.Seed != 4242 || loaded.Output.Name != "json-config" {
		t.Fatalf("unexpected config %+v", loaded)
	}
}

func TestWriteConfigFromEnvYAML(t *testing.T) {
	// Partial documents keep defaults for everything they omit.
	doc := []byte("generator:\n  kind: flat\n  seed: -9\n")
	t.Setenv(envConfigJSON, "")
	t.Setenv(envConfigYAMLB64, base64.StdEncoding.EncodeToString(doc))

	for _, name := range []string{"config.json", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			wrote, err := writeConfigFromEnv(path)
			if err != nil {
				t.Fatalf("writeConfigFromEnv: %v", err)
			}
			if !wrote {
				t.Fatalf("expected config to be written")
			}
			loaded, err := config.Load(path)
			if err != nil {
				t.Fatalf("load written config: %v", err)
			}
			if loaded.Generator.Kind != config.KindFlat || loaded.Generator.Seed != -9 {
				t.Fatalf("unexpected generator section %+v", loaded.Generator)
			}
			if loaded.Generator.Width != config.Default().Generator.Width {
				t.Fatalf("expected default width, got %d", loaded.Generator.Width)
			}
		})
	}
}

func TestWriteConfigFromEnvNoPayload(t *testing.T) {
	t.Setenv(envConfigJSON, "")
	t.Setenv(envConfigYAMLB64, "")

	wrote, err := writeConfigFromEnv(filepath.Join(t.TempDir(), "config.json"))
	if err != nil || wrote {
		t.Fatalf("expected no-op, got wrote=%v err=%v", wrote, err)
	}
}

func TestWriteConfigFromEnvErrors(t *testing.T) {
	invalid := config.Default()
	invalid.Generator.Width = 0
	invalidJSON, _ := json.Marshal(invalid)
	invalidYAML, _ := yaml.Marshal(invalid)

	tests := []struct {
		name string
		json string
		yaml string
		path string
	}{
		{"missing path", `{}`, "", ""},
		{"bad json", `{"generator":`, "", "config.json"},
		{"bad base64", "", "%%%", "config.json"},
		{"invalid json config", string(invalidJSON), "", "config.json"},
		{"invalid yaml config", "", base64.StdEncoding.EncodeToString(invalidYAML), "config.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envConfigJSON, tt.json)
			t.Setenv(envConfigYAMLB64, tt.yaml)
			path := tt.path
			if path != "" {
				path = filepath.Join(t.TempDir(), path)
			}
			if wrote, err := writeConfigFromEnv(path); err == nil || wrote {
				t.Fatalf("expected failure, got wrote=%v err=%v", wrote, err)
			}
		})
	}
}
