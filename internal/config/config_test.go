package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prepress/internal/config"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Analysis.Workers != 4 {
		t.Errorf("workers = %d, want 4", cfg.Analysis.Workers)
	}
	sum := cfg.Weights.Quality + cfg.Weights.Cost + cfg.Weights.Sustainability + cfg.Weights.Durability
	if sum != 100 {
		t.Errorf("default weights sum = %g, want 100", sum)
	}
	if cfg.Costing.DefaultProductType != "tshirt" {
		t.Errorf("default product type = %q", cfg.Costing.DefaultProductType)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Error("reported a file that does not exist")
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Analysis.Workers != config.Default().Analysis.Workers {
		t.Errorf("workers = %d, want default", cfg.Analysis.Workers)
	}
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[analysis]
workers = 8

[costing]
default_product_type = " Poster "
default_quantity = 250

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("config file not found")
	}
	if cfg.Analysis.Workers != 8 {
		t.Errorf("workers = %d, want 8", cfg.Analysis.Workers)
	}
	if cfg.Costing.DefaultProductType != "poster" {
		t.Errorf("product type = %q, want poster (lowercased, trimmed)", cfg.Costing.DefaultProductType)
	}
	if cfg.Costing.DefaultQuantity != 250 {
		t.Errorf("quantity = %d, want 250", cfg.Costing.DefaultQuantity)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging = %+v, want normalized json/debug", cfg.Logging)
	}
	// Untouched sections keep their defaults.
	if cfg.Weights != config.Default().Weights {
		t.Errorf("weights = %+v, want defaults", cfg.Weights)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "weights out of range",
			body: "[weights]\nquality = 120\ncost = -20\nsustainability = 0\ndurability = 0\n",
			want: "between 0 and 100",
		},
		{
			name: "weights sum off",
			body: "[weights]\nquality = 50\ncost = 30\nsustainability = 10\ndurability = 5\n",
			want: "sum to 100",
		},
		{
			name: "bad log format",
			body: "[logging]\nformat = \"xml\"\n",
			want: "logging.format",
		},
		{
			name: "bad log level",
			body: "[logging]\nlevel = \"verbose\"\n",
			want: "logging.level",
		},
		{
			name: "malformed toml",
			body: "[weights\nquality = 40\n",
			want: "parse config",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want substring %q", err, tc.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample not found after CreateSample")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config invalid: %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	got, err := config.ExpandPath("~/logs")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "logs") {
		t.Errorf("ExpandPath(~/logs) = %q", got)
	}

	got, err = config.ExpandPath("relative/dir")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("ExpandPath should return an absolute path, got %q", got)
	}
}
