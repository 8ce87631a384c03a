package main

import (
	"os"
	"path/filepath"
	"testing"
)

func clearRenjuEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RENJU_HTTP_ADDR",
		"RENJU_JOURNAL_PATH",
		"RENJU_LOG_LEVEL",
		"RENJU_TEAM_NAME",
		"RENJU_MOVE_TIMEOUT_MS",
		"RENJU_EVAL_CACHE_SIZE",
		"RENJU_MAX_SESSIONS",
	} {
		t.Setenv(key, "")
	}
}

func TestParseArgsPort(t *testing.T) {
	clearRenjuEnv(t)
	cases := []struct {
		args    []string
		port    int
		wantErr string
	}{
		{args: []string{"-p8080"}, port: 8080},
		{args: []string{"-p1024"}, port: 1024},
		{args: []string{"-p65535"}, port: 65535},
		{args: []string{"-p1023"}, wantErr: "Port must be between 1024 and 65535"},
		{args: []string{"-p65536"}, wantErr: "Port must be between 1024 and 65535"},
		{args: []string{"-pabc"}, wantErr: "Invalid port argument"},
		{args: []string{"-p80abc"}, wantErr: "Port must be between 1024 and 65535"},
		{args: []string{"-p9000x"}, port: 9000},
		{args: []string{"-p+8080"}, port: 8080},
		{args: []string{"-p-"}, wantErr: "Invalid port argument"},
		{args: []string{"-p99999999999999999999999"}, wantErr: "Port must be between 1024 and 65535"},
		{args: []string{"-p"}, wantErr: "Invalid port argument"},
		{args: []string{"8080"}, wantErr: "Invalid port argument"},
		{args: nil, wantErr: usage},
	}
	for _, tc := range cases {
		config, err := parseArgs(tc.args, DefaultConfig())
		if tc.wantErr != "" {
			if err == nil || err.Error() != tc.wantErr {
				t.Fatalf("%v: expected %q, got %v", tc.args, tc.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%v: unexpected error %v", tc.args, err)
		}
		if config.Port != tc.port {
			t.Fatalf("%v: expected port %d, got %d", tc.args, tc.port, config.Port)
		}
	}
}

func TestParseArgsPrecedence(t *testing.T) {
	clearRenjuEnv(t)
	path := filepath.Join(t.TempDir(), "bot.json")
	body := `{"team_name":"FILE TEAM","http_addr":":7000","move_timeout_ms":3000}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("RENJU_TEAM_NAME", "ENV TEAM")

	config, err := parseArgs([]string{"-p9000", "-config=" + path, "-http=:7100", "-log-level=debug"}, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if config.TeamName != "ENV TEAM" {
		t.Fatalf("expected environment to override file, got %q", config.TeamName)
	}
	if config.HTTPAddr != ":7100" {
		t.Fatalf("expected flag to override file, got %q", config.HTTPAddr)
	}
	if config.MoveTimeoutMs != 3000 || config.LogLevel != "debug" || config.Port != 9000 {
		t.Fatalf("unexpected config %+v", config)
	}
}

func TestParseArgsRejectsUnknownFlag(t *testing.T) {
	clearRenjuEnv(t)
	if _, err := parseArgs([]string{"-p9000", "-bogus"}, DefaultConfig()); err == nil {
		t.Fatalf("expected unknown flag to fail")
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfigFile(filepath.Join(dir, "missing.json"), DefaultConfig()); err == nil {
		t.Fatalf("expected missing file error")
	}
	path := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	base := DefaultConfig()
	config, err := LoadConfigFile(path, base)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if config != base {
		t.Fatalf("expected base config back on error")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must be valid: %v", err)
	}
	bad := DefaultConfig()
	bad.MaxDepth = 0
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected max_depth error")
	}
	bad = DefaultConfig()
	bad.Port = 80
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected port error")
	}
}

func TestApplyEnvIgnoresBadNumbers(t *testing.T) {
	clearRenjuEnv(t)
	t.Setenv("RENJU_MOVE_TIMEOUT_MS", "soon")
	t.Setenv("RENJU_EVAL_CACHE_SIZE", "128")
	config := ApplyEnv(DefaultConfig())
	if config.MoveTimeoutMs != 5000 || config.EvalCacheSize != 128 {
		t.Fatalf("unexpected config %+v", config)
	}
}
