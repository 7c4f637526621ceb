package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pinball/internal/games/pinball"
)

func TestConfigureTableRejectsBadConfig(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "pinball.yaml")
	if err := os.WriteFile(bad, []byte("balls: [not a number\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		flagConfig = ""
		_ = pinball.SetConfigPath("")
	})

	flagConfig = bad
	err := configureTable()
	if err == nil || !strings.Contains(err.Error(), "invalid --config") {
		t.Fatalf("configureTable() = %v, want invalid --config error", err)
	}

	flagConfig = filepath.Join(t.TempDir(), "missing.yaml")
	if err := configureTable(); err == nil {
		t.Fatal("missing config file should fail")
	}
}
