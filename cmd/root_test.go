package cmd

import (
	"context"
	"strings"
	"testing"

	"sockui/internal/errors"
)

// TestExecute_Version verifies --version prints a version string.
func TestExecute_Version(t *testing.T) {
	// Execute with --version should not return an error (it prints and exits).
	err := Execute(context.Background(), []string{"--version"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecute_Help verifies --help (and no args) returns without error.
func TestExecute_Help(t *testing.T) {
	for _, args := range [][]string{{"--help"}, {}} {
		name := "no-args"
		if len(args) > 0 {
			name = args[0]
		}
		t.Run(name, func(t *testing.T) {
			err := Execute(context.Background(), args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

// TestExecute_DryRun verifies --dry-run validates and exits cleanly.
func TestExecute_DryRun(t *testing.T) {
	tests := [][]string{
		{"-l", "--dry-run"},
		{"-l", "-p", "8080", "--dry-run"},
		{"-l", "7000", "--dry-run"},
		{"-l", "--scratch-buf", "16", "--size-delay", "250ms", "--size-attempts", "3", "--dry-run"},
		{"-l", "--interval", "1s", "--rows", "10", "--cols", "40", "--quit-key", "x", "--dry-run"},
		{"localhost", "6969", "--dry-run"},
		{"-w", "3", "--no-raw", "127.0.0.1", "6969", "--dry-run"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if err := Execute(context.Background(), args); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

// TestExecute_DryRunInvalid verifies --dry-run still catches bad configs.
func TestExecute_DryRunInvalid(t *testing.T) {
	tests := []struct {
		args  []string
		field string
	}{
		{[]string{"-l", "-p", "0", "--dry-run"}, "port"},
		{[]string{"-l", "--scratch-buf", "8", "--dry-run"}, "scratch-buf"},
		{[]string{"-l", "--size-attempts", "0", "--dry-run"}, "size-attempts"},
		{[]string{"-l", "--quit-key", "\x0c", "--dry-run"}, "quit-key"},
		{[]string{"-l", "--quit-key", "qq", "--dry-run"}, "quit-key"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			err := Execute(context.Background(), tt.args)
			var ce *errors.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

// TestExecute_PositionalErrors verifies connect-mode argument checks.
func TestExecute_PositionalErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no host", []string{"--dry-run"}, "hostname required"},
		{"no port", []string{"localhost", "--dry-run"}, "port required"},
		{"bad port", []string{"localhost", "http", "--dry-run"}, "invalid port"},
		{"extra", []string{"localhost", "1", "2", "--dry-run"}, "too many arguments"},
		{"listen extra", []string{"-l", "1", "2", "--dry-run"}, "too many arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Execute(context.Background(), tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

// TestExecute_EnvOverlay verifies SOCKUI_* variables feed the flags'
// defaults and flags still win.
func TestExecute_EnvOverlay(t *testing.T) {
	t.Setenv("SOCKUI_SCRATCH_BUF", "8")
	err := Execute(context.Background(), []string{"-l", "--dry-run"})
	if err == nil {
		t.Fatal("expected the env scratch size to fail validation")
	}

	err = Execute(context.Background(), []string{"-l", "--scratch-buf", "64", "--dry-run"})
	if err != nil {
		t.Fatalf("flag should override env: %v", err)
	}
}

// TestExecute_InvalidFlags verifies unknown flags produce an error.
func TestExecute_InvalidFlags(t *testing.T) {
	err := Execute(context.Background(), []string{"--nonexistent-flag"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
}
