package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// captureOutput redirects user-facing output for the duration of a test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := out
	out = &buf
	t.Cleanup(func() { out = old })
	return &buf
}

// runCLI executes the root command with args and a discarding logger.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeDoc(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()

	for _, name := range []string{"compare", "interactive", "serve", "stats", "cache", "config", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestConfigFlagLoadsFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeDoc(t, dir, "wordcloud.toml", "[filters]\ninfrequent_limit = 7\n")

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "cache", "path"})
	captureOutput(t)
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if c.cfg.Filters.InfrequentLimit != 7 {
		t.Errorf("InfrequentLimit = %d, want 7", c.cfg.Filters.InfrequentLimit)
	}
}

func TestConfigFlagMissingFile(t *testing.T) {
	err := runCLI(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "cache", "path")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestVerboseOverridesConfigLevel(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeDoc(t, dir, "wordcloud.toml", "[logging]\nlevel = \"error\"\n")

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "-v", "cache", "path"})
	captureOutput(t)
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestCompletion(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "wordcloud") {
		t.Error("bash completion does not mention wordcloud")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	buf := captureOutput(t)

	if err := runCLI(t, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "wordcloud.toml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if err := runCLI(t, "config", "init"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("second init err = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}

	buf.Reset()
	if err := runCLI(t, "config", "show"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "infrequent_limit = 100") {
		t.Errorf("config show = %s", buf.String())
	}
}
