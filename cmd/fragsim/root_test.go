package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newTestCmd builds the root command wired to buffers and an isolated
// config path so tests never touch the user's real configuration.
func newTestCmd(t *testing.T, args ...string) (*testCmdHarness, error) {
	t.Helper()

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	cmd.SetArgs(append(args, "--config", configPath))

	err := cmd.Execute()
	return &testCmdHarness{buf: buf, configPath: configPath}, err
}

type testCmdHarness struct {
	buf        *bytes.Buffer
	configPath string
}

func TestRootCommand_RunsWithDefaults(t *testing.T) {
	h, err := newTestCmd(t, "--simple")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Config default path is 1500,576,1500.
	if !strings.Contains(h.buf.String(), "Network Hop 3") {
		t.Errorf("expected three hops from default path, got:\n%s", h.buf.String())
	}
}

func TestRootCommand_ParsesPacketFlags(t *testing.T) {
	h, err := newTestCmd(t, "--simple", "-p", "1500", "-H", "20", "-m", "1500,576")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := h.buf.String()
	if !strings.Contains(out, "1500-byte packet (20 header + 1480 data)") {
		t.Errorf("expected packet summary, got:\n%s", out)
	}
	if !strings.Contains(out, "MTU path: 1500 -> 576") {
		t.Errorf("expected MTU path, got:\n%s", out)
	}
}

func TestRootCommand_FragmentIDFlag(t *testing.T) {
	h, err := newTestCmd(t, "--simple", "-m", "1500", "--fragment-id", "4242")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(h.buf.String(), "ID 4242") {
		t.Errorf("expected fragment ID in output, got:\n%s", h.buf.String())
	}
}

func TestRootCommand_RejectsOversizedFragmentID(t *testing.T) {
	_, err := newTestCmd(t, "--simple", "--fragment-id", "70000")

	if err == nil {
		t.Fatal("expected error for fragment ID beyond 16 bits")
	}
}

func TestRootCommand_DryRunValidates(t *testing.T) {
	h, err := newTestCmd(t, "--dry-run", "-p", "1500", "-m", "1500,576")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(h.buf.String(), "inputs valid") {
		t.Errorf("expected dry-run confirmation, got:\n%s", h.buf.String())
	}
}

func TestRootCommand_DryRunReportsInvalidInput(t *testing.T) {
	_, err := newTestCmd(t, "--dry-run", "-p", "10")

	if err == nil {
		t.Fatal("expected error for undersized packet")
	}
}

func TestRootCommand_RejectsMalformedMTUPath(t *testing.T) {
	_, err := newTestCmd(t, "--simple", "-m", "1500,abc")

	if err == nil {
		t.Fatal("expected error for malformed MTU path")
	}
	if !strings.Contains(err.Error(), "abc") {
		t.Errorf("error should name the bad MTU, got: %v", err)
	}
}

func TestRootCommand_RejectsInvalidFormat(t *testing.T) {
	_, err := newTestCmd(t, "--simple", "--format", "xml")

	if err == nil {
		t.Fatal("expected error for invalid format")
	}
}

func TestRootCommand_CompareMode(t *testing.T) {
	h, err := newTestCmd(t, "-m", "1500,576", "--compare", "1500,1500")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := h.buf.String()
	if !strings.Contains(out, "Path A: 1500 -> 576") {
		t.Errorf("expected path A in comparison, got:\n%s", out)
	}
	if !strings.Contains(out, "Path B: 1500 -> 1500") {
		t.Errorf("expected path B in comparison, got:\n%s", out)
	}
}

func TestRootCommand_ExportsToFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "report.json")
	h, err := newTestCmd(t, "--simple", "-m", "1500,576", "-o", outPath)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(h.buf.String(), "Report exported to "+outPath) {
		t.Errorf("expected export confirmation, got:\n%s", h.buf.String())
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.Contains(string(data), "\"fragmentId\"") {
		t.Error("expected JSON export content")
	}
}

func TestRootCommand_ReadsConfigDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "default_packet_size: 4000\ndefault_mtu_path: \"1500,576\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--simple", "--config", configPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "4000-byte packet") {
		t.Errorf("expected config default packet size, got:\n%s", buf.String())
	}
}

func TestRootCommand_FlagsOverrideConfig(t *testing.T) {
	h, err := newTestCmd(t, "--simple", "-p", "2000", "-m", "1500")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(h.buf.String(), "2000-byte packet") {
		t.Errorf("expected flag to win over config default, got:\n%s", h.buf.String())
	}
}

func TestRootCommand_DefaultValues(t *testing.T) {
	cmd := NewRootCmd()

	simple, _ := cmd.Flags().GetBool("simple")
	if simple {
		t.Error("expected simple to be false by default (TUI mode)")
	}

	fragmentID, _ := cmd.Flags().GetInt("fragment-id")
	if fragmentID != 0 {
		t.Errorf("expected fragment-id 0 (generated), got %d", fragmentID)
	}

	format, _ := cmd.Flags().GetString("format")
	if format != "" {
		t.Errorf("expected empty format (detect from extension), got %q", format)
	}
}

func TestParseMTUPath_Valid(t *testing.T) {
	tests := []struct {
		input    string
		expected []int
	}{
		{"1500", []int{1500}},
		{"1500,576,1500", []int{1500, 576, 1500}},
		{" 1500 , 576 ", []int{1500, 576}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			path, err := parseMTUPath(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(path) != len(tt.expected) {
				t.Fatalf("expected %d hops, got %d", len(tt.expected), len(path))
			}
			for i := range path {
				if path[i] != tt.expected[i] {
					t.Errorf("hop %d: expected %d, got %d", i, tt.expected[i], path[i])
				}
			}
		})
	}
}

func TestParseMTUPath_Invalid(t *testing.T) {
	for _, input := range []string{"", "  ", "1500,,576", "1500,abc"} {
		t.Run(input, func(t *testing.T) {
			if _, err := parseMTUPath(input); err == nil {
				t.Errorf("expected error for %q", input)
			}
		})
	}
}

func TestNewLogger_BuildsBothModes(t *testing.T) {
	quiet, err := newLogger(false)
	if err != nil || quiet == nil {
		t.Fatalf("expected nop logger, got %v", err)
	}

	verbose, err := newLogger(true)
	if err != nil || verbose == nil {
		t.Fatalf("expected development logger, got %v", err)
	}
}

func TestSetupCmd_RegistersSubcommands(t *testing.T) {
	cmd := SetupCmd("1.2.3")

	if cmd.Version != "1.2.3" {
		t.Errorf("expected version to be set, got %q", cmd.Version)
	}

	found := false
	for _, sub := range cmd.Commands() {
		if sub.Name() == "mcp" {
			found = true
		}
	}
	if !found {
		t.Error("expected mcp subcommand to be registered")
	}
}
