package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fmdRecord = "1 ENGLISH 1.0 0.3 0.3 1 0 0 0 0 0 2000 0 0 0 0 0 32 32 32 32 32 32 8000 8000 0.0555 0.01\n"

func writeFMD(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fmd.txt")
	if err := os.WriteFile(path, []byte(fmdRecord), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCalcrosPrintsHeaderAndDataRow(t *testing.T) {
	path := writeFMD(t)
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--fuel_model_fname", path})

	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d output lines, want 2:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "#") {
		t.Errorf("header line = %q, want a leading '#'", lines[0])
	}
	for _, col := range []string{"NUM", "ROS_0", "ROS_MAX", "WAF"} {
		if !strings.Contains(lines[0], col) {
			t.Errorf("header line missing column %q: %q", col, lines[0])
		}
	}
	fields := strings.Fields(lines[1])
	if len(fields) != 14 {
		t.Fatalf("got %d data fields, want 14: %q", len(fields), lines[1])
	}
	if fields[0] != "1" {
		t.Errorf("NUM field = %q, want 1", fields[0])
	}
}

func TestRunCalcrosRejectsUnrecognizedWaf(t *testing.T) {
	path := writeFMD(t)
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--fuel_model_fname", path, "--waf", "bogus"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an unrecognized --waf value")
	}
}

func TestRunCalcrosRequiresFuelModelFname(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when --fuel_model_fname is not given")
	}
}

func TestRunCalcrosRejectsUnknownFuelModelNum(t *testing.T) {
	path := writeFMD(t)
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--fuel_model_fname", path, "--fuel_model_num", "99"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for a fuel model number absent from the file")
	}
}
