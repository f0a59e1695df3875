package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// cbr returns n MPEG-1 Layer III frames at 160 kbps, 44.1 kHz.
func cbr(n int) []byte {
	var data []byte
	for i := 0; i < n; i++ {
		data = append(data, 0xFF, 0xFB, 0xA0, 0x00)
		data = append(data, make([]byte, 518)...)
	}
	return data
}

func TestRun(t *testing.T) {
	song := writeFile(t, "song.mp3", cbr(38))
	text := writeFile(t, "notes.txt", []byte("hello"))

	var stdout, stderr bytes.Buffer
	if code := run([]string{song, text}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr.String())
	}
	want := song + "\t1\n" + text + "\t0\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestRunVerbose(t *testing.T) {
	song := writeFile(t, "song.mp3", cbr(1000))

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-v", "-decode", song}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	out := stdout.String()
	for _, want := range []string{song + "\t26\t", "160 kbps", "44100 Hz", "1000 frames", "decoded 26.", "s\t1000 frames"} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout %q missing %q", out, want)
		}
	}
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 2 {
		t.Errorf("no args: exit code %d, want 2", code)
	}
	if code := run([]string{"-nope"}, &stdout, &stderr); code != 2 {
		t.Errorf("bad flag: exit code %d, want 2", code)
	}
	missing := filepath.Join(t.TempDir(), "missing.mp3")
	if code := run([]string{missing}, &stdout, &stderr); code != 1 {
		t.Errorf("missing file: exit code %d, want 1", code)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv(EnvDebug, "true")
	if !envBool(EnvDebug, false) {
		t.Error("true not parsed")
	}
	t.Setenv(EnvDebug, "maybe")
	if envBool(EnvDebug, false) {
		t.Error("garbage did not fall back")
	}
}

func TestRunLogsToStderr(t *testing.T) {
	text := writeFile(t, "notes.txt", []byte("hello"))
	missing := filepath.Join(t.TempDir(), "missing.mp3")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-debug", text, missing}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if want := text + "\t0\n"; stdout.String() != want {
		t.Errorf("stdout = %q, want only %q", stdout.String(), want)
	}
	errOut := stderr.String()
	if !strings.Contains(errOut, "WARN") || !strings.Contains(errOut, missing) {
		t.Errorf("stderr %q missing warning for %s", errOut, missing)
	}
	if !strings.Contains(errOut, "no frames in") {
		t.Errorf("stderr %q missing debug line", errOut)
	}
}
