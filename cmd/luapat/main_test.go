package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		out  string
	}{
		{"find", []string{"find", "hello world", "o (w)"}, 0, "5\t7\tw\n"},
		{"find init", []string{"find", "--init", "6", "hello world", "o"}, 0, "8\t8\n"},
		{"find plain", []string{"find", "--plain", "a+b", "+"}, 0, "2\t2\n"},
		{"find miss", []string{"find", "hello", "xyz"}, 1, ""},
		{"match", []string{"match", "key=value", "(%a+)=(%a+)"}, 0, "key\tvalue\n"},
		{"match position", []string{"match", "hello", "()ll"}, 0, "3\n"},
		{"match miss", []string{"match", "hello", "%d"}, 1, ""},
		{"gmatch", []string{"gmatch", "one two three", "%a+"}, 0, "one\ntwo\nthree\n"},
		{"gmatch miss", []string{"gmatch", "abc", "%d"}, 1, ""},
		{"gsub", []string{"gsub", "hello world", "(%w+)", "<%1>"}, 0, "<hello> <world>\t2\n"},
		{"gsub max", []string{"gsub", "--max", "1", "hello world", "o", "0"}, 0, "hell0 world\t1\n"},
		{"gsub none", []string{"gsub", "abc", "x", "y"}, 0, "abc\t0\n"},
		{"malformed", []string{"find", "abc", "[a"}, 2, ""},
		{"bad replacement", []string{"gsub", "abc", "a", "%9"}, 2, ""},
		{"missing args", []string{"find", "abc"}, 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := runCLI(t, tt.args...)
			if code != tt.code {
				t.Errorf("exit code = %d, want %d", code, tt.code)
			}
			if out != tt.out {
				t.Errorf("stdout = %q, want %q", out, tt.out)
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	subject := strings.Repeat("a", 30)
	pattern := strings.Repeat("a-", 20) + "b"

	code, _, stderr := runCLI(t, "find", "--timeout", "5ms", "--steps", "1000", subject, pattern)
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr, "time limit exceeded") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestMetricsDump(t *testing.T) {
	code, _, stderr := runCLI(t, "--metrics", "gsub", "a1b2", "%d", "#")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{
		"# TYPE luapat_searches_total counter",
		`luapat_searches_total{op="gsub",outcome="match"} 1`,
		`luapat_matches_total{op="gsub"} 2`,
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("metrics dump missing %q:\n%s", want, stderr)
		}
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "luapat.yaml")
	data := "engine:\n  max_recursion_depth: 1000\nlogging:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	subject := strings.Repeat("a", 300)
	pattern := strings.Repeat("a?", 300)

	if code, _, _ := runCLI(t, "match", subject, pattern); code != 2 {
		t.Errorf("default depth: exit code = %d, want 2", code)
	}
	code, out, _ := runCLI(t, "--config", path, "match", subject, pattern)
	if code != 0 || out != subject+"\n" {
		t.Errorf("configured depth: exit code = %d, stdout %q", code, out)
	}

	_, _, stderr := runCLI(t, "--config", path, "find", "say hello", "hel+o")
	if !strings.Contains(stderr, `level=DEBUG msg="prefilter selected"`) {
		t.Errorf("debug logging not enabled:\n%s", stderr)
	}

	code, _, stderr = runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "find", "a", "a")
	if code != 2 || !strings.Contains(stderr, "failed to read configuration file") {
		t.Errorf("missing config: exit code = %d, stderr %q", code, stderr)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	code, _, stderr := runCLI(t, "--log-level", "loud", "find", "a", "a")
	if code != 2 || !strings.Contains(stderr, "logging.level") {
		t.Errorf("exit code = %d, stderr %q", code, stderr)
	}
}
