package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestConvertCommand(t *testing.T) {
	tt := []struct {
		name string
		file string
		src  string
		args []string
		want string
	}{
		{
			name: "java file by extension",
			file: "sample.java",
			src:  "int x = 5;\n",
			want: "DECLARE x : INTEGER\nx ← 5\n",
		},
		{
			name: "typescript file by extension",
			file: "sample.ts",
			src:  "let done = false;\n",
			want: "DECLARE done : BOOLEAN\ndone ← FALSE\n",
		},
		{
			name: "explicit lang flag",
			file: "sample.txt",
			src:  "int x = 5;\n",
			args: []string{"--lang", "java"},
			want: "DECLARE x : INTEGER\nx ← 5\n",
		},
		{
			name: "indent flag",
			file: "loop.java",
			src:  "while (x < 3) { x++; }\n",
			args: []string{"--indent", "2"},
			want: "WHILE x < 3 DO\n  x ← x + 1\nENDWHILE\n",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSource(t, tc.file, tc.src)
			var stdout, stderr bytes.Buffer
			cmd := makeRootCmd("test", &stdout, &stderr)
			cmd.SetArgs(append([]string{"convert", path}, tc.args...))
			if err := cmd.Execute(); err != nil {
				t.Fatalf("convert failed: %v", err)
			}
			if got := stdout.String(); got != tc.want {
				t.Fatalf("got:\n%s\nwant:\n%s", got, tc.want)
			}
		})
	}
}

func TestConvertCommandReportsFailures(t *testing.T) {
	path := writeSource(t, "broken.java", "int x = ;\n")
	var stdout, stderr bytes.Buffer
	cmd := makeRootCmd("test", &stdout, &stderr)
	cmd.SetArgs([]string{"convert", path})
	err := cmd.Execute()
	if err == nil {
		t.Fatalf("convert succeeded on malformed input")
	}
	if !strings.Contains(err.Error(), "syntax error") {
		t.Fatalf("error does not mention the syntax failure: %v", err)
	}
}

func TestConvertCommandUnknownExtension(t *testing.T) {
	path := writeSource(t, "sample.py", "x = 1\n")
	var stdout, stderr bytes.Buffer
	cmd := makeRootCmd("test", &stdout, &stderr)
	cmd.SetArgs([]string{"convert", path})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("convert succeeded without a usable language")
	}
}

func TestConvertCommandWritesOutFile(t *testing.T) {
	path := writeSource(t, "sample.java", "int x = 5;\n")
	out := filepath.Join(t.TempDir(), "out.txt")
	var stdout, stderr bytes.Buffer
	cmd := makeRootCmd("test", &stdout, &stderr)
	cmd.SetArgs([]string{"convert", path, "--out", out})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading %s: %v", out, err)
	}
	if want := "DECLARE x : INTEGER\nx ← 5"; string(data) != want {
		t.Fatalf("got:\n%s\nwant:\n%s", data, want)
	}
	if stdout.Len() != 0 {
		t.Fatalf("stdout not empty with --out: %q", stdout.String())
	}
}

func TestReindentCommand(t *testing.T) {
	path := writeSource(t, "flat.pseudo", "IF x > 0 THEN\nOUTPUT x\nENDIF\n")
	var stdout, stderr bytes.Buffer
	cmd := makeRootCmd("test", &stdout, &stderr)
	cmd.SetArgs([]string{"reindent", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("reindent failed: %v", err)
	}
	want := "IF x > 0 THEN\n   OUTPUT x\nENDIF\n\n"
	if got := stdout.String(); got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestVersionCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := makeRootCmd("1.2.3", &stdout, &stderr)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "1.2.3" {
		t.Fatalf("got %q, want 1.2.3", got)
	}
}

func TestExecuteExitCodes(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := writeSource(t, "sample.java", "int x = 5;\n")

	os.Args = []string{"java2igcse", "convert", path}
	if code := Execute("test", &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, want 0 (stderr: %s)", code, stderr.String())
	}

	os.Args = []string{"java2igcse", "convert", "/does/not/exist.java"}
	if code := Execute("test", &stdout, &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
}
