package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seglabco/segtok/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "segtok" {
		t.Errorf("expected Use to be 'segtok', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expectedSubcommands := []string{"run", "languages", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestRunCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	runCmd, _, err := cmd.Find([]string{"run"})
	if err != nil {
		t.Fatalf("run command not found: %v", err)
	}

	for _, name := range []string{"language", "format", "output"} {
		if runCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected run command to have flag %q", name)
		}
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	return out.String(), err
}

func TestRunFromStdinTextFormat(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "Hello, world.", "run")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if want := "Hello , world .\n"; out != want {
		t.Errorf("expected output %q, got %q", want, out)
	}
}

func TestRunFromFileJSONFormat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("One sentence. Another one."), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "run", "-f", "json", path)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var doc struct {
		Language   string `json:"language"`
		Paragraphs []struct {
			TextUnits []struct {
				Tokens []struct {
					Image string `json:"image"`
					Class string `json:"class"`
				} `json:"tokens"`
			} `json:"text_units"`
		} `json:"paragraphs"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}

	if doc.Language != "default" {
		t.Errorf("expected language 'default', got %q", doc.Language)
	}
	if len(doc.Paragraphs) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(doc.Paragraphs))
	}
	if units := len(doc.Paragraphs[0].TextUnits); units != 2 {
		t.Errorf("expected 2 text units, got %d", units)
	}
}

func TestRunWritesOutputFile(t *testing.T) {
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), "tokens.txt")
	if _, err := execute(t, "Hi there.", "run", "-o", outPath); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if want := "Hi there .\n"; string(data) != want {
		t.Errorf("expected file content %q, got %q", want, string(data))
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "text", "run", "-f", "xml")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if got := cli.ExitCode(err); got != cli.ExitUsage {
		t.Errorf("expected exit code %d, got %d", cli.ExitUsage, got)
	}
}

func TestRunRejectsBinaryInput(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "\x00\x01\xff\xfe\x00", "run")
	if err == nil {
		t.Fatal("expected error for binary input")
	}
	if got := cli.ExitCode(err); got != cli.ExitError {
		t.Errorf("expected exit code %d, got %d", cli.ExitError, got)
	}
}

func TestRunUnknownLanguageFallsBack(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "Hello.", "run", "-l", "xx")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := "Hello .\n"; out != want {
		t.Errorf("expected fallback output %q, got %q", want, out)
	}
}

func TestLanguagesCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "languages")
	if err != nil {
		t.Fatalf("languages failed: %v", err)
	}
	if !strings.Contains(out, "default") {
		t.Errorf("expected languages output to list 'default', got %q", out)
	}
}

func TestLanguagesCommandClasses(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "languages", "--classes")
	if err != nil {
		t.Fatalf("languages --classes failed: %v", err)
	}
	for _, class := range []string{"TOKEN", "TERM_PUNCT", "ENCLITIC", "B_ABBREVIATION", "NUMBER"} {
		if !strings.Contains(out, class) {
			t.Errorf("expected class inventory to contain %q, got %q", class, out)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	if got := cli.ExitCode(nil); got != cli.ExitSuccess {
		t.Errorf("expected %d for nil error, got %d", cli.ExitSuccess, got)
	}
}
