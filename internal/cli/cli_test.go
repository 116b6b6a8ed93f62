package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/slidie/pkg/deck"
	"github.com/matzehuels/slidie/pkg/observability"
	"github.com/matzehuels/slidie/pkg/render"
)

var slideLayers = []string{
	"Background",
	"Intro <+> @intro",
	"Bullet <+>",
	"Bullet <+>",
	"Highlight <@intro.after-> @hl",
	"Summary <@hl.end>",
}

// setup writes a config file pointing the cache into a temp dir and a deck
// file, returning the deck path and the cache dir.
func setup(t *testing.T, layers []string) (deckPath, cacheDir string) {
	t.Helper()
	dir := t.TempDir()
	cacheDir = filepath.Join(dir, "cache")

	cfg := "cache:\n  dir: " + cacheDir + "\n"
	cfgPath := filepath.Join(dir, "slidie.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SLIDIE_CONFIG_PATH", cfgPath)

	deckPath = filepath.Join(dir, "slide.txt")
	if err := os.WriteFile(deckPath, []byte(strings.Join(layers, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return deckPath, cacheDir
}

// execute runs the CLI with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestStepsText(t *testing.T) {
	path, _ := setup(t, slideLayers)

	out, err := execute(t, "steps", path, "--no-color", "--no-cache")
	if err != nil {
		t.Fatalf("steps: %v", err)
	}
	for _, want := range []string{"Layer", "Background", "Intro <+> @intro", "●", "*"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStepsJSON(t *testing.T) {
	path, _ := setup(t, slideLayers)

	out, err := execute(t, "steps", path, "--format", "json")
	if err != nil {
		t.Fatalf("steps: %v", err)
	}

	var report render.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("unmarshal report: %v\n%s", err, out)
	}
	if report.Deck != "slide" {
		t.Errorf("deck = %q, want %q", report.Deck, "slide")
	}
	if got := report.Layers[4].Steps; len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("Highlight steps = %v, want [2 3]", got)
	}
	if report.Layers[0].Steps != nil {
		t.Errorf("Background steps = %v, want null", report.Layers[0].Steps)
	}
}

func TestStepsCachedOutputMatches(t *testing.T) {
	path, cacheDir := setup(t, slideLayers)

	first, err := execute(t, "steps", path, "--format", "json")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := os.Stat(cacheDir); err != nil {
		t.Fatalf("cache dir not created: %v", err)
	}
	second, err := execute(t, "steps", path, "--format", "json")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first != second {
		t.Errorf("cached output differs:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestStepsOutputFile(t *testing.T) {
	path, _ := setup(t, slideLayers)
	outPath := filepath.Join(t.TempDir(), "report.json")

	out, err := execute(t, "steps", path, "-f", "json", "-o", outPath, "--no-cache")
	if err != nil {
		t.Fatalf("steps: %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Errorf("output file is not JSON:\n%s", data)
	}
}

func TestStepsErrors(t *testing.T) {
	tests := []struct {
		name   string
		layers []string
		args   []string
		want   string
	}{
		{"bad format", slideLayers, []string{"--format", "dot"}, "invalid format"},
		{"unknown tag", []string{"A <@nope>"}, nil, "nope"},
		{"cycle", []string{"A <@b> @a", "B <@a> @b"}, nil, "cyclic"},
		{"parse error", []string{"A <x>"}, nil, `invalid step "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, _ := setup(t, tt.layers)
			_, err := execute(t, append([]string{"steps", path, "--no-cache"}, tt.args...)...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(strings.ToLower(FormatError(err)), strings.ToLower(tt.want)) {
				t.Errorf("FormatError() = %q, want it to contain %q", FormatError(err), tt.want)
			}
		})
	}
}

func TestStepsMissingDeck(t *testing.T) {
	setup(t, slideLayers)
	if _, err := execute(t, "steps", filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing deck")
	}
}

func TestGraphDOT(t *testing.T) {
	path, _ := setup(t, slideLayers)

	out, err := execute(t, "graph", path, "--no-cache")
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	for _, want := range []string{"digraph G", `"@intro"`, `"@hl"`, "L4 -> L1"} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT missing %q:\n%s", want, out)
		}
	}
}

func TestGraphCyclicDeck(t *testing.T) {
	path, _ := setup(t, []string{"A <@b> @a", "B <@a> @b"})

	out, err := execute(t, "graph", path, "--no-cache", "--detailed")
	if err != nil {
		t.Fatalf("graph of cyclic deck: %v", err)
	}
	if !strings.Contains(out, "L0 -> L1") || !strings.Contains(out, "L1 -> L0") {
		t.Errorf("DOT missing cycle edges:\n%s", out)
	}
}

func TestGraphFormat(t *testing.T) {
	tests := []struct {
		format, output, want string
	}{
		{"", "", "dot"},
		{"", "out.svg", "svg"},
		{"", "out.SVG", "svg"},
		{"", "out.dot", "dot"},
		{"SVG", "", "svg"},
		{"dot", "out.svg", "dot"},
	}
	for _, tt := range tests {
		if got := graphFormat(tt.format, tt.output); got != tt.want {
			t.Errorf("graphFormat(%q, %q) = %q, want %q", tt.format, tt.output, got, tt.want)
		}
	}
}

func TestConvert(t *testing.T) {
	path, _ := setup(t, slideLayers)
	outPath := filepath.Join(t.TempDir(), "slide.yaml")

	if _, err := execute(t, "convert", path, outPath); err != nil {
		t.Fatalf("convert: %v", err)
	}
	d, err := deck.Load(outPath)
	if err != nil {
		t.Fatalf("load converted deck: %v", err)
	}
	if d.Name != "slide" {
		t.Errorf("name = %q, want %q", d.Name, "slide")
	}
	if strings.Join(d.Layers, "|") != strings.Join(slideLayers, "|") {
		t.Errorf("layers = %q, want %q", d.Layers, slideLayers)
	}
}

func TestConvertStdout(t *testing.T) {
	path, _ := setup(t, slideLayers)

	if _, err := execute(t, "convert", path, "-"); err == nil {
		t.Error("expected error without --to")
	}

	out, err := execute(t, "convert", path, "-", "--to", "json")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	d, err := deck.Read(strings.NewReader(out), deck.FormatJSON)
	if err != nil {
		t.Fatalf("read converted deck: %v", err)
	}
	if len(d.Layers) != len(slideLayers) {
		t.Errorf("got %d layers, want %d", len(d.Layers), len(slideLayers))
	}
}

func TestConvertChecksBuilds(t *testing.T) {
	path, _ := setup(t, []string{"A <@missing>"})
	outPath := filepath.Join(t.TempDir(), "slide.json")

	if _, err := execute(t, "convert", path, outPath); err == nil {
		t.Error("expected error for unknown tag")
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Error("output written despite failed check")
	}
	if _, err := execute(t, "convert", path, outPath, "--no-check"); err != nil {
		t.Errorf("convert --no-check: %v", err)
	}
}

func TestCachePath(t *testing.T) {
	_, cacheDir := setup(t, slideLayers)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out); got != cacheDir {
		t.Errorf("cache path = %q, want %q", got, cacheDir)
	}
}

func TestCacheClear(t *testing.T) {
	path, cacheDir := setup(t, slideLayers)

	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("clear empty cache: %v", err)
	}
	if _, err := execute(t, "steps", path, "--format", "json"); err != nil {
		t.Fatalf("steps: %v", err)
	}
	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	var files int
	filepath.Walk(cacheDir, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files++
		}
		return nil
	})
	if files != 0 {
		t.Errorf("%d files left in cache after clear", files)
	}
}

func TestCompletion(t *testing.T) {
	setup(t, slideLayers)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out, "slidie") {
				t.Errorf("completion script does not mention slidie")
			}
		})
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestLoadConfigLogLevel(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "slidie.yaml")
	if err := os.WriteFile(cfgPath, []byte("log:\n  level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SLIDIE_CONFIG_PATH", cfgPath)

	c := New(io.Discard, LogInfo)
	if err := c.LoadConfig(); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got := c.Logger.GetLevel(); got != LogDebug {
		t.Errorf("level = %v, want %v", got, LogDebug)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "slidie.yaml")
	if err := os.WriteFile(cfgPath, []byte("output:\n  format: svg\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SLIDIE_CONFIG_PATH", cfgPath)

	if _, err := execute(t, "cache", "path"); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestVersion(t *testing.T) {
	setup(t, slideLayers)
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "slidie ") || !strings.Contains(out, "commit: ") {
		t.Errorf("version output = %q", out)
	}
}

func TestSyntax(t *testing.T) {
	setup(t, slideLayers)

	out, err := execute(t, "syntax")
	if err != nil {
		t.Fatalf("syntax: %v", err)
	}
	if out != syntaxGuide {
		t.Error("syntax should print the raw guide when not writing to a terminal")
	}
	for _, want := range []string{"<+>", "@intro.after", "slidie graph"} {
		if !strings.Contains(out, want) {
			t.Errorf("guide missing %q", want)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := renderMarkdown(syntaxGuide, glamour.WithStandardStyle("notty"))
	if err != nil {
		t.Fatalf("renderMarkdown: %v", err)
	}
	if !strings.Contains(out, "Build annotations") {
		t.Errorf("rendered guide missing heading:\n%s", out)
	}
	if out == syntaxGuide {
		t.Error("renderMarkdown returned its input unchanged")
	}
}

func TestCheck(t *testing.T) {
	good, _ := setup(t, slideLayers)
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("A <@b> @a\nB <@a> @b\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.txt")

	out, err := execute(t, "check", good, bad, missing, "-j", "2")
	if err == nil || !strings.Contains(err.Error(), "2 of 3 decks failed") {
		t.Errorf("error = %v, want 2 of 3 decks failed", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], good) || !strings.Contains(lines[0], "6 layers, 4 steps") {
		t.Errorf("line 1 = %q, want %s with counts", lines[0], good)
	}
	if !strings.Contains(lines[1], bad) || !strings.Contains(lines[1], "cyclic") {
		t.Errorf("line 2 = %q, want cycle error for %s", lines[1], bad)
	}
	if !strings.Contains(lines[2], missing) {
		t.Errorf("line 3 = %q, want error for %s", lines[2], missing)
	}
}

func TestCheckAllValid(t *testing.T) {
	path, _ := setup(t, slideLayers)
	if _, err := execute(t, "check", path, path); err != nil {
		t.Errorf("check: %v", err)
	}
}

func TestMetricsFile(t *testing.T) {
	path, _ := setup(t, slideLayers)
	metricsPath := filepath.Join(t.TempDir(), "slidie.prom")
	defer observability.Reset()

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"steps", path, "--format", "json", "--metrics-file", metricsPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("steps: %v", err)
	}
	if err := c.WriteMetrics(); err != nil {
		t.Fatalf("WriteMetrics: %v", err)
	}

	data, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "slidie_layers_loaded_total 6") {
		t.Errorf("metrics missing layer count:\n%s", data)
	}
}

func TestWriteMetricsDisabled(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	if err := c.WriteMetrics(); err != nil {
		t.Errorf("WriteMetrics without --metrics-file: %v", err)
	}
}
