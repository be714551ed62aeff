package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mgpai22/srtkit/internal/srt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const sample = "1\n00:00:01,000 --> 00:00:02,000\nHello\n\n" +
	"2\n00:00:03,000 --> 00:00:04,000\nWorld\n\n" +
	"3\n00:00:05,000 --> 00:00:06,000\nBye\n"

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.srt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write sample: %v", err)
	}
	return path
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runs the CLI with args and returns what it printed
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SRTKIT_CONFIG", "")
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheck(t *testing.T) {
	good := writeSample(t, sample)
	out, err := execute(t, "check", good)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "ok (3 cues, ends at 00:00:06,000)") {
		t.Errorf("unexpected output %q", out)
	}

	bad := writeSample(t, strings.Replace(sample, "2\n00:00:03", "5\n00:00:03", 1))
	out, err = execute(t, "check", good, bad)
	if err == nil {
		t.Fatal("expected error for broken numbering")
	}
	if !strings.Contains(out, "cue 2 (index 5): expected index 2") {
		t.Errorf("unexpected output %q", out)
	}

	garbage := writeSample(t, "not a subtitle file")
	out, _ = execute(t, "check", garbage)
	if !strings.Contains(out, "no SRT cues found") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestFmtToStdout(t *testing.T) {
	path := writeSample(t, sample)
	out, err := execute(t, "fmt", path)
	if err != nil {
		t.Fatalf("fmt failed: %v", err)
	}
	if want := srt.Normalize(sample) + "\r\n\r\n"; out != want {
		t.Errorf("fmt output = %q, want %q", out, want)
	}
}

func TestFmtWrite(t *testing.T) {
	path := writeSample(t, sample)
	if _, err := execute(t, "fmt", path, "--write"); err != nil {
		t.Fatalf("fmt failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != srt.Normalize(sample)+"\r\n\r\n" {
		t.Errorf("file not rewritten in canonical form: %q", data)
	}
}

func TestShift(t *testing.T) {
	path := writeSample(t, sample)
	outPath := filepath.Join(t.TempDir(), "out.srt")

	if _, err := execute(t, "shift", path, "--by", "1.5s", "-o", outPath); err != nil {
		t.Fatalf("shift failed: %v", err)
	}
	subs, err := srt.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := subs.ByIndex(1).Start.String(); got != "00:00:02,500" {
		t.Errorf("first cue start = %s", got)
	}
	if got := subs.ByIndex(3).End.String(); got != "00:00:07,500" {
		t.Errorf("last cue end = %s", got)
	}
}

func TestShiftRangeAndNegative(t *testing.T) {
	path := writeSample(t, sample)

	out, err := execute(t, "shift", path, "--by", "-00:00:00,500", "--from", "2", "--to", "3")
	if err != nil {
		t.Fatalf("shift failed: %v", err)
	}
	subs, err := srt.Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := subs.ByIndex(1).Start.String(); got != "00:00:01,000" {
		t.Errorf("cue outside range moved: %s", got)
	}
	if got := subs.ByIndex(2).Start.String(); got != "00:00:02,500" {
		t.Errorf("cue 2 start = %s", got)
	}

	if _, err := execute(t, "shift", path, "--by", "-2s", "--write"); !errors.Is(err, srt.ErrNegativeDuration) {
		t.Errorf("expected ErrNegativeDuration, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != sample {
		t.Error("file changed after failed shift")
	}
}

func TestQuery(t *testing.T) {
	path := writeSample(t, sample)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"index", []string{"--index", "2"}, "World"},
		{"time", []string{"--at", "00:00:05,500"}, "Bye"},
		{"duration", []string{"--at", "1.5s"}, "Hello"},
		{"nearest", []string{"--at", "2.5s", "--nearest"}, "Hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"query", path}, tt.args...)...)
			if err != nil {
				t.Fatalf("query failed: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q does not contain %q", out, tt.want)
			}
		})
	}

	if _, err := execute(t, "query", path, "--at", "2.5s"); !errors.Is(err, errNoCue) {
		t.Errorf("expected errNoCue in a gap, got %v", err)
	}
	if _, err := execute(t, "query", path, "--at", "0.5s", "--nearest"); !errors.Is(err, errNoCue) {
		t.Errorf("expected errNoCue before the first cue, got %v", err)
	}
	if _, err := execute(t, "query", path, "--at", "6.001s", "--nearest"); !errors.Is(err, errNoCue) {
		t.Errorf("expected errNoCue after the last cue, got %v", err)
	}
	if _, err := execute(t, "query", path, "--index", "9"); !errors.Is(err, errNoCue) {
		t.Errorf("expected errNoCue for unknown index, got %v", err)
	}
}

func TestInsertAndRemove(t *testing.T) {
	path := writeSample(t, sample)

	out, err := execute(t, "insert", path,
		"--index", "2",
		"--start", "00:00:02,000",
		"--end", "2.5s",
		"--text", `Hi\nthere`,
	)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	subs, err := srt.Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if subs.Len() != 4 {
		t.Fatalf("expected 4 cues, got %d", subs.Len())
	}
	if got := subs.ByIndex(2).Text; got != "Hi\r\nthere" {
		t.Errorf("inserted text = %q", got)
	}
	if got := subs.ByIndex(3).Text; got != "World" {
		t.Errorf("cue 3 text = %q", got)
	}

	if _, err := execute(t, "insert", path, "--index", "2", "--start", "10s", "--end", "11s"); !errors.Is(err, srt.ErrIndexContiguity) {
		t.Errorf("expected ErrIndexContiguity for out-of-order insert, got %v", err)
	}

	out, err = execute(t, "remove", path, "--index", "1")
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	subs, err = srt.Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if subs.Len() != 2 || subs.ByIndex(1).Text != "World" {
		t.Errorf("unexpected result after remove: %q", out)
	}

	if _, err := execute(t, "remove", path, "--index", "4"); !errors.Is(err, srt.ErrIndexContiguity) {
		t.Errorf("expected ErrIndexContiguity for missing index, got %v", err)
	}
}

func TestTranslateRequiresAPIKey(t *testing.T) {
	path := writeSample(t, sample)
	t.Setenv("GEMINI_API_KEY", "")

	_, err := execute(t, "translate", path, "-t", "spanish")
	if err == nil || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("expected missing key error, got %v", err)
	}

	_, err = execute(t, "translate", path, "-t", "spanish", "-l", "Spanish")
	if err == nil || !strings.Contains(err.Error(), "cannot be the same") {
		t.Errorf("expected same-language error, got %v", err)
	}

	_, err = execute(t, "translate", path, "-t", "spanish", "--provider", "bogus")
	if err == nil || !strings.Contains(err.Error(), "unsupported provider") {
		t.Errorf("expected provider error, got %v", err)
	}
}

func TestConfigFileSetsProvider(t *testing.T) {
	path := writeSample(t, sample)
	cfgPath := filepath.Join(t.TempDir(), "srtkit.yaml")
	if err := os.WriteFile(cfgPath, []byte("translate:\n  provider: anthropic\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := execute(t, "--config", cfgPath, "translate", path, "-t", "french")
	if err == nil || !strings.Contains(err.Error(), "ANTHROPIC_API_KEY") {
		t.Errorf("expected anthropic key error, got %v", err)
	}
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"1.5s", 1500 * time.Millisecond},
		{"-250ms", -250 * time.Millisecond},
		{"00:00:01,500", 1500 * time.Millisecond},
		{"-00:01:00,000", -time.Minute},
		{"+01:00:00.000", time.Hour},
	}
	for _, tt := range tests {
		got, err := parseOffset(tt.in)
		if err != nil {
			t.Errorf("parseOffset(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseOffset(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := parseOffset("soon"); err == nil {
		t.Error("expected error for invalid offset")
	}
}

func TestParseTime(t *testing.T) {
	got, err := parseTime("62.5s")
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "00:01:02,500" {
		t.Errorf("parseTime = %s", got)
	}

	if _, err := parseTime("-1s"); err == nil {
		t.Error("expected error for negative time")
	}
	if _, err := parseTime("later"); err == nil {
		t.Error("expected error for invalid time")
	}
}

func TestSiblingPath(t *testing.T) {
	tests := []struct {
		path, suffix, ext, want string
	}{
		{"movie.srt", "es", ".srt", "movie.es.srt"},
		{"dir/movie.srt", "es.overlay", ".srt", "dir/movie.es.overlay.srt"},
		{"movie.mkv", "", ".srt", "movie.srt"},
		{"movie", "subtitled", ".mkv", "movie.subtitled.mkv"},
	}
	for _, tt := range tests {
		if got := siblingPath(tt.path, tt.suffix, tt.ext); got != tt.want {
			t.Errorf("siblingPath(%q, %q, %q) = %q, want %q", tt.path, tt.suffix, tt.ext, got, tt.want)
		}
	}
}

func TestEmbedRejectsInvalidSubtitles(t *testing.T) {
	bad := writeSample(t, "nothing here")
	_, err := execute(t, "embed", "movie.mkv", bad)
	if !errors.Is(err, srt.ErrNotSrtFormat) {
		t.Errorf("expected ErrNotSrtFormat, got %v", err)
	}
}
