package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stdkit/internal/cli"
	"github.com/yaklabco/stdkit/internal/configloader"
	"github.com/yaklabco/stdkit/pkg/dotenv"
	"github.com/yaklabco/stdkit/pkg/exec"
	"github.com/yaklabco/stdkit/pkg/fsutil"
)

var testInfo = cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}

// run executes the root command with args and returns what it printed.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

// writeConfig writes a config file that keeps tests independent of the
// platform and leaves no backups behind.
func writeConfig(t *testing.T, dir, extra string) string {
	t.Helper()
	path := filepath.Join(dir, "stdkit.yml")
	content := "backups:\n  enabled: false\ndotenv:\n  only_line_feed: true\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)
	assert.Equal(t, "stdkit", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	paths := [][]string{
		{"dotenv"}, {"case"}, {"fold"}, {"ci"}, {"mask"}, {"exec"}, {"init"}, {"version"},
		{"dotenv", "check"}, {"dotenv", "fmt"}, {"dotenv", "get"}, {"dotenv", "set"},
		{"dotenv", "unset"}, {"dotenv", "list"}, {"dotenv", "expand"}, {"dotenv", "watch"},
		{"env", "get"},
	}
	for _, path := range paths {
		sub, _, err := cmd.Find(path)
		if assert.NoError(t, err, "find %v", path) {
			assert.Equal(t, path[len(path)-1], sub.Name())
		}
	}
}

func TestHelp(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "dotenv")
	assert.Contains(t, out, "--debug")
}

func TestDotenvSetGetUnset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := writeConfig(t, dir, "")
	file := filepath.Join(dir, ".env")

	_, err := run(t, "", "dotenv", "set", "--config", cfg, "--file", file, "FOO", "bar")
	require.NoError(t, err)
	assert.Equal(t, "FOO='bar'\n", readFile(t, file))

	_, err = run(t, "", "dotenv", "set", "--config", cfg, "--file", file, "BAZ", "two words")
	require.NoError(t, err)
	assert.Equal(t, "FOO='bar'\nBAZ='two words'\n", readFile(t, file))

	_, err = run(t, "", "dotenv", "set", "--config", cfg, "--file", file, "FOO", "it's")
	require.NoError(t, err)
	assert.Equal(t, "FOO=\"it's\"\nBAZ='two words'\n", readFile(t, file))

	out, err := run(t, "", "dotenv", "get", "--config", cfg, "--file", file, "BAZ")
	require.NoError(t, err)
	assert.Equal(t, "two words\n", out)

	out, err = run(t, "", "dotenv", "get", "--config", cfg, "--file", file, "-i", "baz")
	require.NoError(t, err)
	assert.Equal(t, "two words\n", out)

	_, err = run(t, "", "dotenv", "unset", "--config", cfg, "--file", file, "FOO")
	require.NoError(t, err)
	assert.Equal(t, "BAZ='two words'\n", readFile(t, file))

	_, err = run(t, "", "dotenv", "get", "--config", cfg, "--file", file, "FOO")
	require.ErrorIs(t, err, cli.ErrKeyNotFound)
	assert.Equal(t, cli.ExitIssues, cli.ExitCode(err))

	_, err = run(t, "", "dotenv", "unset", "--config", cfg, "--file", file, "FOO")
	assert.ErrorIs(t, err, cli.ErrKeyNotFound)
}

func TestDotenvSetKeepsComments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := writeConfig(t, dir, "")
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("# db\nHOST='db'\n\n"), 0o644))

	_, err := run(t, "", "dotenv", "set", "--config", cfg, "--file", file, "PORT", "5432")
	require.NoError(t, err)
	assert.Equal(t, "# db\nHOST='db'\nPORT='5432'\n\n", readFile(t, file))
}

func TestDotenvSetInvalidKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := run(t, "", "dotenv", "set", "--config", writeConfig(t, dir, ""),
		"--file", filepath.Join(dir, ".env"), "BAD KEY", "x")
	require.ErrorIs(t, err, cli.ErrUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestDotenvCheckAndFmt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := writeConfig(t, dir, "")
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("A=1\n"), 0o644))

	_, err := run(t, "", "dotenv", "check", "--config", cfg, "--color", "never", file)
	require.ErrorIs(t, err, cli.ErrIssuesFound)

	_, err = run(t, "", "dotenv", "fmt", "--config", cfg, "--color", "never", "--dry-run", file)
	require.ErrorIs(t, err, cli.ErrIssuesFound, "dry run leaves the file unformatted")
	assert.Equal(t, "A=1\n", readFile(t, file))

	_, err = run(t, "", "dotenv", "fmt", "--config", cfg, "--color", "never", file)
	require.NoError(t, err)
	assert.Equal(t, "A='1'\n", readFile(t, file))

	out, err := run(t, "", "dotenv", "check", "--config", cfg, "--format", "json", file)
	require.NoError(t, err)

	var report struct {
		Summary struct {
			FilesChecked int `json:"filesChecked"`
			FilesChanged int `json:"filesChanged"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.Summary.FilesChecked)
	assert.Zero(t, report.Summary.FilesChanged)
}

func TestDotenvCheckInvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := run(t, "", "dotenv", "check", "--format", "xml", t.TempDir())
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestDotenvGetUnparsableFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := writeConfig(t, dir, "")
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("A=1\nbad key=2\n"), 0o644))

	_, err := run(t, "", "dotenv", "get", "--config", cfg, "--file", file, "A")
	require.ErrorIs(t, err, dotenv.ErrInvalidKey)
	assert.Equal(t, cli.ExitIssues, cli.ExitCode(err))
}

func TestDotenvExpand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := writeConfig(t, dir, "")
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("A=x\nB=${A}y\n"), 0o644))

	out, err := run(t, "", "dotenv", "expand", "--config", cfg, "--file", file)
	require.NoError(t, err)
	assert.Equal(t, "A='x'\nB='xy'\n", out)

	out, err = run(t, "", "dotenv", "expand", "--config", cfg, "--file", file, "--export")
	require.NoError(t, err)
	assert.Equal(t, "export A='x'\nexport B='xy'\n", out)
}

func TestDotenvExpandExportQuotesForShell(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := writeConfig(t, dir, "")
	file := filepath.Join(dir, ".env")
	content := "K=\"it's $(echo pwned) `id` \\\\ end\"\nbad.key=1\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	out, err := run(t, "", "dotenv", "expand", "--config", cfg, "--file", file, "--export")
	require.NoError(t, err)
	assert.Equal(t, "export K='it'\\''s $(echo pwned) `id` \\ end'\n", out)
}

func TestDotenvListJSONMasksSecrets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := writeConfig(t, dir, "secrets:\n  env:\n    - TOKEN\n")
	base := filepath.Join(dir, ".env")
	local := filepath.Join(dir, ".env.local")
	require.NoError(t, os.WriteFile(base, []byte("USER=bob\nTOKEN=s3cret\n"), 0o644))
	require.NoError(t, os.WriteFile(local, []byte("USER=alice\n"), 0o644))

	out, err := run(t, "", "dotenv", "list", "--config", cfg, "--file", base, "--file", local, "--json")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]string{"USER": "alice", "TOKEN": "*******"}, got)

	out, err = run(t, "", "dotenv", "list", "--config", cfg, "--file", base, "--file", local,
		"--color", "never", "--show-secrets")
	require.NoError(t, err)
	assert.Contains(t, out, "s3cret")
	assert.Contains(t, out, ".env.local")
	assert.Contains(t, out, "2 variables")
}

func TestCaseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{name: "snake", args: []string{"snake", "helloWorld"}, want: "hello_world\n"},
		{name: "alias", args: []string{"underscore", "HelloWorld"}, want: "hello_world\n"},
		{name: "screaming kebab", args: []string{"kebab", "--screaming", "a_b"}, want: "A-B\n"},
		{name: "several words", args: []string{"camel", "hello_world", "foo-bar"}, want: "helloWorld\nfooBar\n"},
		{name: "trim suffix", args: []string{"camel", "--trim-suffix", "_id", "user_id"}, want: "user\n"},
		{name: "stdin", stdin: "foo_bar\r\nbaz_qux\n", args: []string{"pascal"}, want: "FooBar\nBazQux\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := run(t, tt.stdin, append([]string{"case"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCaseCommandErrors(t *testing.T) {
	t.Parallel()

	_, err := run(t, "", "case", "shouting", "x")
	require.ErrorIs(t, err, cli.ErrUsage)

	_, err = run(t, "", "case", "snake", "--screaming", "--preserve-case", "x")
	require.ErrorIs(t, err, cli.ErrUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestFoldCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{name: "equal", args: []string{"HELLO", "hello"}, want: "true"},
		{name: "sharp s is not ss", args: []string{"Straße", "STRASSE"}, want: "false", wantErr: cli.ErrIssuesFound},
		{name: "sharp s capital", args: []string{"ß", "ẞ"}, want: "true"},
		{name: "exact", args: []string{"--exact", "A", "a"}, want: "false", wantErr: cli.ErrIssuesFound},
		{name: "prefix", args: []string{"-m", "prefix", "Hello world", "HELLO"}, want: "true"},
		{name: "suffix", args: []string{"-m", "suffix", "Hello world", "WORLD"}, want: "true"},
		{name: "prefix at start", args: []string{"-m", "prefix", "--start", "6", "Hello world", "WORLD"}, want: "true"},
		{name: "suffix ending at start", args: []string{"-m", "suffix", "--start", "5", "Hello world", "hello"}, want: "true"},
		{name: "contains", args: []string{"-m", "contains", "Hello world", "O W"}, want: "true"},
		{name: "index", args: []string{"-m", "index", "aXbX", "x"}, want: "1"},
		{name: "index from start", args: []string{"-m", "index", "--start", "2", "aXbX", "x"}, want: "3"},
		{name: "last", args: []string{"-m", "last", "aXbX", "x"}, want: "3"},
		{name: "not found", args: []string{"-m", "index", "abc", "z"}, want: "-1", wantErr: cli.ErrIssuesFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := run(t, "", append([]string{"fold"}, tt.args...)...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestFoldCommandErrors(t *testing.T) {
	t.Parallel()

	_, err := run(t, "", "fold", "-m", "index", "--start", "9", "abc", "a")
	require.ErrorIs(t, err, cli.ErrUsage)

	_, err = run(t, "", "fold", "-m", "suffix", "--start=-1", "abc", "")
	require.ErrorIs(t, err, cli.ErrUsage)

	_, err = run(t, "", "fold", "-m", "sideways", "a", "b")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestCICommand(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "true")

	out, err := run(t, "", "ci")
	require.NoError(t, err)
	assert.Equal(t, "GitHub Actions\n", out)

	out, err = run(t, "", "ci", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ci":true,"provider":"GitHub Actions","id":"github"}`, out)

	out, err = run(t, "", "ci", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "gitlab")
}

func TestMaskCommand(t *testing.T) {
	t.Parallel()

	out, err := run(t, "token=s3cret\nnothing here\n", "mask", "--secret", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "token=*******\nnothing here\n", out)
}

func TestMaskCommandFromDotenv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("API_KEY=abc123\n"), 0o644))
	cfg := filepath.Join(dir, "stdkit.yml")
	require.NoError(t, os.WriteFile(cfg, []byte(
		"dotenv:\n  files:\n    - "+file+"\nsecrets:\n  env:\n    - API_KEY\n"), 0o644))

	input := filepath.Join(dir, "log.txt")
	require.NoError(t, os.WriteFile(input, []byte("key is abc123"), 0o644))

	out, err := run(t, "", "mask", "--config", cfg, input)
	require.NoError(t, err)
	assert.Equal(t, "key is *******", out)
}

func TestExecCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	t.Parallel()

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("STDKIT_TEST_GREETING=hello\n"), 0o644))
	cfg := writeConfig(t, dir, "secrets:\n  env:\n    - STDKIT_TEST_SECRET\n")

	out, err := run(t, "", "exec", "--config", cfg, "--env-file", envFile,
		"--", "sh", "-c", `printf '%s' "$STDKIT_TEST_GREETING"`)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)

	out, err = run(t, "", "exec", "--config", cfg, "--env-file", envFile,
		"-c", `sh -c "printf ok; exit 3"`)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, cli.ExitCode(err))
	assert.Equal(t, "ok", out)

	_, err = run(t, "", "exec", "--config", cfg, "--env-file", filepath.Join(dir, "missing.env"), "--", "true")
	require.ErrorIs(t, err, fsutil.ErrNotFound)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))

	_, err = run(t, "", "exec", "--config", cfg)
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestExecCommandMasksSecrets(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	t.Parallel()

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("STDKIT_TEST_SECRET=hunter2\n"), 0o644))
	cfg := filepath.Join(dir, "stdkit.yml")
	require.NoError(t, os.WriteFile(cfg, []byte(
		"dotenv:\n  files:\n    - "+envFile+"\nsecrets:\n  env:\n    - STDKIT_TEST_SECRET\n"), 0o644))

	out, err := run(t, "", "exec", "--config", cfg, "--", "sh", "-c", `echo "pw=$STDKIT_TEST_SECRET"`)
	require.NoError(t, err)
	assert.Equal(t, "pw=*******\n", out)
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".stdkit.yml")

	_, err := run(t, "", "init", "--output", path, "--files", ".env,.env.local", "--secret", "API_KEY")
	require.NoError(t, err)
	content := readFile(t, path)
	assert.Contains(t, content, ".env.local")
	assert.Contains(t, content, "API_KEY")

	_, err = run(t, "", "init", "--output", path)
	require.ErrorIs(t, err, configloader.ErrConfigExists)

	_, err = run(t, "", "init", "--output", path, "--force")
	require.NoError(t, err)
	assert.NotContains(t, readFile(t, path), "API_KEY")

	_, err = run(t, "", "init", "--output", path, "--user")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "version", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"test","commit":"test","built":"test"}`, out)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"issues", cli.ErrIssuesFound, cli.ExitIssues},
		{"missing key", cli.ErrKeyNotFound, cli.ExitIssues},
		{"parse error", fmt.Errorf("x.env: %w", &dotenv.ParseError{Kind: dotenv.ErrKindInvalidKey, Line: 1, Key: "a b"}), cli.ExitIssues},
		{"usage", cli.ErrUsage, cli.ExitInvalidUsage},
		{"config", cli.ErrConfig, cli.ExitConfigError},
		{"validation", &configloader.ValidationError{Message: "bad"}, cli.ExitConfigError},
		{"not found", fsutil.ErrNotFound, cli.ExitIOError},
		{"child", &exec.ExitError{Command: "false", Code: 7}, 7},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
