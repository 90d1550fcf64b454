package runner_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/runner"
	"github.com/arthur-debert/archup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandString(t *testing.T) {
	assert.Equal(t, "npm", runner.Command{Name: "npm"}.String())
	assert.Equal(t, "sudo pacman -Sq --needed", runner.Sudo("pacman", "-Sq", "--needed").String())
	assert.Equal(t, "sh -c echo hi", runner.Shell("echo hi").String())
}

func TestExecRunner_CapturesAndEchoes(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := runner.NewExecRunner(runner.WithOutput(&stdout, &stderr))

	res, err := r.Run(context.Background(), runner.Shell("echo out; echo err >&2"))
	require.NoError(t, err)

	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestExecRunner_QuietDoesNotEcho(t *testing.T) {
	var stdout bytes.Buffer
	r := runner.NewExecRunner(runner.WithOutput(&stdout, &stdout))

	cmd := runner.Shell("echo active")
	cmd.Quiet = true
	res, err := r.Run(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, "active", strings.TrimSpace(res.Stdout))
	assert.Empty(t, stdout.String())
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	var sink bytes.Buffer
	r := runner.NewExecRunner(runner.WithOutput(&sink, &sink))

	res, err := r.Run(context.Background(), runner.Shell("exit 3"))
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, 3, errors.GetErrorDetails(err)["exit_code"])
}

func TestCommandRedacted(t *testing.T) {
	cmd := runner.Command{
		Name:   "mariadb",
		Args:   []string{"-e", "SET PASSWORD = PASSWORD('hunter2')"},
		Redact: []string{"'hunter2'", "hunter2", ""},
	}
	assert.Equal(t, "mariadb -e SET PASSWORD = PASSWORD("+runner.Mask+")", cmd.Redacted())
	assert.Equal(t, []string{"-e", "SET PASSWORD = PASSWORD(" + runner.Mask + ")"}, cmd.RedactedArgs())
	assert.Contains(t, cmd.String(), "hunter2")

	plain := runner.Sudo("pacman", "-Syu")
	assert.Equal(t, plain.String(), plain.Redacted())
}

func TestExecRunner_RedactsFailures(t *testing.T) {
	logs := testutil.CaptureLogs(t)
	var sink bytes.Buffer
	r := runner.NewExecRunner(runner.WithOutput(&sink, &sink))

	cmd := runner.Shell(`echo "bad hunter2-secret" >&2; exit 1`)
	cmd.Redact = []string{"hunter2-secret"}
	_, err := r.Run(context.Background(), cmd)
	require.Error(t, err)

	assert.NotContains(t, err.Error(), "hunter2-secret")
	assert.Contains(t, err.Error(), runner.Mask)
	assert.NotContains(t, logs.String(), "hunter2-secret")
	assert.Contains(t, logs.String(), "Executing command")
	assert.NotContains(t, sink.String(), "hunter2-secret")
}

func TestDryRunner_Redacts(t *testing.T) {
	var out bytes.Buffer
	r := runner.New(true, runner.WithOutput(&out, &out))

	cmd := runner.Shell("echo hunter2-secret")
	cmd.Redact = []string{"hunter2-secret"}
	_, err := r.Run(context.Background(), cmd)
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "hunter2-secret")
}

func TestExecRunner_DirAndEnv(t *testing.T) {
	dir := t.TempDir()
	var sink bytes.Buffer
	r := runner.NewExecRunner(runner.WithOutput(&sink, &sink))

	cmd := runner.Shell(`pwd; echo "$VIRTUAL_ENV"`)
	cmd.Dir = dir
	cmd.Env = []string{"VIRTUAL_ENV=/work/venv"}
	cmd.Quiet = true

	res, err := r.Run(context.Background(), cmd)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(res.Stdout), "\n")
	require.Len(t, lines, 2)
	resolved, _ := filepath.EvalSymlinks(dir)
	assert.Contains(t, []string{dir, resolved}, lines[0])
	assert.Equal(t, "/work/venv", lines[1])
}

func TestExecRunner_MissingDir(t *testing.T) {
	r := runner.NewExecRunner()
	cmd := runner.Command{Name: "true", Dir: filepath.Join(t.TempDir(), "missing")}

	_, err := r.Run(context.Background(), cmd)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestExecRunner_Timeout(t *testing.T) {
	var sink bytes.Buffer
	r := runner.NewExecRunner(runner.WithOutput(&sink, &sink), runner.WithTimeout(50*time.Millisecond))

	_, err := r.Run(context.Background(), runner.Shell("sleep 5"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
}

func TestExecRunner_LookPath(t *testing.T) {
	r := runner.NewExecRunner()

	assert.True(t, runner.Has(r, "sh"))
	_, err := r.LookPath("archup-definitely-not-installed")
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandNotFound))
}

func TestDryRunner_DoesNotExecute(t *testing.T) {
	var out bytes.Buffer
	marker := filepath.Join(t.TempDir(), "created")
	r := runner.New(true, runner.WithOutput(&out, &out))

	res, err := r.Run(context.Background(), runner.Shell("touch "+marker))
	require.NoError(t, err)
	assert.Equal(t, runner.Result{}, res)
	assert.NoFileExists(t, marker)
	assert.Contains(t, out.String(), "Would execute: sh -c touch "+marker)

	assert.True(t, runner.Has(r, "sh"))
}
