package status_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/arthur-debert/archup/pkg/status"
	"github.com/arthur-debert/archup/pkg/testutil"
	"github.com/arthur-debert/archup/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMap(t *testing.T) {
	m := status.NewMap()
	m.Set(status.Migration, "updated")
	m.Set(status.Aliases, "failed")
	m.Set(status.Aliases, "updated")
	m.Set(status.Packages, "failed")

	assert.Equal(t, []status.Entry{
		{Category: status.Initialization, Outcome: "success"},
		{Category: status.Aliases, Outcome: "updated"},
		{Category: status.Packages, Outcome: "failed"},
		{Category: status.Migration, Outcome: "updated"},
	}, m.Entries())
	assert.Equal(t, []status.Category{status.Packages}, m.Failures())
	assert.Equal(t, "", m.Get(status.Build))
}

func TestMap_UnknownCategoriesSortLast(t *testing.T) {
	m := status.NewMap()
	m.Set("Zsh", "updated")
	m.Set("Cron", "skipped")
	m.Set(status.Build, "cleaned")

	assert.Equal(t, []status.Entry{
		{Category: status.Initialization, Outcome: "success"},
		{Category: status.Build, Outcome: "cleaned"},
		{Category: "Cron", Outcome: "skipped"},
		{Category: "Zsh", Outcome: "updated"},
	}, m.Entries())
}

func sampleReport() status.Report {
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return status.Report{
		Started:  started,
		Finished: started.Add(95 * time.Second),
		OS:       "linux",
		Distro:   "arch",
		Project:  "shop",
		Steps: []status.Entry{
			{Category: status.Initialization, Outcome: "success"},
			{Category: status.DatabasePassword, Outcome: "failed"},
		},
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, status.Render(&buf, sampleReport(), ui.FormatText))

	assert.Equal(t, "Summary:\n"+
		"  Initialization    -- success\n"+
		"  Database Password -- failed\n"+
		"Finished 2026-03-01T10:01:35Z in 1m35s\n", buf.String())
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, status.Render(&buf, sampleReport(), ui.FormatTerminal))

	out := buf.String()
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Database Password")
	assert.Contains(t, out, "failed")
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, status.Render(&buf, sampleReport(), ui.FormatYAML))

	var got status.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "shop", got.Project)
	assert.Equal(t, sampleReport().Steps, got.Steps)
	assert.True(t, got.Failed())
}

func TestStore(t *testing.T) {
	fs := testutil.NewMemFS(t, nil)
	store := status.NewStore(fs, "/state/archup/last-run.toml")

	_, err := store.Load()
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	want := sampleReport()
	require.NoError(t, store.Save(want))
	got, err := store.Load()
	require.NoError(t, err)
	assert.True(t, want.Started.Equal(got.Started))
	assert.True(t, want.Finished.Equal(got.Finished))
	assert.Equal(t, want.Distro, got.Distro)
	assert.Equal(t, want.Project, got.Project)
	assert.Equal(t, want.Steps, got.Steps)
}

func TestStoreCorrupt(t *testing.T) {
	fs := testutil.NewMemFS(t, map[string]string{"/state/last-run.toml": "steps = [oops"})
	_, err := status.NewStore(fs, "/state/last-run.toml").Load()
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}
