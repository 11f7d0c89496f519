package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintnetwork/voteflow/pkg/catalog"
	"github.com/mintnetwork/voteflow/pkg/flow"
	"github.com/mintnetwork/voteflow/pkg/store"
)

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)

func setup(t *testing.T) string {
	t.Helper()
	for _, k := range []string{"VOTEFLOW_DIR", "VOTEFLOW_BACKEND", "VOTEFLOW_CATALOG", "VOTEFLOW_LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	prevTTY, prevNow := stdinIsTerminal, now
	stdinIsTerminal = func() bool { return false }
	now = func() time.Time { return testNow }
	t.Cleanup(func() {
		stdinIsTerminal, now = prevTTY, prevNow
	})
	return t.TempDir()
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func seed(t *testing.T, dir string, completed []string, at time.Time, day string) {
	t.Helper()
	votes, closer, err := store.Open(store.BackendFile, dir, nil)
	require.NoError(t, err)
	defer closer.Close()
	require.NoError(t, votes.SaveCompleted(completed))
	require.NoError(t, votes.RecordVote(at, day))
}

func TestStatusFresh(t *testing.T) {
	dir := setup(t)

	out, err := execute(t, "--dir", dir, "status", "--json")
	require.NoError(t, err)

	var r statusReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "guided", r.Phase)
	assert.Equal(t, catalog.Default().Len(), r.Total)
	assert.Equal(t, catalog.Default().Guided[0].ID, r.NextSite)
	assert.Empty(t, r.Completed)
}

func TestStatusToday(t *testing.T) {
	dir := setup(t)
	first := catalog.Default().Guided[0].ID
	seed(t, dir, []string{first}, testNow.Add(-time.Hour), flow.Day(testNow))

	out, err := execute(t, "--dir", dir, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Voted: 1 of")
	assert.Contains(t, out, "Last vote: 1 hour ago")
	assert.Contains(t, out, "Estimated rewards: 350 coins")
}

func TestStatusCooldownIsReadOnly(t *testing.T) {
	dir := setup(t)
	first := catalog.Default().Guided[0].ID
	seed(t, dir, []string{first}, testNow.Add(-5*time.Hour), flow.Day(testNow.AddDate(0, 0, -1)))

	out, err := execute(t, "--dir", dir, "status", "--json")
	require.NoError(t, err)
	var r statusReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "cooldown", r.Phase)
	assert.Equal(t, "19h 0m 0s", r.Cooldown)

	votes, closer, err := store.Open(store.BackendFile, dir, nil)
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, []string{first}, votes.Load().Completed, "status never clears")
}

func TestRootFallsBackToStatus(t *testing.T) {
	dir := setup(t)

	out, err := execute(t, "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Day: Sun Oct 18 2026")
}

func TestSites(t *testing.T) {
	dir := setup(t)

	out, err := execute(t, "--dir", dir, "sites")
	require.NoError(t, err)
	assert.Contains(t, out, "Guided:")
	assert.Contains(t, out, "Bonus:")
	assert.Contains(t, out, catalog.Default().Guided[0].Name)
}

func TestSitesCustomCatalog(t *testing.T) {
	dir := setup(t)
	path := filepath.Join(dir, "sites.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
guided:
  - id: only
    name: Only Site
    url: https://only.example/vote
`), 0644))

	out, err := execute(t, "--dir", dir, "--catalog", path, "sites", "--json")
	require.NoError(t, err)
	var cat catalog.Catalog
	require.NoError(t, json.Unmarshal([]byte(out), &cat))
	require.Len(t, cat.Guided, 1)
	assert.Equal(t, "only", cat.Guided[0].ID)
}

func TestResetRequiresConfirmation(t *testing.T) {
	dir := setup(t)

	_, err := execute(t, "--dir", dir, "reset")
	assert.ErrorIs(t, err, errNotConfirmed)
}

func TestResetClearsState(t *testing.T) {
	dir := setup(t)
	seed(t, dir, []string{"topg"}, testNow, flow.Day(testNow))

	out, err := execute(t, "--dir", dir, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Voting state cleared.")

	votes, closer, err := store.Open(store.BackendFile, dir, nil)
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, flow.Snapshot{}, votes.Load())
}

func TestSQLiteBackendFlag(t *testing.T) {
	dir := setup(t)

	_, err := execute(t, "--dir", dir, "--backend", "sqlite", "reset", "--yes")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, store.DatabaseFile))
	assert.NoError(t, err)
}

func TestUnknownBackend(t *testing.T) {
	dir := setup(t)

	_, err := execute(t, "--dir", dir, "--backend", "redis", "status")
	assert.ErrorIs(t, err, store.ErrUnknownBackend)
}

func TestBuildStatusAllDone(t *testing.T) {
	cat := catalog.Catalog{Guided: []catalog.Site{{ID: "a", URL: "https://a"}, {ID: "b", URL: "https://b"}}}
	snap := flow.Snapshot{Completed: []string{"b", "a"}, LastVoteDay: flow.Day(testNow), VoteTimestamp: testNow}

	r := buildStatus(cat, snap, testNow)
	assert.Equal(t, "bonus", r.Phase)
	assert.Equal(t, []string{"a", "b"}, r.Completed)
	assert.Equal(t, 700, r.EstimatedCoins)
	assert.Empty(t, r.NextSite)
}
