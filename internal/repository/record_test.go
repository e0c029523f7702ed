package repository

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vaultpass/vaultpass-cli/internal/model"
)

func newTestRecordRepository(t *testing.T) *RecordRepository {
	t.Helper()
	return NewRecordRepository(filepath.Join(t.TempDir(), "passwords.txt"))
}

func readStore(t *testing.T, repo *RecordRepository) string {
	t.Helper()
	data, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	return string(data)
}

func TestUpsertCreatesStoreWithSingleRecord(t *testing.T) {
	t.Parallel()
	repo := newTestRecordRepository(t)

	replaced, err := repo.Upsert("  alice ", "p1")
	require.NoError(t, err)
	require.False(t, replaced)
	require.Equal(t, "Username: alice Password: p1\n", readStore(t, repo))
}

func TestUpsertReplacesCaseInsensitiveMatch(t *testing.T) {
	t.Parallel()
	repo := newTestRecordRepository(t)

	_, err := repo.Upsert("alice", "p1")
	require.NoError(t, err)
	replaced, err := repo.Upsert("ALICE", "p2")
	require.NoError(t, err)
	require.True(t, replaced)

	records, err := repo.List()
	require.NoError(t, err)
	require.Equal(t, []model.PasswordRecord{{Label: "ALICE", Password: "p2"}}, records)
}

func TestUpsertPreservesOrderOfOtherRecords(t *testing.T) {
	t.Parallel()
	repo := newTestRecordRepository(t)

	for _, rec := range []model.PasswordRecord{
		{Label: "alice", Password: "a1"},
		{Label: "bob", Password: "x"},
		{Label: "carol", Password: "c1"},
	} {
		_, err := repo.Upsert(rec.Label, rec.Password)
		require.NoError(t, err)
	}

	_, err := repo.Upsert("alice", "y")
	require.NoError(t, err)

	records, err := repo.List()
	require.NoError(t, err)
	require.Equal(t, []model.PasswordRecord{
		{Label: "alice", Password: "y"},
		{Label: "bob", Password: "x"},
		{Label: "carol", Password: "c1"},
	}, records)
}

func TestUpsertAppendsNewLabelAtEnd(t *testing.T) {
	t.Parallel()
	repo := newTestRecordRepository(t)

	_, err := repo.Upsert("zed", "1")
	require.NoError(t, err)
	_, err = repo.Upsert("amy", "2")
	require.NoError(t, err)

	records, err := repo.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "zed", records[0].Label)
	require.Equal(t, "amy", records[1].Label)
}

func TestUpsertKeepsForeignLinesAndFirstMatchWins(t *testing.T) {
	t.Parallel()
	repo := newTestRecordRepository(t)

	initial := "my passwords\n\nUsername: Site Password: old1\nUsername: site Password: old2"
	require.NoError(t, os.WriteFile(repo.Path(), []byte(initial), 0o600))

	_, err := repo.Upsert("site", "new")
	require.NoError(t, err)
	require.Equal(t,
		"my passwords\n\nUsername: site Password: new\nUsername: site Password: old2",
		readStore(t, repo))

	_, err = repo.Upsert("other", "o")
	require.NoError(t, err)
	require.Equal(t,
		"my passwords\n\nUsername: site Password: new\nUsername: site Password: old2\nUsername: other Password: o\n",
		readStore(t, repo))
}

func TestListAbsentAndEmptyStore(t *testing.T) {
	t.Parallel()
	repo := newTestRecordRepository(t)

	records, err := repo.List()
	require.NoError(t, err)
	require.Empty(t, records)

	require.NoError(t, os.WriteFile(repo.Path(), nil, 0o600))
	records, err = repo.List()
	require.NoError(t, err)
	require.Empty(t, records)

	contents, err := repo.Contents()
	require.NoError(t, err)
	require.Empty(t, contents)
}

func TestListParsesPasswordsWithSymbols(t *testing.T) {
	t.Parallel()
	repo := newTestRecordRepository(t)

	_, err := repo.Upsert("bank", `a:b Username"§€`)
	require.NoError(t, err)

	rec, found, err := repo.Find(" BANK ")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `a:b Username"§€`, rec.Password)

	_, found, err = repo.Find("missing")
	require.NoError(t, err)
	require.False(t, found)
}

func TestUpsertReportsWriteFailure(t *testing.T) {
	t.Parallel()
	repo := NewRecordRepository(filepath.Join(t.TempDir(), "missing-dir", "passwords.txt"))

	_, err := repo.Upsert("alice", "p1")
	require.ErrorIs(t, err, ErrStoreWrite)
}

func TestUpsertFailureLeavesStoreIntact(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}
	t.Parallel()

	dir := t.TempDir()
	repo := NewRecordRepository(filepath.Join(dir, "passwords.txt"))
	_, err := repo.Upsert("alice", "p1")
	require.NoError(t, err)

	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { os.Chmod(dir, 0o700) })

	_, err = repo.Upsert("alice", "p2")
	require.ErrorIs(t, err, ErrStoreWrite)
	require.Equal(t, "Username: alice Password: p1\n", readStore(t, repo))
}

func TestListReportsReadFailure(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	repo := NewRecordRepository(dir)

	_, err := repo.List()
	require.ErrorIs(t, err, ErrStoreRead)
}
