package dataset

import (
	"context"
	"fighterdata/internal/fighters"
	"fighterdata/lib/sqliteutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func named(names ...string) []fighters.Fighter {
	out := make([]fighters.Fighter, len(names))
	for i, n := range names {
		out[i] = fighters.New(n)
	}
	return out
}

func names(records []fighters.Fighter) []string {
	out := make([]string, len(records))
	for i, f := range records {
		out[i] = f.Name
	}
	return out
}

func TestMergeAppend(t *testing.T) {
	merged, added := MergeAppend(named("A", "B"), named("B", "C"))
	require.Equal(t, 1, added)
	require.Equal(t, []string{"A", "B", "C"}, names(merged))

	merged, added = MergeAppend(named("Tom Aaron"), named("tom  AARON", "Jon Jones", "jon jones"))
	require.Equal(t, 1, added)
	require.Equal(t, []string{"Tom Aaron", "Jon Jones"}, names(merged))

	merged, added = MergeAppend(nil, nil)
	require.Zero(t, added)
	require.Empty(t, merged)
}

func TestMergeAppendNeverOverwrites(t *testing.T) {
	existing := named("Tom Aaron")
	existing[0].Wins = 5

	incoming := named("Tom Aaron")
	incoming[0].Wins = 9

	merged, _ := MergeAppend(existing, incoming)
	require.Equal(t, 5, merged[0].Wins)
}

func TestMergeAppendLeavesInputAlone(t *testing.T) {
	existing := make([]fighters.Fighter, 1, 4)
	existing[0] = fighters.New("Jon Jones")

	first, _ := MergeAppend(existing, named("Ciryl Gane"))
	second, _ := MergeAppend(existing, named("Tom Aspinall"))

	require.Equal(t, []string{"Jon Jones", "Ciryl Gane"}, names(first))
	require.Equal(t, []string{"Jon Jones", "Tom Aspinall"}, names(second))
	require.Equal(t, "", existing[:2][1].Name)
}

func TestSaveRequiresPrimary(t *testing.T) {
	require.Panics(t, func() {
		_ = Save(context.Background(), named("A"), "")
	})
}

func TestMergeReplaceByName(t *testing.T) {
	existing := named("Jon Jones", "Tom Aaron", "Ciryl Gane")
	update := fighters.New("TOM AARON")
	update.Wins = 5

	merged, replaced := MergeReplaceByName(existing, []fighters.Fighter{update, fighters.New("Nobody")})
	require.Equal(t, 1, replaced)
	require.Len(t, merged, 3)
	require.Equal(t, "TOM AARON", merged[1].Name)
	require.Equal(t, 5, merged[1].Wins)
	require.Equal(t, "Ciryl Gane", merged[2].Name)
}

func TestReplaceHistory(t *testing.T) {
	records := named("Jon Jones")
	fights := []fighters.FightSummary{{Result: "win", Opponent: "Ciryl Gane"}}

	require.True(t, ReplaceHistory(records, "jon jones", fights))
	require.Equal(t, fights, records[0].LastFights)

	require.True(t, ReplaceHistory(records, "Jon Jones", nil))
	require.NotNil(t, records[0].LastFights)
	require.Empty(t, records[0].LastFights)

	require.False(t, ReplaceHistory(records, "Ciryl Gane", fights))
}

func TestFillAges(t *testing.T) {
	records := named("A", "B", "C")
	records[0].Dob = "Jan 22, 1993"
	records[1].Dob = fighters.Unknown
	records[2].Dob = "Jul 19, 1987"
	records[2].SetAge(99, true)

	filled := FillAges(records, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.Equal(t, 1, filled)
	require.Equal(t, 31, *records[0].Age)
	require.Nil(t, records[1].Age)
	require.Equal(t, 99, *records[2].Age)
}

func TestLoadMissingAndMalformed(t *testing.T) {
	dir := t.TempDir()

	records, err := Load(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"name": "not an array"}`), 0644))
	_, err = Load(bad)
	require.Error(t, err)
}

func TestLoadNormalizesHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fighters.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "Tom Aaron", "wins": 5}]`), 0644))

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, 5, records[0].Wins)
	require.NotNil(t, records[0].LastFights)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "fighters_data.json")
	mirrors := []string{
		filepath.Join(dir, "public", "fighters_data.json"),
		filepath.Join(dir, "build", "static", "fighters_data.json"),
	}

	age := 36
	jones := fighters.New("Jon Jones")
	jones.Nickname = "Bones"
	jones.Height = `6' 4"`
	jones.Age = &age
	jones.LastFights = []fighters.FightSummary{
		{Result: "win", Opponent: "Ciryl Gane", Method: fighters.MethodSubmission, Round: "1"},
	}
	records := []fighters.Fighter{jones, fighters.New("José Aldo <Junior>")}

	require.NoError(t, Save(context.Background(), records, primary, mirrors...))

	loaded, err := Load(primary)
	require.NoError(t, err)
	if diff := cmp.Diff(records, loaded, cmpopts.EquateEmpty()); diff != "" {
		t.Fatal(diff)
	}

	raw, err := os.ReadFile(primary)
	require.NoError(t, err)
	require.Contains(t, string(raw), "José Aldo <Junior>")
	require.Contains(t, string(raw), "\n  {\n    \"name\": \"Jon Jones\"")
	require.Contains(t, string(raw), `"last_3_fights": []`)

	for _, m := range mirrors {
		copied, err := os.ReadFile(m)
		require.NoError(t, err)
		require.Equal(t, raw, copied)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		require.False(t, strings.HasSuffix(e.Name(), ".tmp"), e.Name())
	}
}

func TestSaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fighters.json")
	require.NoError(t, Save(context.Background(), nil, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[]\n", string(raw))
}

func TestSaveFailsOnUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := Save(context.Background(), named("A"), filepath.Join(blocker, "fighters.json"))
	require.Error(t, err)
}

func TestStoreDatabaseMirror(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := OpenStore(ctx, Config{
		Path: filepath.Join(dir, "fighters.json"),
		Database: sqliteutil.Config{
			File: filepath.Join(dir, "db", "fighters.db"),
		},
	})
	require.NoError(t, err)
	defer store.Close()
	require.NotNil(t, store.SQL())

	require.NoError(t, store.Save(ctx, named("A", "B", "C")))
	require.NoError(t, store.Save(ctx, named("C", "D")))

	mirrored, err := store.SQL().Records(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"C", "D"}, names(mirrored))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"C", "D"}, names(loaded))
}

func TestOpenStoreWithoutDatabase(t *testing.T) {
	store, err := OpenStore(context.Background(), Config{Path: filepath.Join(t.TempDir(), "f.json")})
	require.NoError(t, err)
	require.Nil(t, store.SQL())
	require.NoError(t, store.Close())

	_, err = OpenStore(context.Background(), Config{})
	require.Error(t, err)
}
