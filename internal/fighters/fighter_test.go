package fighters

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceholder(t *testing.T) {
	f := Placeholder(Target{Name: "Phil Rowe", Nickname: "Fresh", Weight: "170 lbs."})
	require.Equal(t, "Phil Rowe", f.Name)
	require.Equal(t, "Fresh", f.Nickname)
	require.Equal(t, "170 lbs.", f.Weight)
	require.Equal(t, Unknown, f.Height)
	require.Equal(t, Unknown, f.Dob)
	require.Equal(t, "", f.Stance)
	require.Equal(t, ZeroSubAvg, f.SubmissionAvg)
	require.Equal(t, "0-0-0", f.Record())
	require.NotNil(t, f.LastFights)
	require.Nil(t, f.Age)

	require.Equal(t, Unknown, Placeholder(Target{Name: "Donte Johnson"}).Weight)
}

func TestEmptyHistoryEncodesAsArray(t *testing.T) {
	raw, err := json.Marshal(New("Tom Aaron"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, []any{}, decoded["last_3_fights"])
	_, hasAge := decoded["age"]
	require.False(t, hasAge)
}

func TestSameName(t *testing.T) {
	require.True(t, SameName("Tom Aaron", "tom aaron"))
	require.True(t, SameName(" Tom  Aaron", "TOM AARON "))
	require.False(t, SameName("Tom Aaron", "Tom Aarons"))
}

func TestSetAge(t *testing.T) {
	f := New("Jon Jones")
	f.SetAge(36, true)
	require.Equal(t, 36, *f.Age)
	f.SetAge(0, false)
	require.Nil(t, f.Age)
}
