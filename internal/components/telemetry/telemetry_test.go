package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := &Recorder{}
	scoped := NewScopedAPI("ufcstats", rec)

	scoped.ReportBroken("client.profile", "boom")
	scoped.ReportWarning("client.listing")
	scoped.ReportCount("directory.entries", 12)

	require.Len(t, rec.Reports, 3)
	require.Equal(t, "ufcstats: client.profile", rec.Reports[0].Id)
	require.Equal(t, []any{"boom"}, rec.Reports[0].Params)
	require.Equal(t, "ufcstats: client.listing", rec.Reports[1].Id)
	require.Equal(t, []any{int64(12)}, rec.Reports[2].Params)
	require.Equal(t, 1, rec.Count("broken"))
}

func TestConfigEnabled(t *testing.T) {
	require.False(t, Config{}.Enabled())
	require.True(t, Config{Otlp: OtlpConfig{
		Traces: OtlpConnConfig{HttpEndpoint: "http://localhost:4318"},
	}}.Enabled())
}
