package restyutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-page", r.URL.Path)
		w.Write([]byte("<html>fighter</html>"))
	}))
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "dump")
	output, err := NewDirectoryOutput(dir)
	require.NoError(t, err)

	client := resty.New().SetBaseURL(server.URL)
	Dump(client, output)

	_, err = client.R().Get("/fighter-details/1")
	require.NoError(t, err)
	_, err = client.R().Get("/fighter-details/2")
	require.NoError(t, err)

	first, err := os.ReadFile(filepath.Join(dir, "0001.txt"))
	require.NoError(t, err)
	require.Contains(t, string(first), "GET "+server.URL+"/fighter-details/1")
	require.Contains(t, string(first), "X-Page: /fighter-details/1")
	require.Contains(t, string(first), "<html>fighter</html>")
	require.FileExists(t, filepath.Join(dir, "0002.txt"))
}

func TestDumpNilOutput(t *testing.T) {
	client := resty.New()
	Dump(client, nil)
}
