// Package restyutil keeps a copy of every page a resty client fetched, so
// a failed extraction can be replayed against the exact markup.
package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type Output interface {
	Write(id string, contents string)
}

// DirectoryOutput writes each exchange to its own file in a directory.
type DirectoryOutput struct {
	directory string
}

// NewDirectoryOutput clears dir and returns an output writing into it.
func NewDirectoryOutput(dir string) (DirectoryOutput, error) {
	err := os.RemoveAll(dir)
	if err != nil {
		return DirectoryOutput{}, err
	}
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return DirectoryOutput{}, err
	}
	return DirectoryOutput{directory: dir}, nil
}

func (o DirectoryOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write exchange file", "id", id, "err", err)
	}
}

// Dump writes every response client receives to output, numbered in the
// order they arrive. A nil output leaves the client untouched.
func Dump(client *resty.Client, output Output) {
	if output == nil {
		return
	}
	var counter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := atomic.AddUint64(&counter, 1)
		output.Write(fmt.Sprintf("%04d.txt", id), FormatExchange(res))
		return nil
	})
}
