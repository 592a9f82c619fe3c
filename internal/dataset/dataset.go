// Package dataset owns fighters_data.json: reading it, merging freshly
// scraped records into it and writing it back out.
package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fighterdata/internal/components/assert"
	"fighterdata/internal/fighters"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Load reads the dataset at path. A missing file is an empty dataset, a
// file that is not a JSON array of records is an error.
func Load(path string) ([]fighters.Fighter, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []fighters.Fighter{}, nil
	}
	if err != nil {
		return nil, err
	}

	var records []fighters.Fighter
	err = json.Unmarshal(raw, &records)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if records == nil {
		records = []fighters.Fighter{}
	}
	for i := range records {
		if records[i].LastFights == nil {
			records[i].LastFights = []fighters.FightSummary{}
		}
	}
	return records, nil
}

// Encode renders records the way they are stored on disk: two-space
// indentation with non-ASCII and HTML characters left as is.
func Encode(records []fighters.Fighter) ([]byte, error) {
	if records == nil {
		records = []fighters.Fighter{}
	}
	buf := bytes.NewBuffer(nil)
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(records)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes records to primary and then the same bytes to every mirror.
// Each file is replaced atomically; the first failure aborts the rest.
func Save(ctx context.Context, records []fighters.Fighter, primary string, mirrors ...string) error {
	assert.NotEmptyStr(primary)

	encoded, err := Encode(records)
	if err != nil {
		return err
	}
	for _, path := range append([]string{primary}, mirrors...) {
		if err := ctx.Err(); err != nil {
			return err
		}
		err = writeFileAtomic(path, encoded)
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

func writeFileAtomic(path string, contents []byte) error {
	dir := filepath.Dir(path)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, err = tmp.Write(contents)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	err = os.Chmod(tmpPath, 0644)
	if err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
