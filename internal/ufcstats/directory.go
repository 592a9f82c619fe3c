package ufcstats

import (
	"context"
	"errors"
	"fighterdata/internal/components/telemetry"
	"fighterdata/internal/fighters"
	"fighterdata/lib/textutil"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/antzucaro/matchr"
)

const report_directory_find = "directory.find"

const Letters = "abcdefghijklmnopqrstuvwxyz"

var ErrNotFound = errors.New("fighter not found")

// NotFoundError is returned by Directory.Find, it carries the closest
// names the directory has seen.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("%s: %s", ErrNotFound, e.Name)
	}
	return fmt.Sprintf(
		"%s: %s (closest: %s)",
		ErrNotFound, e.Name, strings.Join(e.Suggestions, ", "),
	)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

type Lister interface {
	Listing(ctx context.Context, letter string) ([]ListingEntry, error)
}

// Directory resolves fighter names to listing entries. Listing pages are
// fetched at most once per letter for the lifetime of the directory.
type Directory struct {
	lister Lister
	tel    telemetry.API

	mu    sync.Mutex
	pages map[byte][]ListingEntry
}

func NewDirectory(lister Lister, tel telemetry.API) *Directory {
	return &Directory{
		lister: lister,
		tel:    telemetry.NewScopedAPI("ufcstats", tel),
		pages:  map[byte][]ListingEntry{},
	}
}

func (d *Directory) page(ctx context.Context, letter byte) ([]ListingEntry, error) {
	d.mu.Lock()
	cached, ok := d.pages[letter]
	d.mu.Unlock()
	if ok {
		return cached, nil
	}

	entries, err := d.lister.Listing(ctx, string(letter))
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.pages[letter] = entries
	d.mu.Unlock()
	return entries, nil
}

// searchOrder puts the initial of the last word of name first, followed by
// every other letter.
func searchOrder(name string) []byte {
	order := make([]byte, 0, len(Letters))
	words := strings.Fields(fighters.NameKey(name))
	if len(words) > 0 {
		last := words[len(words)-1]
		if strings.IndexByte(Letters, last[0]) >= 0 {
			order = append(order, last[0])
		}
	}
	for i := 0; i < len(Letters); i++ {
		if len(order) > 0 && order[0] == Letters[i] {
			continue
		}
		order = append(order, Letters[i])
	}
	return order
}

func entryMatches(e ListingEntry, key, compact string) bool {
	full := e.FullName()
	return fighters.NameKey(full) == key || textutil.CompactName(full) == compact
}

// Find looks name up on the page of its last name initial and then on every
// other page, matching on the normalized name or on its compact form so
// "ChangHo Lee" finds "Chang-Ho Lee".
func (d *Directory) Find(ctx context.Context, name string) (ListingEntry, error) {
	key := fighters.NameKey(name)
	compact := textutil.CompactName(name)

	var pageErrs []error
	for _, letter := range searchOrder(name) {
		if err := ctx.Err(); err != nil {
			return ListingEntry{}, err
		}
		entries, err := d.page(ctx, letter)
		if err != nil {
			d.tel.ReportWarning(report_directory_find, err, name)
			pageErrs = append(pageErrs, err)
			continue
		}
		for _, e := range entries {
			if entryMatches(e, key, compact) {
				return e, nil
			}
		}
	}

	notFound := &NotFoundError{
		Name:        name,
		Suggestions: d.Suggest(name, 3),
	}
	if len(pageErrs) > 0 {
		return ListingEntry{}, errors.Join(append([]error{notFound}, pageErrs...)...)
	}
	return ListingEntry{}, notFound
}

type suggestion struct {
	name       string
	similarity float64
}

// Suggest returns up to n names from the pages fetched so far, most similar
// to name first.
func (d *Directory) Suggest(name string, n int) []string {
	key := fighters.NameKey(name)

	d.mu.Lock()
	var candidates []suggestion
	seen := map[string]struct{}{}
	for _, entries := range d.pages {
		for _, e := range entries {
			full := e.FullName()
			candidateKey := fighters.NameKey(full)
			if _, ok := seen[candidateKey]; ok {
				continue
			}
			seen[candidateKey] = struct{}{}
			candidates = append(candidates, suggestion{
				name:       full,
				similarity: matchr.JaroWinkler(key, candidateKey, false),
			})
		}
	}
	d.mu.Unlock()

	slices.SortFunc(candidates, func(a, b suggestion) int {
		if a.similarity != b.similarity {
			if a.similarity > b.similarity {
				return -1
			}
			return 1
		}
		return strings.Compare(a.name, b.name)
	})

	out := []string{}
	for _, c := range candidates {
		if len(out) == n {
			break
		}
		out = append(out, c.name)
	}
	return out
}

// All returns the entries of every listing page in letter order. Pages that
// fail are skipped and reported in the returned error alongside whatever
// was collected.
func (d *Directory) All(ctx context.Context) ([]ListingEntry, error) {
	var all []ListingEntry
	var pageErrs []error
	for i := 0; i < len(Letters); i++ {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		entries, err := d.page(ctx, Letters[i])
		if err != nil {
			pageErrs = append(pageErrs, err)
			continue
		}
		all = append(all, entries...)
	}
	return all, errors.Join(pageErrs...)
}
