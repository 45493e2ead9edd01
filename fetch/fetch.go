// seehuhn.de/go/impose - automated imposition of print jobs onto press sheets
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package fetch retrieves artwork documents for the items of a job.
//
// Artwork is addressed by item ID.  The usual source is an HTTP asset
// store, optionally backed by a local directory for fallback; jobs are
// all-or-nothing, so any item failing to fetch aborts the whole run.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Error reports that an item's artwork could not be retrieved.
type Error struct {
	ID  string
	URL string
	Err error
}

func (err *Error) Error() string {
	where := err.URL
	if where == "" {
		where = "local store"
	}
	return fmt.Sprintf("artwork %q: %s: %v", err.ID, where, err.Err)
}

func (err *Error) Unwrap() error {
	return err.Err
}

// Source retrieves the artwork document for one item.
type Source interface {
	Fetch(ctx context.Context, id string) ([]byte, error)
}

// Dir reads artwork from `<dir>/<id>.pdf`.
type Dir struct {
	Path string
}

// Fetch implements the [Source] interface.
func (d *Dir) Fetch(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(d.Path, id+".pdf"))
	if err != nil {
		return nil, &Error{ID: id, Err: err}
	}
	return data, nil
}

// HTTP fetches artwork from `<base>/<id>.pdf`.  If Fallback is non-nil,
// it is consulted after any HTTP failure before the job is given up.
type HTTP struct {
	Base     string
	Client   *http.Client
	Fallback Source
}

// Fetch implements the [Source] interface.
func (h *HTTP) Fetch(ctx context.Context, id string) ([]byte, error) {
	data, err := h.get(ctx, id)
	if err != nil && h.Fallback != nil {
		if data, ferr := h.Fallback.Fetch(ctx, id); ferr == nil {
			return data, nil
		}
		return nil, err
	}
	return data, err
}

func (h *HTTP) get(ctx context.Context, id string) ([]byte, error) {
	loc, err := url.JoinPath(h.Base, url.PathEscape(id)+".pdf")
	if err != nil {
		return nil, &Error{ID: id, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, &Error{ID: id, URL: loc, Err: err}
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{ID: id, URL: loc, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{ID: id, URL: loc, Err: fmt.Errorf("unexpected status %q", resp.Status)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{ID: id, URL: loc, Err: err}
	}
	return data, nil
}

// All fetches the artwork for all ids concurrently.  The first failure
// cancels the remaining fetches and fails the whole batch.
func All(ctx context.Context, src Source, ids []string) (map[string][]byte, error) {
	res := make(map[string][]byte, len(ids))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		g.Go(func() error {
			data, err := src.Fetch(ctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			res[id] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
