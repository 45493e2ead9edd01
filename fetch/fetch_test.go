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

package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDir(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "card.pdf"), []byte("%PDF-card"), 0o666)
	if err != nil {
		t.Fatal(err)
	}

	src := &Dir{Path: dir}
	data, err := src.Fetch(context.Background(), "card")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "%PDF-card" {
		t.Errorf("got %q", data)
	}

	_, err = src.Fetch(context.Background(), "missing")
	var fe *Error
	if !errors.As(err, &fe) || fe.ID != "missing" {
		t.Errorf("got %v, want fetch.Error for %q", err, "missing")
	}
}

func TestHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/card.pdf" {
			w.Write([]byte("%PDF-remote"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src := &HTTP{Base: srv.URL, Client: srv.Client()}
	data, err := src.Fetch(context.Background(), "card")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "%PDF-remote" {
		t.Errorf("got %q", data)
	}

	_, err = src.Fetch(context.Background(), "gone")
	var fe *Error
	if !errors.As(err, &fe) {
		t.Errorf("got %v, want fetch.Error", err)
	}
}

func TestHTTPFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "card.pdf"), []byte("%PDF-local"), 0o666)
	if err != nil {
		t.Fatal(err)
	}

	src := &HTTP{Base: srv.URL, Client: srv.Client(), Fallback: &Dir{Path: dir}}
	data, err := src.Fetch(context.Background(), "card")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "%PDF-local" {
		t.Errorf("got %q, want the local fallback copy", data)
	}

	// when the fallback misses too, the original HTTP error survives
	_, err = src.Fetch(context.Background(), "gone")
	var fe *Error
	if !errors.As(err, &fe) || fe.URL == "" {
		t.Errorf("got %v, want the HTTP fetch.Error", err)
	}
}

type mapSource map[string][]byte

func (m mapSource) Fetch(ctx context.Context, id string) ([]byte, error) {
	data, ok := m[id]
	if !ok {
		return nil, &Error{ID: id, Err: errors.New("no such artwork")}
	}
	return data, nil
}

func TestAll(t *testing.T) {
	src := mapSource{
		"a": []byte("%PDF-a"),
		"b": []byte("%PDF-b"),
	}

	got, err := All(context.Background(), src, []string{"a", "b", "a"})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string][]byte{
		"a": []byte("%PDF-a"),
		"b": []byte("%PDF-b"),
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("fetched artwork differs (-want +got):\n%s", d)
	}

	// one unreachable item fails the whole batch
	_, err = All(context.Background(), src, []string{"a", "c"})
	var fe *Error
	if !errors.As(err, &fe) || fe.ID != "c" {
		t.Errorf("got %v, want fetch.Error for %q", err, "c")
	}
}
