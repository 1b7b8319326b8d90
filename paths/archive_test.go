package paths

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
)

func TestFSArchive(t *testing.T) {
	a := &FSArchive{FS: fstest.MapFS{
		"graphics/sprites/a.xml": &fstest.MapFile{Data: []byte("<sprite/>")},
	}}
	for _, name := range []string{"graphics/sprites/a.xml", "/graphics/sprites/a.xml", "graphics//sprites/./a.xml"} {
		b, err := a.FetchBytes(context.Background(), name)
		if err != nil {
			t.Fatalf("%q: %v", name, err)
		}
		if string(b) != "<sprite/>" {
			t.Errorf("%q: got %q", name, b)
		}
	}
	if _, err := a.FetchBytes(context.Background(), "missing.xml"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v; want not-exist", err)
	}
}

func TestZipArchive(t *testing.T) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	w, err := zw.Create("graphics/items/icon.png")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("png bytes"))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	a := NewZipArchive(zr)
	b, err := a.FetchBytes(context.Background(), "graphics/items/icon.png")
	if err != nil {
		t.Fatalf("failed to fetch: %v", err)
	}
	if string(b) != "png bytes" {
		t.Errorf("got %q", b)
	}
	if err := a.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestHTTPArchiveCaches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path != "/data/a.xml" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	a := NewHTTPArchive(srv.URL + "/data/")
	for i := 0; i < 2; i++ {
		b, err := a.FetchBytes(context.Background(), "a.xml")
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if string(b) != "hello" {
			t.Errorf("fetch %d: got %q", i, b)
		}
	}
	if hits != 1 {
		t.Errorf("got %d requests; want 1", hits)
	}
	if _, err := a.FetchBytes(context.Background(), "b.xml"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v; want not-exist", err)
	}
}
