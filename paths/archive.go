package paths

import (
	"archive/zip"
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// Archive hands out the raw bytes of a named resource, such as
// "graphics/sprites/monsters/maggot.xml".
//
// Implementations must be safe for concurrent use.
type Archive interface {
	FetchBytes(ctx context.Context, name string) ([]byte, error)
}

// FSArchive reads resources out of an fs.FS, for example an unpacked data
// directory (os.DirFS) or an in-memory fstest.MapFS.
type FSArchive struct {
	FS fs.FS
}

// NewDirArchive returns an archive backed by the passed directory.
func NewDirArchive(dir string) *FSArchive {
	return &FSArchive{FS: os.DirFS(dir)}
}

func (a *FSArchive) FetchBytes(_ context.Context, name string) ([]byte, error) {
	b, err := fs.ReadFile(a.FS, cleanName(name))
	if err != nil {
		return nil, errors.Wrapf(err, "paths: fetching %q", name)
	}
	return b, nil
}

// ZipArchive reads resources out of a zip file. Entries are decompressed on
// each fetch; callers cache what they derive from them.
type ZipArchive struct {
	r *zip.Reader
	c io.Closer
}

// OpenZipArchive opens the zip file at the passed path.
func OpenZipArchive(fileName string) (*ZipArchive, error) {
	rc, err := zip.OpenReader(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "paths: opening zip archive %q", fileName)
	}
	return &ZipArchive{r: &rc.Reader, c: rc}, nil
}

// NewZipArchive wraps an already open zip reader.
func NewZipArchive(r *zip.Reader) *ZipArchive {
	return &ZipArchive{r: r}
}

func (a *ZipArchive) FetchBytes(_ context.Context, name string) ([]byte, error) {
	b, err := fs.ReadFile(a.r, cleanName(name))
	if err != nil {
		return nil, errors.Wrapf(err, "paths: fetching %q from zip", name)
	}
	return b, nil
}

func (a *ZipArchive) Close() error {
	if a.c == nil {
		return nil
	}
	return a.c.Close()
}

// OpenArchive opens the archive at the passed location: an http(s) URL, a
// .zip file or a data directory.
func OpenArchive(location string) (Archive, error) {
	switch {
	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		return NewHTTPArchive(location), nil
	case strings.HasSuffix(strings.ToLower(location), ".zip"):
		z, err := OpenZipArchive(location)
		if err != nil {
			return nil, err
		}
		return z, nil
	}
	st, err := os.Stat(location)
	if err != nil {
		return nil, errors.Wrapf(err, "paths: opening archive %q", location)
	}
	if !st.IsDir() {
		return nil, errors.Errorf("paths: archive %q is neither a zip file nor a directory", location)
	}
	return NewDirArchive(location), nil
}

func cleanName(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}
