package paths

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// HTTPArchive fetches resources relative to a base URL. Successful responses
// are kept in memory for the life of the archive.
type HTTPArchive struct {
	BaseURL string
	Client  *http.Client

	cacheLock sync.Mutex
	cache     map[string][]byte
}

func NewHTTPArchive(baseURL string) *HTTPArchive {
	return &HTTPArchive{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		cache:   make(map[string][]byte),
	}
}

func (a *HTTPArchive) FetchBytes(ctx context.Context, name string) ([]byte, error) {
	name = cleanName(name)

	a.cacheLock.Lock()
	if b, ok := a.cache[name]; ok {
		a.cacheLock.Unlock()
		glog.V(2).Infof("paths/http.go: FetchBytes(%q): returning cached buffer", name)
		return b, nil
	}
	a.cacheLock.Unlock()

	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}
	url := a.BaseURL + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "paths: building request for %q", url)
	}
	glog.V(2).Infof("paths/http.go: getting http file %q", url)
	response, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "paths: FetchBytes(%q) failed", url)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		e := os.ErrInvalid
		if response.StatusCode == http.StatusNotFound {
			e = os.ErrNotExist
		}
		return nil, errors.Wrapf(e, "paths: FetchBytes(%q): http response.StatusCode=%v, want 200", url, response.StatusCode)
	}

	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, response.Body); err != nil {
		return nil, errors.Wrapf(err, "paths: copying response for %q", url)
	}

	a.cacheLock.Lock()
	a.cache[name] = buf.Bytes()
	a.cacheLock.Unlock()

	return buf.Bytes(), nil
}
