package web

import (
	"bytes"
	"context"
	"image"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-mana/gameworld"
	"badc0de.net/pkg/go-mana/sprite"
	"badc0de.net/pkg/go-mana/things"
	"badc0de.net/pkg/go-mana/ttesting"
	"badc0de.net/pkg/go-mana/xmls"
)

type setBuilder map[string]*sprite.Set

func (b setBuilder) Assemble(ctx context.Context, req sprite.Request) (*sprite.Set, error) {
	set, ok := b[req.Path]
	if !ok {
		return nil, errors.Errorf("no set %q", req.Path)
	}
	return set, nil
}

func solid(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 200, 255
	}
	return img
}

func newTestServer(t *testing.T) (*Handler, *mux.Router) {
	t.Helper()
	th, err := things.New()
	if err != nil {
		t.Fatal(err)
	}
	mons, err := xmls.ReadMonsters(strings.NewReader(`<monsters offset="1001">
	<monster id="1" name="Maggot"><sprite>monsters/maggot.xml</sprite></monster>
</monsters>`))
	if err != nil {
		t.Fatal(err)
	}
	th.AddMonsters(mons)

	b := setBuilder{
		"monsters/maggot.xml": {
			Width: 4, Height: 3,
			Actions: map[string]map[sprite.Direction]sprite.FrameList{
				"stand": {sprite.Down: {
					{Image: solid(4, 3), Delay: 100 * time.Millisecond},
					{Image: solid(4, 3), Delay: 100 * time.Millisecond, OffsetX: 1},
				}},
			},
		},
	}
	h := NewHandler(th, sprite.NewCache(b, 0))
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return h, r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

var maggot = "sprite=" + url.QueryEscape("monsters/maggot.xml")

func TestFrameHandler(t *testing.T) {
	_, r := newTestServer(t)

	rec := get(r, "/sprite/stand/down/1.png?"+maggot)
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	ttesting.AssertEqualInt(t, "width", img.Bounds().Dx(), 4)

	etag := rec.Header().Get("ETag")
	req := httptest.NewRequest(http.MethodGet, "/sprite/stand/down/1.png?"+maggot, nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	ttesting.AssertEqualInt(t, "cached status", rec.Code, http.StatusNotModified)

	for target, want := range map[string]int{
		"/sprite/stand/down/2.png?" + maggot:                      http.StatusNotFound,
		"/sprite/walk/down/0.png?" + maggot:                       http.StatusNotFound,
		"/sprite/stand/sideways/0.png?" + maggot:                  http.StatusBadRequest,
		"/sprite/stand/down/0.png":                                http.StatusBadRequest,
		"/sprite/stand/down/0.png?" + maggot + "&variant=x":       http.StatusBadRequest,
		"/sprite/stand/down/0.png?sprite=" + url.QueryEscape("x"): http.StatusInternalServerError,
	} {
		ttesting.AssertEqualInt(t, target, get(r, target).Code, want)
	}
}

func TestAnimationHandler(t *testing.T) {
	_, r := newTestServer(t)

	rec := get(r, "/sprite/stand/down.gif?"+maggot)
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	ttesting.AssertEqualString(t, "content type", rec.Header().Get("Content-Type"), "image/gif")
	g, err := gif.DecodeAll(rec.Body)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	ttesting.AssertEqualInt(t, "frames", len(g.Image), 2)
	ttesting.AssertEqualInt(t, "width", g.Config.Width, 5)
}

func TestPreviewHandler(t *testing.T) {
	_, r := newTestServer(t)

	rec := get(r, "/sprite/preview?"+maggot)
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, "data:image/png;base64,") {
		t.Errorf("no inline images in %q", body)
	}
	if !strings.Contains(body, "2 frames") {
		t.Errorf("frame count missing from %q", body)
	}
}

func TestSceneHandler(t *testing.T) {
	h, r := newTestServer(t)
	scene, err := gameworld.LoadScene(strings.NewReader(`
width: 10
height: 10
beings:
  - {id: 1, type: monster, job: 1002, x: 5, y: -10}
`))
	if err != nil {
		t.Fatal(err)
	}
	if err := h.RegisterSceneRoute(context.Background(), r, scene); err != nil {
		t.Fatal(err)
	}

	rec := get(r, "/scene.png?t=0s")
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	ttesting.AssertEqualInt(t, "width", img.Bounds().Dx(), 10)
	// Centered on x=5, lifted by 16 pixels: columns 3 to 6, rows 3 to 5.
	if r, _, _, a := img.At(3, 3).RGBA(); r>>8 != 200 || a>>8 != 255 {
		t.Errorf("got %v at 3,3; want the maggot", img.At(3, 3))
	}
	if _, _, _, a := img.At(2, 3).RGBA(); a != 0 {
		t.Errorf("unexpected paint at 2,3")
	}

	ttesting.AssertEqualInt(t, "bad t", get(r, "/scene.png?t=soon").Code, http.StatusBadRequest)
}
