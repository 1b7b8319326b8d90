// Package web serves sprite frames, animations and scenes over HTTP for
// debugging.
package web

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"image"
	"image/png"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/net/trace"

	"badc0de.net/pkg/go-mana/compositor"
	"badc0de.net/pkg/go-mana/datafiles"
	"badc0de.net/pkg/go-mana/gameworld"
	"badc0de.net/pkg/go-mana/imageprint"
	"badc0de.net/pkg/go-mana/sprite"
	"badc0de.net/pkg/go-mana/things"
)

// BuildTimeout bounds how long a request waits for a sprite set.
const BuildTimeout = 30 * time.Second

type Handler struct {
	th    *things.Things
	cache *sprite.Cache

	sceneLock  sync.Mutex
	scene      *gameworld.Scene
	renderer   *compositor.Renderer
	sceneStart time.Time
}

// NewHandler constructs web handler serving sprites built by cache and
// described by th.
func NewHandler(th *things.Things, cache *sprite.Cache) *Handler {
	return &Handler{
		th:    th,
		cache: cache,
	}
}

// traced records each request in a golang.org/x/net/trace event log,
// viewable at /debug/requests.
func traced(fn func(w http.ResponseWriter, r *http.Request, tr trace.Trace)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tr := trace.New("web", r.URL.Path)
		defer tr.Finish()
		tr.LazyPrintf("query: %s", r.URL.RawQuery)
		fn(w, r, tr)
	}
}

func fail(w http.ResponseWriter, tr trace.Trace, msg string, code int) {
	tr.LazyPrintf("%d: %s", code, msg)
	if code >= http.StatusInternalServerError {
		tr.SetError()
	}
	http.Error(w, msg, code)
}

// request reads the sprite reference from the "sprite" query parameter and
// the optional "variant".
func request(r *http.Request) (sprite.Request, error) {
	ref := r.URL.Query().Get("sprite")
	if ref == "" {
		return sprite.Request{}, fmt.Errorf("sprite not given")
	}
	variant := 0
	if v := r.URL.Query().Get("variant"); v != "" {
		var err error
		if variant, err = strconv.Atoi(v); err != nil {
			return sprite.Request{}, fmt.Errorf("variant not a number")
		}
	}
	return sprite.ParseRequest(ref, variant), nil
}

func (h *Handler) wait(ctx context.Context, req sprite.Request) (*sprite.Set, error) {
	ctx, cancel := context.WithTimeout(ctx, BuildTimeout)
	defer cancel()
	return h.cache.Wait(ctx, req)
}

// frames resolves the set for req and the frame list for the action and
// direction route variables.
func (h *Handler) frames(w http.ResponseWriter, r *http.Request, tr trace.Trace, req sprite.Request) (sprite.FrameList, bool) {
	vars := mux.Vars(r)
	dir, err := sprite.ParseDirection(vars["dir"])
	if err != nil {
		fail(w, tr, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	set, err := h.wait(r.Context(), req)
	if err != nil {
		glog.Errorf("web: %v", err)
		fail(w, tr, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	frames := set.Frames(vars["action"], dir)
	if len(frames) == 0 {
		fail(w, tr, "no such animation", http.StatusNotFound)
		return nil, false
	}
	return frames, true
}

func etagMatches(w http.ResponseWriter, r *http.Request, etag string) bool {
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func writePNG(w http.ResponseWriter, tr trace.Trace, img image.Image) {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		fail(w, tr, "image could not be encoded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) frameHandler(w http.ResponseWriter, r *http.Request, tr trace.Trace) {
	req, err := request(r)
	if err != nil {
		fail(w, tr, err.Error(), http.StatusBadRequest)
		return
	}
	vars := mux.Vars(r)
	fr, err := strconv.Atoi(vars["fr"])
	if err != nil {
		fail(w, tr, "fr not a number", http.StatusBadRequest)
		return
	}

	generation := 1 // bump if the way we generate it changes
	etag := fmt.Sprintf(`W/"frame:%d:%s:%s:%s:%d:image/png"`, generation, req.Key(), vars["action"], vars["dir"], fr)
	if etagMatches(w, r, etag) {
		return
	}

	frames, ok := h.frames(w, r, tr, req)
	if !ok {
		return
	}
	if fr >= len(frames) {
		fail(w, tr, "no such frame", http.StatusNotFound)
		return
	}
	writePNG(w, tr, frames[fr].Image)
}

func (h *Handler) animationHandler(w http.ResponseWriter, r *http.Request, tr trace.Trace) {
	req, err := request(r)
	if err != nil {
		fail(w, tr, err.Error(), http.StatusBadRequest)
		return
	}
	vars := mux.Vars(r)

	generation := 1
	etag := fmt.Sprintf(`W/"animation:%d:%s:%s:%s:image/gif"`, generation, req.Key(), vars["action"], vars["dir"])
	if etagMatches(w, r, etag) {
		return
	}

	frames, ok := h.frames(w, r, tr, req)
	if !ok {
		return
	}
	buf := &bytes.Buffer{}
	if err := imageprint.EncodeGIF(buf, frames); err != nil {
		fail(w, tr, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/gif")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

var previewTemplate = template.Must(template.New("preview").Parse(datafiles.PreviewHTML))

type previewAnimation struct {
	Action    string
	Direction sprite.Direction
	Frames    []template.URL
}

func (h *Handler) previewHandler(w http.ResponseWriter, r *http.Request, tr trace.Trace) {
	req, err := request(r)
	if err != nil {
		fail(w, tr, err.Error(), http.StatusBadRequest)
		return
	}
	set, err := h.wait(r.Context(), req)
	if err != nil {
		fail(w, tr, err.Error(), http.StatusInternalServerError)
		return
	}

	var anims []previewAnimation
	for action, dirs := range set.Actions {
		for dir, frames := range dirs {
			a := previewAnimation{Action: action, Direction: dir}
			for _, f := range frames {
				buf := &bytes.Buffer{}
				if err := png.Encode(buf, f.Image); err != nil {
					fail(w, tr, "image could not be encoded", http.StatusInternalServerError)
					return
				}
				a.Frames = append(a.Frames, template.URL(dataurl.New(buf.Bytes(), "image/png").String()))
			}
			anims = append(anims, a)
		}
	}
	sort.Slice(anims, func(i, j int) bool {
		if anims[i].Action != anims[j].Action {
			return anims[i].Action < anims[j].Action
		}
		return anims[i].Direction < anims[j].Direction
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = previewTemplate.Execute(w, struct {
		Key           sprite.Key
		Width, Height int
		Animations    []previewAnimation
	}{req.Key(), set.Width, set.Height, anims})
	if err != nil {
		glog.Errorf("web: preview of %v: %v", req.Key(), err)
	}
}

func (h *Handler) itemHandler(w http.ResponseWriter, r *http.Request, tr trace.Trace) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		fail(w, tr, "id not a number", http.StatusBadRequest)
		return
	}
	instanceDye := r.URL.Query().Get("dye")

	etag := fmt.Sprintf(`W/"item:1:%d:%s:image/png"`, id, instanceDye)
	if etagMatches(w, r, etag) {
		return
	}

	icon, err := h.th.ItemIcon(r.Context(), id, instanceDye)
	if err != nil {
		fail(w, tr, err.Error(), http.StatusNotFound)
		return
	}
	writePNG(w, tr, icon)
}

func (h *Handler) sceneHandler(w http.ResponseWriter, r *http.Request, tr trace.Trace) {
	h.sceneLock.Lock()
	defer h.sceneLock.Unlock()

	now := time.Since(h.sceneStart)
	if t := r.URL.Query().Get("t"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			fail(w, tr, "t not a duration", http.StatusBadRequest)
			return
		}
		now = d
	}

	canvas := compositor.NewCanvas(h.scene.Width, h.scene.Height)
	h.renderer.Draw(canvas, h.scene.ScrollX, h.scene.ScrollY, now)
	tr.LazyPrintf("rendered %d beings at %v", h.renderer.World.Len(), now)

	w.Header().Set("Cache-Control", "no-cache")
	writePNG(w, tr, canvas)
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/sprite/{action}/{dir}/{fr:[0-9]+}.png", traced(h.frameHandler))
	r.HandleFunc("/sprite/{action}/{dir}.gif", traced(h.animationHandler))
	r.HandleFunc("/sprite/preview", traced(h.previewHandler))
	r.HandleFunc("/item/{id:-?[0-9]+}.png", traced(h.itemHandler))
}

// RegisterSceneRoute serves scene, animated on the wall clock unless a "t"
// duration is passed.
func (h *Handler) RegisterSceneRoute(ctx context.Context, r *mux.Router, scene *gameworld.Scene) error {
	world := gameworld.NewRegistry()
	if err := scene.Populate(world); err != nil {
		return err
	}
	h.scene = scene
	h.renderer = compositor.NewRenderer(h.th, h.cache, world)
	if err := h.renderer.Preload(ctx); err != nil {
		glog.Warningf("web: some scene sprites will not be drawn: %v", err)
	}
	h.sceneStart = time.Now()
	r.HandleFunc("/scene.png", traced(h.sceneHandler))
	return nil
}
