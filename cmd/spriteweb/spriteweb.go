// Command spriteweb serves sprite frames, animations, item icons and an
// optional scene over HTTP.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "golang.org/x/net/trace"

	"badc0de.net/pkg/go-mana/dye"
	"badc0de.net/pkg/go-mana/gameworld"
	"badc0de.net/pkg/go-mana/sprite"
	"badc0de.net/pkg/go-mana/things/full"
	"badc0de.net/pkg/go-mana/web"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for spriteweb")
	debugAddress  = flag.String("debug_web_server_listen_address", "", "where /debug/requests is served, if anywhere")
	scenePath     = flag.String("scene", "", "YAML scene to serve at /scene.png")
	maxChains     = flag.Int64("max_chains", sprite.DefaultMaxChains, "sprite sets built concurrently")
)

func main() {
	full.SetupFlags()
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	ctx := context.Background()
	archive, th, err := full.FromFlags(ctx)
	if err != nil {
		glog.Exitf("spriteweb: %v", err)
	}
	cache := sprite.NewCache(&sprite.Assembler{Archive: archive, Dyes: &dye.Cache{}}, *maxChains)
	h := web.NewHandler(th, cache)

	r := mux.NewRouter()
	h.RegisterRoutes(r)
	if *scenePath != "" {
		f, err := os.Open(*scenePath)
		if err != nil {
			glog.Exitf("spriteweb: %v", err)
		}
		scene, err := gameworld.LoadScene(f)
		f.Close()
		if err != nil {
			glog.Exitf("spriteweb: %v", err)
		}
		if err := h.RegisterSceneRoute(ctx, r, scene); err != nil {
			glog.Exitf("spriteweb: %v", err)
		}
	}

	if *debugAddress != "" {
		// x/net/trace registers its pages on the default mux.
		go func() {
			glog.Errorf("debug server: %v", http.ListenAndServe(*debugAddress, nil))
		}()
	}

	glog.Infof("spriteweb: listening on %s", *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, handlers.CombinedLoggingHandler(os.Stderr, handlers.CompressHandler(r))))
}
