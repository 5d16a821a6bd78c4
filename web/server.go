package web

import (
	"log"
	"net/http"
	"os"
	"path"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// ServerSketchesDir is the directory the handlers serve sketches from.
var ServerSketchesDir string

func StartServer(addr string, sketchesDir string, webPath string) error {
	ServerSketchesDir = sketchesDir

	r := mux.NewRouter()
	r.HandleFunc("/json/sketches", HandlerAjaxSketches)
	r.HandleFunc("/json/sketch/{file}", HandlerAjaxSketch)
	r.HandleFunc("/dump/sketch/{file}", HandlerDumpSketch)
	r.HandleFunc("/gltf/sketch/{file}", HandlerGltfSketch)
	r.HandleFunc("/upload/sketch", HandlerUploadSketch)
	r.HandleFunc("/ws", HandlerUpdatesWS)

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(path.Join(webPath, "data"))))

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
