package web

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mogaika/dreamfast/sketch"
	"github.com/mogaika/dreamfast/sketchfile"
	"github.com/mogaika/dreamfast/webutils"
)

// sketchPath resolves a request file name inside the sketches directory,
// refusing anything that would escape it.
func sketchPath(file string) (string, error) {
	if file != filepath.Base(file) || !strings.HasSuffix(file, ".json") {
		return "", fmt.Errorf("Invalid sketch file name %q", file)
	}
	return filepath.Join(ServerSketchesDir, file), nil
}

func HandlerAjaxSketches(w http.ResponseWriter, r *http.Request) {
	if files, err := sketchfile.List(ServerSketchesDir); err != nil {
		webutils.WriteError(w, err)
	} else {
		webutils.WriteJson(w, files)
	}
}

func HandlerAjaxSketch(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	path, err := sketchPath(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	if flat, err := sketchfile.Load(path); err != nil {
		webutils.WriteError(w, err)
	} else {
		webutils.WriteJson(w, flat)
	}
}

func HandlerDumpSketch(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	path, err := sketchPath(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	f, err := os.Open(path)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	defer f.Close()
	webutils.WriteFile(w, f, file)
}

func HandlerGltfSketch(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	path, err := sketchPath(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	flat, err := sketchfile.Load(path)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFileHeaders(w, strings.TrimSuffix(file, ".json")+".glb")
	if err := sketchfile.ExportGLTFBinary(w, flat); err != nil {
		webutils.WriteError(w, fmt.Errorf("Error exporting gltf: %v", err))
	}
}

// HandlerUploadSketch accepts a sketch JSON upload, revalidates it through
// the schema and stores it next to the compiled ones.
func HandlerUploadSketch(w http.ResponseWriter, r *http.Request) {
	var flat sketch.FlatAssembly
	if err := webutils.ReadJsonFile(r, "data", &flat); err != nil {
		webutils.WriteError(w, err)
		return
	}

	path, err := sketchfile.Save(ServerSketchesDir, &flat)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	// loading back runs the schema; reject files that validate to nothing
	if _, err := sketchfile.Load(path); err != nil {
		os.Remove(path)
		webutils.WriteError(w, err)
		return
	}

	NotifySketch(filepath.Base(path))
	webutils.WriteJson(w, filepath.Base(path))
}
