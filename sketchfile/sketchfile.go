// Package sketchfile persists compiled sketches as JSON under a sketches
// directory and exports them to glTF. Loading goes back through the
// primitive schema: a sketch file is external input and gets no trust.
package sketchfile

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mogaika/dreamfast/sketch"
	"github.com/mogaika/dreamfast/utils"
)

var sanitizeRe = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Stem builds the file stem for an object name: sanitized name plus a
// timestamp, e.g. "tugboat_20240110_153012".
func Stem(name string, t time.Time) string {
	base := strings.ToLower(sanitizeRe.ReplaceAllString(name, ""))
	if base == "" {
		base = "object"
	}
	return base + "_" + t.Format("20060102_150405")
}

// Save writes the flattened assembly as indented JSON and returns the file
// path.
func Save(dir string, flat *sketch.FlatAssembly) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "Cannot create sketches dir %q", dir)
	}
	data, err := json.MarshalIndent(flat, "", "  ")
	if err != nil {
		return "", errors.Wrapf(err, "Failed to marshal sketch %q", flat.Name)
	}
	path := filepath.Join(dir, Stem(flat.Name, time.Now())+".json")
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrapf(err, "Cannot write sketch file %q", path)
	}
	return path, nil
}

// Load reads a flattened sketch back and pushes every part through the
// primitive schema. Parts that fail validation are dropped with a warning;
// a file with no valid parts at all is an error.
func Load(path string) (*sketch.FlatAssembly, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot read sketch file %q", path)
	}
	var flat sketch.FlatAssembly
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal sketch file %q", path)
	}

	valid := make([]sketch.FlatPart, 0, len(flat.Parts))
	bounds := sketch.EmptyBox()
	for _, fp := range flat.Parts {
		part, err := revalidate(fp)
		if err != nil {
			log.Printf("[sketchfile] %s: dropped part: %v", filepath.Base(path), err)
			continue
		}
		fp.Kind = part.Prim.Kind
		fp.Dimensions = part.Prim.Dimensions
		if part.Prim.Color != nil {
			fp.Color = *part.Prim.Color
		}
		valid = append(valid, fp)
		b := sketch.TransformedBox(fp.World, part.Prim.LocalBox())
		bounds = bounds.ExtendPoint(b.Min)
		bounds = bounds.ExtendPoint(b.Max)
	}
	if len(valid) == 0 {
		return nil, errors.Errorf("sketch file %q has no valid parts", path)
	}
	flat.Parts = valid
	// stored bounds may describe parts that were just dropped
	flat.Bounds = bounds
	return &flat, nil
}

// revalidate rebuilds an untrusted flat part as a schema candidate. The
// flat form stores absolute transforms in the normalized frame, so
// translation feeds the location check and the rotation is converted back
// to euler degrees. Scale is checked here instead of against the raw-input
// schema range: normalization folds a corrective 1/largest scale into every
// part, which for large assemblies lands well below the input minimum.
func revalidate(fp sketch.FlatPart) (sketch.Part, error) {
	for _, v := range fp.World {
		if !utils.IsFinite32(v) {
			return sketch.Part{}, errors.Errorf("part %q has non-finite world transform", fp.Name)
		}
	}
	for i := 0; i < 3; i++ {
		if !utils.IsFinite32(fp.Scale[i]) || fp.Scale[i] <= 0 {
			return sketch.Part{}, errors.Errorf("part %q has non-positive scale %v", fp.Name, fp.Scale[i])
		}
	}
	euler := utils.QuatToEulerDegrees(fp.Rotation)
	c := sketch.PartCandidate{
		Name:            fp.Name,
		Kind:            string(fp.Kind),
		Dimensions:      utils.Vec3To64(fp.Dimensions),
		Location:        utils.Vec3To64(fp.Translation),
		RotationDegrees: utils.Vec3To64(euler),
		Color:           &fp.Color,
	}
	return sketch.Validate(c)
}

// SaveRaw persists the pre-normalized arena form for later re-planning.
func SaveRaw(dir string, a *sketch.Assembly) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "Cannot create sketches dir %q", dir)
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", errors.Wrapf(err, "Failed to marshal assembly %q", a.Name)
	}
	path := filepath.Join(dir, Stem(a.Name, time.Now())+".raw.json")
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrapf(err, "Cannot write sketch file %q", path)
	}
	return path, nil
}

// LoadRaw reads a pre-normalized assembly, revalidating every part and the
// tree structure. Invalid parts fail the whole file here: dropping a part
// would orphan its subtree silently.
func LoadRaw(path string) (*sketch.Assembly, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot read sketch file %q", path)
	}
	var a sketch.Assembly
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal sketch file %q", path)
	}
	for i := range a.Parts {
		p := &a.Parts[i]
		c := sketch.PartCandidate{
			Name:            p.Name,
			Kind:            string(p.Prim.Kind),
			Dimensions:      utils.Vec3To64(p.Prim.Dimensions),
			Location:        utils.Vec3To64(p.Local.Translation),
			RotationDegrees: utils.Vec3To64(p.Local.RotationDegrees),
			Scale:           utils.Vec3To64(p.Local.Scale),
			Color:           p.Prim.Color,
		}
		part, err := sketch.Validate(c)
		if err != nil {
			return nil, errors.Wrapf(err, "Sketch file %q", path)
		}
		part.Parent = p.Parent
		part.Ordinal = p.Ordinal
		a.Parts[i] = part
	}
	// structural check; cycles are fully diagnosed at assemble time
	if _, err := sketch.ComposeWorld(a.Parts); err != nil {
		return nil, errors.Wrapf(err, "Sketch file %q", path)
	}
	return &a, nil
}

// List returns the sketch JSON files in dir, newest first.
func List(dir string) ([]string, error) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "Cannot list sketches dir %q", dir)
	}
	var out []string
	for _, fi := range entries {
		if fi.IsDir() || !strings.HasSuffix(fi.Name(), ".json") {
			continue
		}
		out = append(out, fi.Name())
	}
	// ReadDir sorts by name; timestamps in stems make that chronological
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
