package sketchfile

import (
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mogaika/dreamfast/sketch"
)

// gltfCacher shares geometry accessors between parts of the same kind and
// materials between parts of the same color.
type gltfCacher struct {
	doc       *gltf.Document
	meshes    map[meshKey]uint32
	materials map[sketch.Color]uint32
	geometry  map[sketch.Kind]geomAccessors
}

type meshKey struct {
	kind  sketch.Kind
	color sketch.Color
}

type geomAccessors struct {
	position uint32
	normal   uint32
	indices  uint32
}

func newGltfCacher() *gltfCacher {
	return &gltfCacher{
		doc:       gltf.NewDocument(),
		meshes:    make(map[meshKey]uint32),
		materials: make(map[sketch.Color]uint32),
		geometry:  make(map[sketch.Kind]geomAccessors),
	}
}

func (gc *gltfCacher) geometryFor(kind sketch.Kind) geomAccessors {
	if ga, ok := gc.geometry[kind]; ok {
		return ga
	}
	md := kindMesh(kind)
	ga := geomAccessors{
		position: modeler.WritePosition(gc.doc, md.positions),
		normal:   modeler.WriteNormal(gc.doc, md.normals),
		indices:  modeler.WriteIndices(gc.doc, md.indices),
	}
	gc.geometry[kind] = ga
	return ga
}

func (gc *gltfCacher) materialFor(color sketch.Color) uint32 {
	if id, ok := gc.materials[color]; ok {
		return id
	}
	factor := new([4]float32)
	*factor = [4]float32{color.R, color.G, color.B, 1}
	id := uint32(len(gc.doc.Materials))
	gc.doc.Materials = append(gc.doc.Materials, &gltf.Material{
		Name:        "color",
		DoubleSided: true,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: factor,
		},
	})
	gc.materials[color] = id
	return id
}

func (gc *gltfCacher) meshFor(kind sketch.Kind, color sketch.Color) uint32 {
	key := meshKey{kind: kind, color: color}
	if id, ok := gc.meshes[key]; ok {
		return id
	}
	ga := gc.geometryFor(kind)
	indices := ga.indices
	id := uint32(len(gc.doc.Meshes))
	gc.doc.Meshes = append(gc.doc.Meshes, &gltf.Mesh{
		Name: string(kind),
		Primitives: []*gltf.Primitive{
			{
				Indices: &indices,
				Attributes: map[string]uint32{
					"POSITION": ga.position,
					"NORMAL":   ga.normal,
				},
				Material: gltf.Index(gc.materialFor(color)),
			},
		},
	})
	gc.meshes[key] = id
	return id
}

// ExportGLTF renders a flat assembly as a glTF document: one node per part,
// world TRS on the node, dimensions folded into the node scale so every mesh
// stays a shared unit primitive.
func ExportGLTF(flat *sketch.FlatAssembly) *gltf.Document {
	gc := newGltfCacher()
	doc := gc.doc

	for iPart := range flat.Parts {
		part := &flat.Parts[iPart]

		scale := mulEach(part.Scale, part.Dimensions)
		node := &gltf.Node{
			Name:        part.Name,
			Translation: part.Translation,
			Rotation:    part.Rotation.V.Vec4(part.Rotation.W),
			Scale:       scale,
			Mesh:        gltf.Index(gc.meshFor(part.Kind, part.Color)),
		}

		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
		doc.Nodes = append(doc.Nodes, node)
	}

	doc.Scenes[0].Name = flat.Name
	return doc
}

// ExportGLTFBinary writes a flat assembly as a self-contained .glb stream.
func ExportGLTFBinary(w io.Writer, flat *sketch.FlatAssembly) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(ExportGLTF(flat))
}

func mulEach(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
