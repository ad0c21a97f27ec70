package formats

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/voxelforge/voxedit/pkg/voxel"
)

// GLTFCodec exports the generated triangle mesh as a binary glTF document
// (.glb), one node per animation frame with per-vertex colors and flat
// normals. Export only: glTF carries triangles, not voxel structure, so
// there is nothing to read back.
type GLTFCodec struct {
	// Options configures mesh generation for the exported geometry.
	Options voxel.Options
}

// Name implements Codec.
func (GLTFCodec) Name() string { return "glTF Binary Files" }

// Extension implements Codec.
func (GLTFCodec) Extension() string { return ".glb" }

// Capabilities implements Codec.
func (GLTFCodec) Capabilities() Capability { return CapWrite }

// Save implements Writer.
func (c GLTFCodec) Save(path string, frames *voxel.FrameSet) error {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "voxedit"

	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &[4]float64{1, 1, 1, 1},
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(1),
	}
	doc.Materials = []*gltf.Material{{PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}}

	for i := 0; i < frames.FrameCount(); i++ {
		m := voxel.BuildMesh(frames.Frame(i), c.Options)
		if m.VertexCount() == 0 {
			continue
		}
		prim, err := buildPrimitive(doc, m)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name:       fmt.Sprintf("frame%d", i+1),
			Primitives: []*gltf.Primitive{prim},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{Mesh: gltf.Index(len(doc.Meshes) - 1)})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	return gltf.SaveBinary(doc, path)
}

func buildPrimitive(doc *gltf.Document, m *voxel.Mesh) (*gltf.Primitive, error) {
	n := m.VertexCount()
	positions := make([][3]float32, n)
	normals := make([][3]float32, n)
	colors := make([][4]uint8, n)
	uvs := make([][2]float32, n)
	indices := make([]uint32, n)
	for i := 0; i < n; i++ {
		positions[i] = [3]float32{m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]}
		normals[i] = [3]float32{m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2]}
		colors[i] = [4]uint8{m.Colors[i*3], m.Colors[i*3+1], m.Colors[i*3+2], 0xff}
		uvs[i] = [2]float32{m.UVs[i*2], m.UVs[i*2+1]}
		indices[i] = uint32(i)
	}

	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION:   modeler.WritePosition(doc, positions),
			gltf.NORMAL:     modeler.WriteNormal(doc, normals),
			gltf.COLOR_0:    modeler.WriteColor(doc, colors),
			gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, uvs),
		},
		Indices:  gltf.Index(modeler.WriteIndices(doc, indices)),
		Material: gltf.Index(0),
	}
	return prim, nil
}
