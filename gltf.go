package arbor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadModel reads a glTF 2.0 file (.gltf or .glb) and uploads its meshes
// and textures to the GPU. Must be called on the main thread with a live
// GL context.
func LoadModel(path string) (*Model, error) {
	stop := startSpinner(filepath.Base(path))
	doc, err := gltf.Open(path)
	stop()
	if err != nil {
		return nil, errors.Wrapf(err, "open gltf %s", path)
	}

	loader := &gltfLoader{
		doc:      doc,
		dir:      filepath.Dir(path),
		textures: make(map[uint32]*Texture),
	}

	model := &Model{name: filepath.Base(path)}
	for _, idx := range loader.rootNodes() {
		if err := loader.addNode(model, idx, NewTransform()); err != nil {
			return nil, errors.Wrapf(err, "load gltf %s", path)
		}
	}
	for _, tex := range loader.textures {
		model.textures = append(model.textures, tex)
	}
	return model, nil
}

// MustLoadModel is LoadModel but aborts the program on failure. Convenient
// for examples where a missing asset is unrecoverable.
func MustLoadModel(path string) *Model {
	model, err := LoadModel(path)
	if err != nil {
		fatalf("%+v", err)
	}
	return model
}

type gltfLoader struct {
	doc      *gltf.Document
	dir      string
	textures map[uint32]*Texture
}

func (l *gltfLoader) rootNodes() []uint32 {
	if l.doc.Scene != nil {
		return l.doc.Scenes[*l.doc.Scene].Nodes
	}
	if len(l.doc.Scenes) > 0 {
		return l.doc.Scenes[0].Nodes
	}
	// No scene declared; treat every node as a root.
	roots := make([]uint32, len(l.doc.Nodes))
	for i := range l.doc.Nodes {
		roots[i] = uint32(i)
	}
	return roots
}

// addNode flattens the glTF node hierarchy into the model's mesh node
// list, accumulating transforms so each mesh node is relative to the
// model root.
func (l *gltfLoader) addNode(model *Model, idx uint32, parent Transform) error {
	node := l.doc.Nodes[idx]
	local := Combine(parent, nodeTransform(node))

	if node.Mesh != nil {
		mesh := l.doc.Meshes[*node.Mesh]
		mn := meshNode{name: node.Name, transform: local}
		for pi, prim := range mesh.Primitives {
			built, err := l.buildPrimitive(prim)
			if err != nil {
				return errors.Wrapf(err, "mesh %q primitive %d", mesh.Name, pi)
			}
			mn.primitives = append(mn.primitives, built)
		}
		model.nodes = append(model.nodes, mn)
	}

	for _, child := range node.Children {
		if err := l.addNode(model, child, local); err != nil {
			return err
		}
	}
	return nil
}

// nodeTransform reads a glTF node's transform. The format allows either a
// TRS triple or a whole matrix, so the matrix form is decomposed into the
// same Transform representation.
func nodeTransform(node *gltf.Node) Transform {
	if m := node.MatrixOrDefault(); m != gltf.DefaultMatrix {
		var m64 [16]float64
		for i, v := range m {
			m64[i] = float64(v)
		}
		return decomposeMatrix(m64)
	}
	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	return TRS(
		mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])},
		mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}},
		mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])},
	)
}

// decomposeMatrix splits a column-major glTF node matrix into translation,
// rotation, and scale. glTF forbids shear and negative determinants in node
// matrices, so basis-column lengths recover the scale exactly.
func decomposeMatrix(m [16]float64) Transform {
	var mat mgl32.Mat4
	for i, v := range m {
		mat[i] = float32(v)
	}

	position := mgl32.Vec3{mat[12], mat[13], mat[14]}
	scale := mgl32.Vec3{
		mgl32.Vec3{mat[0], mat[1], mat[2]}.Len(),
		mgl32.Vec3{mat[4], mat[5], mat[6]}.Len(),
		mgl32.Vec3{mat[8], mat[9], mat[10]}.Len(),
	}

	var rot mgl32.Mat4
	rot.SetCol(0, mgl32.Vec4{mat[0] / scale.X(), mat[1] / scale.X(), mat[2] / scale.X(), 0})
	rot.SetCol(1, mgl32.Vec4{mat[4] / scale.Y(), mat[5] / scale.Y(), mat[6] / scale.Y(), 0})
	rot.SetCol(2, mgl32.Vec4{mat[8] / scale.Z(), mat[9] / scale.Z(), mat[10] / scale.Z(), 0})
	rot.SetCol(3, mgl32.Vec4{0, 0, 0, 1})

	return TRS(position, mgl32.Mat4ToQuat(rot).Normalize(), scale)
}

func (l *gltfLoader) buildPrimitive(prim *gltf.Primitive) (*Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, errors.New("primitive has no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(l.doc, l.doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, errors.Wrap(err, "read positions")
	}

	vertices := make([]Vertex, len(positions))
	for i, p := range positions {
		vertices[i].Position = mgl32.Vec3{p[0], p[1], p[2]}
		vertices[i].Color = mgl32.Vec4{1, 1, 1, 1}
	}

	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(l.doc, l.doc.Accessors[idx], nil)
		if err != nil {
			return nil, errors.Wrap(err, "read normals")
		}
		for i := range normals {
			vertices[i].Normal = mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]}
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err := modeler.ReadTextureCoord(l.doc, l.doc.Accessors[idx], nil)
		if err != nil {
			return nil, errors.Wrap(err, "read texture coords")
		}
		for i := range uvs {
			vertices[i].TexUV = mgl32.Vec2{uvs[i][0], uvs[i][1]}
		}
	}
	if idx, ok := prim.Attributes[gltf.COLOR_0]; ok {
		colors, err := modeler.ReadColor(l.doc, l.doc.Accessors[idx], nil)
		if err != nil {
			return nil, errors.Wrap(err, "read vertex colors")
		}
		for i := range colors {
			vertices[i].Color = mgl32.Vec4{
				float32(colors[i][0]) / 255,
				float32(colors[i][1]) / 255,
				float32(colors[i][2]) / 255,
				float32(colors[i][3]) / 255,
			}
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(l.doc, l.doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, errors.Wrap(err, "read indices")
		}
	} else {
		indices = make([]uint32, len(vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	material, textures, err := l.buildMaterial(prim.Material)
	if err != nil {
		return nil, err
	}
	return NewMesh(vertices, indices, textures, material), nil
}

func (l *gltfLoader) buildMaterial(idx *uint32) (Material, []*Texture, error) {
	material := Material{BaseColorFactor: mgl32.Vec4{1, 1, 1, 1}}
	if idx == nil {
		return material, nil, nil
	}
	mat := l.doc.Materials[*idx]
	material.DoubleSided = mat.DoubleSided
	if mat.AlphaMode == gltf.AlphaMask {
		material.AlphaMask = true
		material.AlphaCutoff = float32(mat.AlphaCutoffOrDefault())
	}

	var textures []*Texture
	if pbr := mat.PBRMetallicRoughness; pbr != nil {
		bcf := pbr.BaseColorFactorOrDefault()
		material.BaseColorFactor = mgl32.Vec4{
			float32(bcf[0]), float32(bcf[1]), float32(bcf[2]), float32(bcf[3]),
		}
		if pbr.BaseColorTexture != nil {
			tex, err := l.texture(pbr.BaseColorTexture.Index, "diffuse")
			if err != nil {
				return material, nil, err
			}
			textures = append(textures, tex)
		}
	}
	return material, textures, nil
}

// texture resolves a glTF texture index to an uploaded GL texture,
// reusing the instance when several primitives share the same image.
func (l *gltfLoader) texture(idx uint32, role string) (*Texture, error) {
	if tex, ok := l.textures[idx]; ok {
		return tex, nil
	}
	texDef := l.doc.Textures[idx]
	if texDef.Source == nil {
		return nil, errors.Errorf("texture %d has no image source", idx)
	}
	img, err := l.decodeImage(*texDef.Source)
	if err != nil {
		return nil, errors.Wrapf(err, "texture %d", idx)
	}
	tex := NewTexture(img, role)
	l.textures[idx] = tex
	return tex, nil
}

func (l *gltfLoader) decodeImage(idx uint32) (image.Image, error) {
	imgDef := l.doc.Images[idx]
	var data []byte
	switch {
	case imgDef.BufferView != nil:
		var err error
		data, err = modeler.ReadBufferView(l.doc, l.doc.BufferViews[*imgDef.BufferView])
		if err != nil {
			return nil, errors.Wrap(err, "read image buffer view")
		}
	case imgDef.URI != "":
		var err error
		data, err = os.ReadFile(filepath.Join(l.dir, imgDef.URI))
		if err != nil {
			return nil, errors.Wrap(err, "read image file")
		}
	default:
		return nil, errors.New("image has neither buffer view nor URI")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	return img, nil
}

// startSpinner animates a small stderr spinner while an asset loads.
// The returned func stops it and waits for the goroutine to exit so the
// caller's output is not interleaved with spinner frames.
func startSpinner(label string) func() {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		frames := []byte{'\\', '|', '/', '-'}
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-done:
				fmt.Fprintf(os.Stderr, "\r[arbor] loading %s... done\n", label)
				return
			case <-ticker.C:
				fmt.Fprintf(os.Stderr, "\r[arbor] loading %s... %c", label, frames[i%len(frames)])
			}
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}
