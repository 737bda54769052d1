// Package renderer draws scene draw lists with OpenGL.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/flora/internal/engine/mesh"
	"github.com/Faultbox/flora/internal/engine/shader"
	"github.com/Faultbox/flora/internal/scene"
	"github.com/Faultbox/flora/pkg/math"
)

// maxTextures bounds the uploaded gradient textures. Overflow frees all.
const maxTextures = 16

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background color.RGBA
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Renderer uploads primitives once per mesh key and draws every frame's
// items with flat, unlit materials.
type Renderer struct {
	config Config
	log    *zap.Logger

	program  *shader.Program
	meshes   *mesh.Cache
	gpu      map[string]*gpuMesh
	textures map[string]uint32

	viewProj math.Mat4
	stats    Stats
}

// Stats describes the last rendered frame.
type Stats struct {
	DrawCalls   int
	Triangles   int
	Transparent int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, meshes *mesh.Cache, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if meshes == nil {
		meshes = mesh.NewCache()
	}
	r := &Renderer{
		config:   cfg,
		log:      log,
		meshes:   meshes,
		gpu:      make(map[string]*gpuMesh),
		textures: make(map[string]uint32),
		viewProj: math.Identity(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	// Petals and leaves are single discs seen from both sides.
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.MULTISAMPLE)
	bg := cfg.Background
	gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)

	var err error
	r.program, err = shader.NewProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.gpu)), zap.Int("textures", len(r.textures)))
	for key, m := range r.gpu {
		deleteMesh(m)
		delete(r.gpu, key)
	}
	r.dropTextures()
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetViewProjection sets the camera matrix used by Render.
func (r *Renderer) SetViewProjection(m math.Mat4) {
	r.viewProj = m
}

// Stats returns counters for the last frame.
func (r *Renderer) Stats() Stats { return r.stats }

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Render clears the frame and draws items: opaque ones first, then
// transparent ones back to front without depth writes.
func (r *Renderer) Render(items []scene.DrawItem) error {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.stats = Stats{}

	r.program.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.program.Uniform("uTexture"), 0)

	var transparent []*scene.DrawItem
	for i := range items {
		it := &items[i]
		if it.Material.Transparent {
			transparent = append(transparent, it)
			continue
		}
		if err := r.draw(it); err != nil {
			return err
		}
	}

	if len(transparent) > 0 {
		sort.SliceStable(transparent, func(a, b int) bool {
			return r.depth(transparent[a]) > r.depth(transparent[b])
		})
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		for _, it := range transparent {
			if err := r.draw(it); err != nil {
				return err
			}
		}
		gl.Disable(gl.BLEND)
		gl.DepthMask(true)
		r.stats.Transparent = len(transparent)
	}

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

// depth is the clip-space w of the item's origin, larger is farther.
func (r *Renderer) depth(it *scene.DrawItem) float32 {
	p := it.World.Position()
	return r.viewProj.MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})[3]
}

func (r *Renderer) draw(it *scene.DrawItem) error {
	gm, err := r.mesh(it.Primitive)
	if err != nil {
		return err
	}
	if gm == nil {
		return nil
	}
	mat := it.Material

	mvp := r.viewProj.Mul(it.World)
	gl.UniformMatrix4fv(r.program.Uniform("uMVP"), 1, false, &mvp[0])

	opacity := mat.Opacity
	if opacity == 0 && !mat.Transparent {
		opacity = 1
	}
	c := mat.Color
	gl.Uniform4f(r.program.Uniform("uColor"), float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(opacity))

	if mat.Texture != nil {
		gl.BindTexture(gl.TEXTURE_2D, r.texture(mat.TextureKey, mat.Texture))
		gl.Uniform1i(r.program.Uniform("uTextured"), 1)
	} else {
		gl.Uniform1i(r.program.Uniform("uTextured"), 0)
	}

	gl.DepthMask(mat.DepthWrite)
	gl.BindVertexArray(gm.vao)
	gl.DrawElements(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	if it.Primitive.Key == "" {
		deleteMesh(gm)
	}
	r.stats.DrawCalls++
	r.stats.Triangles += int(gm.indexCount / 3)
	return nil
}

// mesh returns the uploaded mesh for p. Keyless primitives are uploaded
// for a single draw.
func (r *Renderer) mesh(p *scene.Primitive) (*gpuMesh, error) {
	if p.Key != "" {
		if gm, ok := r.gpu[p.Key]; ok {
			return gm, nil
		}
	}
	m := r.meshes.Get(p)
	if m.Triangles() == 0 {
		return nil, nil
	}
	gm := upload(m)
	if p.Key != "" {
		r.gpu[p.Key] = gm
		r.log.Debug("mesh uploaded",
			zap.String("key", p.Key),
			zap.Int("vertices", len(m.Vertices)),
			zap.Int("triangles", m.Triangles()),
		)
	}
	return gm, nil
}

func upload(m *mesh.Mesh) *gpuMesh {
	gm := &gpuMesh{indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	vertexSize := int(unsafe.Sizeof(mesh.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return gm
}

func deleteMesh(gm *gpuMesh) {
	gl.DeleteVertexArrays(1, &gm.vao)
	gl.DeleteBuffers(1, &gm.vbo)
	gl.DeleteBuffers(1, &gm.ebo)
}

// texture returns the GL texture for key, uploading img on first use.
func (r *Renderer) texture(key string, img *image.RGBA) uint32 {
	if id, ok := r.textures[key]; ok {
		return id
	}
	if len(r.textures) >= maxTextures {
		r.dropTextures()
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	b := img.Bounds()
	// Row 0 is uploaded first, so v=0 samples the image's first row.
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	r.textures[key] = id
	r.log.Debug("texture uploaded", zap.String("key", key))
	return id
}

func (r *Renderer) dropTextures() {
	for key, id := range r.textures {
		gl.DeleteTextures(1, &id)
		delete(r.textures, key)
	}
}
