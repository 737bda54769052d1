// Package preview renders a plant's draw list into a terminal cell grid.
package preview

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/flora/internal/engine/mesh"
	"github.com/Faultbox/flora/internal/plant"
	"github.com/Faultbox/flora/internal/scene"
	"github.com/Faultbox/flora/pkg/math"
)

// cellAspect is how many columns make up one row's height on screen.
const cellAspect = 2

var glyphs = map[scene.Kind]rune{
	scene.KindStem:      '|',
	scene.KindTube:      '~',
	scene.KindPetiole:   ':',
	scene.KindBlade:     '&',
	scene.KindStamen:    'o',
	scene.KindPetalDisc: '@',
	scene.KindGround:    '.',
}

// Glyph returns the character drawn for a node kind.
func Glyph(k scene.Kind) rune {
	if g, ok := glyphs[k]; ok {
		return g
	}
	return '*'
}

// Canvas is an orthographic software rasterizer over a tcell screen. The
// view looks down -Z after yaw about Y and pitch about X.
type Canvas struct {
	screen tcell.Screen
	meshes *mesh.Cache

	Center     math.Vec3 // world point at the middle of the screen
	ViewHeight float32   // world units spanning the screen vertically
	Yaw        float32
	Pitch      float32
	Background tcell.Color
	Status     string

	width, height int
	depth         []float32
	hits          []string
}

// NewCanvas creates a canvas framing a plant of the given stem height.
func NewCanvas(screen tcell.Screen, meshes *mesh.Cache, stemHeight float32) *Canvas {
	if meshes == nil {
		meshes = mesh.NewCache()
	}
	c := &Canvas{
		screen:     screen,
		meshes:     meshes,
		Pitch:      0.3,
		Background: rgb(plant.SkyColor),
	}
	c.Frame(stemHeight)
	return c
}

// Frame recenters the view on a plant of the given stem height.
func (c *Canvas) Frame(stemHeight float32) {
	c.Center = math.Vec3{Y: stemHeight / 2}
	c.ViewHeight = stemHeight*1.3 + 0.5
}

func (c *Canvas) view() math.Mat4 {
	return math.RotateX(c.Pitch).
		Mul(math.RotateY(-c.Yaw)).
		Mul(math.Translate(-c.Center.X, -c.Center.Y, -c.Center.Z))
}

// project maps a view-space point to fractional cell coordinates.
func (c *Canvas) project(p math.Vec3) (x, y float32) {
	scale := float32(c.height) / c.ViewHeight
	return float32(c.width)/2 + p.X*scale*cellAspect, float32(c.height)/2 - p.Y*scale
}

func (c *Canvas) resize() {
	w, h := c.screen.Size()
	if w == c.width && h == c.height && c.depth != nil {
		return
	}
	c.width, c.height = w, h
	c.depth = make([]float32, w*h)
	c.hits = make([]string, w*h)
}

// Render draws the items and shows the screen. An empty list draws only the
// background.
func (c *Canvas) Render(items []scene.DrawItem) error {
	c.resize()
	bg := tcell.StyleDefault.Background(c.Background)
	c.screen.Fill(' ', bg)
	for i := range c.depth {
		c.depth[i] = -1e30
		c.hits[i] = ""
	}

	if c.width == 0 || c.height == 0 {
		c.screen.Show()
		return nil
	}

	view := c.view()
	for i := range items {
		c.drawItem(&items[i], view)
	}

	if c.Status != "" && c.height > 0 {
		c.drawText(0, c.height-1, c.Status, tcell.StyleDefault.
			Foreground(tcell.ColorBlack).Background(tcell.ColorWhite))
	}
	c.screen.Show()
	return nil
}

// HitAt returns the hit id of the nearest pickable drawn at a cell.
func (c *Canvas) HitAt(x, y int) string {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return ""
	}
	return c.hits[y*c.width+x]
}

type projected struct {
	x, y, z float32
	u, v    float32
}

func (c *Canvas) drawItem(it *scene.DrawItem, view math.Mat4) {
	m := c.meshes.Get(it.Primitive)
	if m.Triangles() == 0 {
		return
	}
	mv := view.Mul(it.World)
	pts := make([]projected, len(m.Vertices))
	for i, v := range m.Vertices {
		p := mv.TransformPoint(math.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]})
		x, y := c.project(p)
		pts[i] = projected{x: x, y: y, z: p.Z, u: v.TexCoord[0], v: v.TexCoord[1]}
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		c.fill(it, pts[m.Indices[i]], pts[m.Indices[i+1]], pts[m.Indices[i+2]])
	}
}

// fill rasterizes one triangle by testing cell centers. Triangles thinner
// than a cell still mark the cell under their centroid.
func (c *Canvas) fill(it *scene.DrawItem, a, b, d projected) {
	area := (b.x-a.x)*(d.y-a.y) - (d.x-a.x)*(b.y-a.y)
	minX := clampInt(floor(min(a.x, b.x, d.x)), 0, c.width-1)
	maxX := clampInt(floor(max(a.x, b.x, d.x)), 0, c.width-1)
	minY := clampInt(floor(min(a.y, b.y, d.y)), 0, c.height-1)
	maxY := clampInt(floor(max(a.y, b.y, d.y)), 0, c.height-1)

	covered := false
	if area != 0 {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				px, py := float32(x)+0.5, float32(y)+0.5
				w0 := ((b.x-px)*(d.y-py) - (d.x-px)*(b.y-py)) / area
				w1 := ((d.x-px)*(a.y-py) - (a.x-px)*(d.y-py)) / area
				w2 := 1 - w0 - w1
				if w0 < 0 || w1 < 0 || w2 < 0 {
					continue
				}
				covered = true
				c.plot(it, x, y, w0*a.z+w1*b.z+w2*d.z, w0*a.u+w1*b.u+w2*d.u, w0*a.v+w1*b.v+w2*d.v)
			}
		}
	}
	if !covered {
		cx, cy := (a.x+b.x+d.x)/3, (a.y+b.y+d.y)/3
		x, y := floor(cx), floor(cy)
		if x >= 0 && y >= 0 && x < c.width && y < c.height {
			c.plot(it, x, y, (a.z+b.z+d.z)/3, (a.u+b.u+d.u)/3, (a.v+b.v+d.v)/3)
		}
	}
}

func (c *Canvas) plot(it *scene.DrawItem, x, y int, z, u, v float32) {
	idx := y*c.width + x
	if z <= c.depth[idx] {
		return
	}
	c.depth[idx] = z
	c.hits[idx] = it.HitID

	col := it.Material.Color
	if tex := it.Material.Texture; tex != nil {
		col = sample(tex.Bounds().Dx(), tex.Bounds().Dy(), u, v, tex.RGBAAt)
	}
	style := tcell.StyleDefault.
		Foreground(rgb(col)).
		Background(c.Background)
	c.screen.SetContent(x, y, Glyph(it.Kind), nil, style)
}

func (c *Canvas) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= c.width {
			return
		}
		c.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// sample reads a texel at (u, v) with v=0 on the first row.
func sample(w, h int, u, v float32, at func(x, y int) color.RGBA) color.RGBA {
	x := clampInt(int(u*float32(w-1)+0.5), 0, w-1)
	y := clampInt(int(v*float32(h-1)+0.5), 0, h-1)
	return at(x, y)
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func floor(f float32) int {
	i := int(f)
	if f < 0 && float32(i) != f {
		i--
	}
	return i
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
