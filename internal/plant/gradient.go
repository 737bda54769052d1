package plant

import (
	"image"
	"image/color"
	"strings"
	"sync"
)

// GradientSize is the edge length of petal gradient images.
const GradientSize = 128

// BuildGradient renders a vertical ramp: row 0 is base, the last row is tip.
func BuildGradient(base, tip color.RGBA, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	from, to := toColorful(base), toColorful(tip)
	for y := 0; y < height; y++ {
		t := 0.0
		if height > 1 {
			t = float64(y) / float64(height-1)
		}
		c := toRGBA(from.BlendRgb(to, t))
		if y == 0 {
			c = base
		} else if y == height-1 {
			c = tip
		}
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < width; x++ {
			row[x*4+0] = c.R
			row[x*4+1] = c.G
			row[x*4+2] = c.B
			row[x*4+3] = 255
		}
	}
	return img
}

// GradientCache memoizes gradient images by color pair. Images are never
// modified after they are stored.
type GradientCache struct {
	mu      sync.Mutex
	limit   int
	entries map[string]*image.RGBA
	builds  int
}

// NewGradientCache creates a cache that holds at most limit images.
func NewGradientCache(limit int) *GradientCache {
	if limit < 1 {
		limit = 1
	}
	return &GradientCache{limit: limit, entries: make(map[string]*image.RGBA)}
}

// GradientKey is the cache key for a color pair.
func GradientKey(base, tip string) string {
	return strings.ToLower(base) + "|" + strings.ToLower(tip)
}

// Get returns the gradient for the pair, building it on first use.
func (c *GradientCache) Get(base, tip string) (*image.RGBA, string) {
	key := GradientKey(base, tip)

	c.mu.Lock()
	defer c.mu.Unlock()

	if img, ok := c.entries[key]; ok {
		return img, key
	}
	if len(c.entries) >= c.limit {
		clear(c.entries)
	}
	img := BuildGradient(
		colorOr(base, mustHex("#ff69b4")),
		colorOr(tip, mustHex("#ffffff")),
		GradientSize, GradientSize,
	)
	c.entries[key] = img
	c.builds++
	return img, key
}

// Builds returns how many images have been rendered.
func (c *GradientCache) Builds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.builds
}
