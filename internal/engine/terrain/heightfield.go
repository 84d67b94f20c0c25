package terrain

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	"github.com/aquilax/go-perlin"
	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// ErrUnsupportedImage is returned for height-field files no decoder accepts.
var ErrUnsupportedImage = errors.New("terrain: unsupported height-field image")

// Heightfield is a single-channel elevation image. Brighter is higher.
type Heightfield struct {
	Width  int
	Height int
	Pix    []uint8 // row-major, Width*Height bytes
}

// At returns the raw elevation at pixel (x, y), or 0 outside the image.
func (h *Heightfield) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= h.Width || y >= h.Height {
		return 0
	}
	return h.Pix[y*h.Width+x]
}

// Sample returns the elevation in [0,1] at texture coordinate (u, v) using
// nearest lookup. Outside [0,1]² it returns 0, the same black border the
// GPU texture is clamped to.
func (h *Heightfield) Sample(u, v float32) float32 {
	if u < 0 || v < 0 || u > 1 || v > 1 || h.Width == 0 || h.Height == 0 {
		return 0
	}
	x := min(int(u*float32(h.Width)), h.Width-1)
	y := min(int(v*float32(h.Height)), h.Height-1)
	return float32(h.At(x, y)) / 255
}

// FromImage converts any image to a height field by luminance.
func FromImage(img image.Image) *Heightfield {
	b := img.Bounds()
	h := &Heightfield{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]uint8, b.Dx()*b.Dy()),
	}
	if g, ok := img.(*image.Gray); ok && g.Stride == h.Width && b.Min == (image.Point{}) {
		copy(h.Pix, g.Pix)
		return h
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			h.Pix[(y-b.Min.Y)*h.Width+(x-b.Min.X)] = g.Y
		}
	}
	return h
}

// LoadHeightfield reads a PNG, JPEG, BMP or TGA file from disk.
func LoadHeightfield(path string) (*Heightfield, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading height field: %w", err)
	}
	h, err := DecodeHeightfield(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return h, nil
}

// maxHeightfieldPixels bounds decoded images so a forged header cannot
// force a huge allocation.
const maxHeightfieldPixels = 16384 * 16384

// DecodeHeightfield decodes image bytes. ext selects the TGA decoder, which
// has no magic number for image.Decode to sniff.
func DecodeHeightfield(data []byte, ext string) (*Heightfield, error) {
	if strings.EqualFold(ext, ".tga") {
		img, err := decodeTGA(data)
		if err != nil {
			return nil, err
		}
		return FromImage(img), nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err == nil && cfg.Width*cfg.Height > maxHeightfieldPixels {
		return nil, fmt.Errorf("%w: %dx%d too large", ErrUnsupportedImage, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
		}
		return nil, err
	}
	return FromImage(img), nil
}

// Noise settings for GenerateHeightfield.
const (
	noiseAlpha = 2.0 // weight falloff between octaves
	noiseBeta  = 2.0 // frequency growth between octaves
	noiseZoom  = 6.0 // noise periods across the texture
)

// GenerateHeightfield builds a square procedural height field from Perlin
// noise. The same seed always yields the same terrain.
func GenerateHeightfield(size int, seed int64, octaves int32) *Heightfield {
	if size <= 0 {
		return &Heightfield{}
	}
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, octaves, seed)

	h := &Heightfield{
		Width:  size,
		Height: size,
		Pix:    make([]uint8, size*size),
	}
	for y := range size {
		for x := range size {
			n := p.Noise2D(float64(x)/float64(size)*noiseZoom, float64(y)/float64(size)*noiseZoom)
			// Noise is roughly [-1,1]; map into [0,1].
			v := (n + 1) / 2
			v = max(0, min(1, v))
			h.Pix[y*size+x] = uint8(v * 255)
		}
	}
	return h
}
