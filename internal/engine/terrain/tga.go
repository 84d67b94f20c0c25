package terrain

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image types understood by decodeTGA.
const (
	tgaTrueColor    = 2
	tgaGray         = 3
	tgaTrueColorRLE = 10
	tgaGrayRLE      = 11
)

// decodeTGA decodes uncompressed or RLE TGA files, true-colour (24/32 bit)
// or grayscale (8 bit), straight to luminance.
func decodeTGA(data []byte) (*image.Gray, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("%w: TGA header too short", ErrUnsupportedImage)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped TGA", ErrUnsupportedImage)
	}
	gray := imageType == tgaGray || imageType == tgaGrayRLE
	rle := imageType == tgaTrueColorRLE || imageType == tgaGrayRLE
	switch {
	case imageType != tgaTrueColor && imageType != tgaGray && !rle:
		return nil, fmt.Errorf("%w: TGA type %d", ErrUnsupportedImage, imageType)
	case gray && bpp != 8:
		return nil, fmt.Errorf("%w: %d-bit grayscale TGA", ErrUnsupportedImage, bpp)
	case !gray && bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("%w: %d-bit TGA", ErrUnsupportedImage, bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: TGA truncated", ErrUnsupportedImage)
	}
	src := data[offset:]
	bytesPerPixel := bpp / 8

	total := width * height
	if total > maxHeightfieldPixels {
		return nil, fmt.Errorf("%w: TGA %dx%d too large", ErrUnsupportedImage, width, height)
	}
	// An RLE packet of 1+bytesPerPixel bytes covers at most 128 pixels.
	if (!rle && len(src) < total*bytesPerPixel) ||
		(rle && len(src)/(1+bytesPerPixel)*128 < total) {
		return nil, fmt.Errorf("%w: TGA pixel data truncated", ErrUnsupportedImage)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))

	luminance := func(p []byte) uint8 {
		if gray {
			return p[0]
		}
		// Stored as BGR(A).
		return color.GrayModel.Convert(color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}).(color.Gray).Y
	}
	put := func(i int, v uint8) {
		x, y := i%width, i/width
		if !topToBottom {
			y = height - 1 - y
		}
		img.Pix[y*img.Stride+x] = v
	}

	if !rle {
		for i := range total {
			put(i, luminance(src[i*bytesPerPixel:]))
		}
		return img, nil
	}

	i, pos := 0, 0
	for i < total && pos < len(src) {
		packet := src[pos]
		pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run packet: one pixel repeated.
			if pos+bytesPerPixel > len(src) {
				break
			}
			v := luminance(src[pos:])
			pos += bytesPerPixel
			for ; count > 0 && i < total; count-- {
				put(i, v)
				i++
			}
			continue
		}

		for ; count > 0 && i < total; count-- {
			if pos+bytesPerPixel > len(src) {
				break
			}
			put(i, luminance(src[pos:]))
			pos += bytesPerPixel
			i++
		}
	}
	if i < total {
		return nil, fmt.Errorf("%w: TGA RLE data truncated", ErrUnsupportedImage)
	}
	return img, nil
}
