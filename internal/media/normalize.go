package media

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// maxDimension bounds stored images to 1200x1200; larger uploads are scaled
// down preserving aspect ratio, never up.
const maxDimension = 1200

const jpegQuality = 85

// normalize re-encodes jpeg and png content within the dimension bound.
// Animated gif and webp payloads are stored verbatim: re-encoding would
// require format support the standard decoders do not provide.
func normalize(content []byte, contentType string) ([]byte, error) {
	switch contentType {
	case "image/jpeg", "image/png":
	default:
		return content, nil
	}

	img, format, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxDimension && height <= maxDimension {
		return content, nil
	}

	scale := float64(maxDimension) / float64(width)
	if height > width {
		scale = float64(maxDimension) / float64(height)
	}
	dstWidth := int(float64(width) * scale)
	dstHeight := int(float64(height) * scale)

	dst := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if format == "png" {
		err = png.Encode(&buf, dst)
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
