package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// ImageSize is a bounding box an image is fitted into.
type ImageSize struct {
	Name   string
	Width  int
	Height int
}

var (
	// SizeAvatar is used for user avatars.
	SizeAvatar = ImageSize{Name: "avatar", Width: 400, Height: 400}
	// SizeCard is used for article featured images and product photos.
	SizeCard = ImageSize{Name: "card", Width: 800, Height: 800}
	// SizeFull caps full-size editorial images.
	SizeFull = ImageSize{Name: "full", Width: 1600, Height: 1600}
)

// Processor downscales uploaded images before they hit storage.
type Processor struct {
	quality int // JPEG quality (1-100)
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{quality: quality}
}

// Fit decodes an image, scales it down to fit inside size while keeping
// the aspect ratio, and re-encodes it in its source format. Images
// already inside the box are re-encoded unchanged in dimensions.
func (p *Processor) Fit(reader io.Reader, size ImageSize) (io.Reader, string, error) {
	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > size.Width || bounds.Dy() > size.Height {
		img = scaleToFit(img, size.Width, size.Height)
	}

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, "", fmt.Errorf("failed to encode JPEG: %w", err)
		}
		return &buf, "image/jpeg", nil
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("failed to encode PNG: %w", err)
		}
		return &buf, "image/png", nil
	default:
		return nil, "", fmt.Errorf("unsupported image format: %s", format)
	}
}

func scaleToFit(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	ratio := float64(bounds.Dx()) / float64(bounds.Dy())

	newWidth := maxWidth
	newHeight := maxHeight
	if float64(maxWidth)/float64(maxHeight) > ratio {
		newWidth = int(float64(maxHeight) * ratio)
	} else {
		newHeight = int(float64(maxWidth) / ratio)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// IsValidImage reports whether the reader holds a decodable image.
func IsValidImage(reader io.Reader) bool {
	_, _, err := image.Decode(reader)
	return err == nil
}
