// Package imaging prepares uploaded pictures for publication: up to three
// source images are stacked into a single JPEG sized for the platforms.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// maxDimension caps the longest side of the combined image.
	maxDimension = 1280
	// gapBetweenImages is the white spacing between stacked images.
	gapBetweenImages = 50
	jpegQuality      = 90
	// MaxSources is how many images one post may combine.
	MaxSources = 3
)

var ErrNoUsableImage = errors.New("no usable image in upload")

// CombineAndResize decodes the sources, scales every image to the first
// one's width, stacks them vertically with white gaps, clamps the longest
// side to maxDimension and encodes the result as JPEG.
//
// Sources that fail to decode are skipped rather than failing the batch;
// only an upload with zero decodable images is an error.
func CombineAndResize(sources [][]byte) ([]byte, error) {
	if len(sources) == 0 {
		return nil, ErrNoUsableImage
	}
	if len(sources) > MaxSources {
		return nil, fmt.Errorf("at most %d images per post, got %d", MaxSources, len(sources))
	}

	var imgs []image.Image
	for _, src := range sources {
		img, _, err := image.Decode(bytes.NewReader(src))
		if err != nil {
			continue
		}
		imgs = append(imgs, img)
	}
	if len(imgs) == 0 {
		return nil, ErrNoUsableImage
	}

	// Normalize every image to the first one's width.
	baseWidth := imgs[0].Bounds().Dx()
	scaled := make([]image.Image, 0, len(imgs))
	scaled = append(scaled, imgs[0])
	for _, img := range imgs[1:] {
		b := img.Bounds()
		if b.Dx() == baseWidth {
			scaled = append(scaled, img)
			continue
		}
		newH := b.Dy() * baseWidth / b.Dx()
		dst := image.NewRGBA(image.Rect(0, 0, baseWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
		scaled = append(scaled, dst)
	}

	totalHeight := gapBetweenImages * (len(scaled) - 1)
	for _, img := range scaled {
		totalHeight += img.Bounds().Dy()
	}

	combined := image.NewRGBA(image.Rect(0, 0, baseWidth, totalHeight))
	draw.Draw(combined, combined.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	y := 0
	for _, img := range scaled {
		h := img.Bounds().Dy()
		draw.Draw(combined, image.Rect(0, y, baseWidth, y+h), img, img.Bounds().Min, draw.Over)
		y += h + gapBetweenImages
	}

	final := clampToMax(combined)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, final, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// clampToMax scales the image down so its longest side is maxDimension,
// preserving aspect ratio. Smaller images pass through untouched.
func clampToMax(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDimension && h <= maxDimension {
		return img
	}

	var newW, newH int
	if w > h {
		newW = maxDimension
		newH = h * maxDimension / w
	} else {
		newH = maxDimension
		newW = w * maxDimension / h
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
