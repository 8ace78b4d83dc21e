// Package imagex prepares avatar images for upload.
package imagex

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxEdge is the longest side of a prepared avatar, in pixels.
	MaxEdge = 500
	// Quality is the JPEG quality of a prepared avatar.
	Quality = 80
)

// ErrEmptyImage is returned for an image with no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Fit returns the size of a w×h image scaled down so that neither side
// exceeds maxEdge. Smaller images keep their size.
func Fit(w, h, maxEdge int) (int, int) {
	if w <= maxEdge && h <= maxEdge {
		return w, h
	}
	if w >= h {
		return maxEdge, max(1, h*maxEdge/w)
	}
	return max(1, w*maxEdge/h), maxEdge
}

// Downscale returns src scaled to fit into maxEdge×maxEdge, preserving the
// aspect ratio. src is returned as is when it already fits.
func Downscale(src image.Image, maxEdge int) image.Image {
	b := src.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), maxEdge)
	if w == b.Dx() && h == b.Dy() {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// PrepareAvatar decodes r (JPEG, PNG, GIF, BMP or WebP), downscales it to
// MaxEdge and re-encodes it as JPEG.
func PrepareAvatar(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode avatar: %w", err)
	}
	if src.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Downscale(src, MaxEdge), &jpeg.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}

// AvatarBase64 is PrepareAvatar encoded with standard base64 for transport.
func AvatarBase64(r io.Reader) (string, error) {
	b, err := PrepareAvatar(r)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
