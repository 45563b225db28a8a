package cardgrid

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Load reads the image file at `filePath` and decodes it
// into a grid of the given size. The format is chosen from
// the file extension: .png, .gif, .bmp, .tif, .tiff or .svg.
func Load(filePath string, columns, rows int) (*Grid, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := ReadImage(f, filepath.Ext(filePath))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filePath, err)
	}
	g, err := Decode(img, columns, rows)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filePath, err)
	}
	return g, nil
}

// ReadImage decodes an image, using the decoder registered for the
// file extension `ext` (with or without the leading dot).
func ReadImage(r io.Reader, ext string) (image.Image, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch ext {
	case "png":
		return png.Decode(r)
	case "gif":
		return gif.Decode(r)
	case "bmp":
		return bmp.Decode(r)
	case "tif", "tiff":
		return tiff.Decode(r)
	case "svg":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return loadSVG(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// loadSVG rasterizes the SVG image on a white background, with one
// pixel per user space unit. Shapes should be aligned on the unit grid
// to avoid anti-aliased (and then rejected) pixels.
func loadSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid svg viewBox %gx%g", w, h)
	}
	icon.SetTarget(0, 0, w, h)
	width, height := int(w), int(h)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}
