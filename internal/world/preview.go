package world

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	previewAmbientLight = 0.35
	previewMaxScale     = 16
)

// RenderPreview draws a top-down map of the level. Each column is coloured by its highest
// non-air block and shaded by that block's height; water is darkened by depth.
func RenderPreview(l *Level, scale int) (*image.NRGBA, error) {
	if l == nil {
		return nil, fmt.Errorf("level is nil")
	}
	if l.Width <= 0 || l.Length <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("invalid level dimensions: %+v", l.Dimensions)
	}
	if scale < 1 || scale > previewMaxScale {
		return nil, fmt.Errorf("preview scale %d outside 1..%d", scale, previewMaxScale)
	}

	img := image.NewNRGBA(image.Rect(0, 0, l.Width*scale, l.Length*scale))
	background := color.NRGBA{R: 10, G: 10, B: 18, A: 255}
	draw.Draw(img, img.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)

	for z := 0; z < l.Length; z++ {
		for x := 0; x < l.Width; x++ {
			y, block, depth := surfaceSample(l, x, z)
			if block == Air {
				continue
			}
			light := previewAmbientLight + (1-previewAmbientLight)*float64(y+1)/float64(l.Height)
			if block.IsFluid() && depth > 1 {
				light -= 0.04 * float64(depth-1)
			}
			col := applyLighting(resolveBlockColor(block), light)
			fillCell(img, x*scale, z*scale, scale, col)
		}
	}
	return img, nil
}

// SavePreview renders the level and writes it to path as a PNG.
func SavePreview(l *Level, path string, scale int) error {
	img, err := RenderPreview(l, scale)
	if err != nil {
		return err
	}
	if err := ensurePreviewDir(filepath.Dir(path)); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	return writePreview(file, img)
}

// writePreview encodes img into w and closes it, reporting the close error when encoding
// succeeded.
func writePreview(w io.WriteCloser, img image.Image) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close preview: %w", cerr)
		}
	}()
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}

// surfaceSample finds the highest non-air block of a column. For fluids depth counts the
// contiguous cells of the same block below the surface.
func surfaceSample(l *Level, x, z int) (int, BlockID, int) {
	for y := l.MaxY(); y >= 0; y-- {
		block := l.Block(x, y, z)
		if block == Air {
			continue
		}
		depth := 1
		if block.IsFluid() {
			for below := y - 1; below >= 0 && l.Block(x, below, z) == block; below-- {
				depth++
			}
		}
		return y, block, depth
	}
	return 0, Air, 0
}

func fillCell(img *image.NRGBA, px, py, size int, col color.NRGBA) {
	for y := py; y < py+size; y++ {
		for x := px; x < px+size; x++ {
			img.SetNRGBA(x, y, col)
		}
	}
}

func resolveBlockColor(block BlockID) color.NRGBA {
	if def, ok := Definition(block); ok {
		if col, ok := parseHexColor(def.Color); ok {
			return col
		}
	}
	return color.NRGBA{R: 128, G: 128, B: 128, A: 255}
}

func parseHexColor(value string) (color.NRGBA, bool) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(trimmed) != 6 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

func applyLighting(base color.NRGBA, factor float64) color.NRGBA {
	factor = clamp(factor, 0, 1)
	return color.NRGBA{
		R: uint8(math.Round(float64(base.R) * factor)),
		G: uint8(math.Round(float64(base.G) * factor)),
		B: uint8(math.Round(float64(base.B) * factor)),
		A: 255,
	}
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func ensurePreviewDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory is empty")
	}
	return os.MkdirAll(dir, 0o755)
}
