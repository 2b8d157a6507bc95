package cubedcarac

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/pkg/errors"
)

// diverging maps t in [0,1] to blue -> white -> red, 16 bits per channel.
func diverging(t Real) (r, g, b uint16) {
	t = clamp(t, 0, 1)
	toU16 := func(x Real) uint16 { return uint16(math.Round(clamp(x, 0, 1) * 65535.0)) }
	if t < 0.5 {
		u := t / 0.5 // 0 blue .. 1 white
		return toU16(0.23 + 0.77*u), toU16(0.30 + 0.70*u), toU16(0.75 + 0.25*u)
	}
	u := (t - 0.5) / 0.5 // 0 white .. 1 red
	return toU16(1 - 0.29*u), toU16(1 - 0.98*u), toU16(1 - 0.85*u)
}

// SaveFieldPNG16 writes f as a 16-bit color map clipped to [vmin, vmax].
// Each cell becomes a scale×scale block; row 0 is at the bottom (flip Y so
// up is up). Non-finite entries are drawn black.
func SaveFieldPNG16(f *Field, path string, vmin, vmax Real, scale int) error {
	if f == nil {
		return errors.New("nil field")
	}
	if vmax <= vmin {
		return errors.Errorf("empty color range [%g, %g]", vmin, vmax)
	}
	if scale < 1 {
		scale = 1
	}
	W, H := f.Cols*scale, f.Rows*scale
	img := image.NewNRGBA64(image.Rect(0, 0, W, H))
	const pxBytes = 8 // 4 channels * 2 bytes/channel

	for i := 0; i < f.Rows; i++ {
		for j := 0; j < f.Cols; j++ {
			v := f.At(i, j)
			var r, g, b uint16
			if isFinite(v) {
				r, g, b = diverging((clamp(v, vmin, vmax) - vmin) / (vmax - vmin))
			}
			a := uint16(0xFFFF)
			for dy := 0; dy < scale; dy++ {
				y := H - 1 - (i*scale + dy)
				rowOff := y * img.Stride
				for dx := 0; dx < scale; dx++ {
					p := rowOff + (j*scale+dx)*pxBytes
					// NRGBA64 stores big-endian uint16 per channel: R,G, B, A.
					img.Pix[p+0] = uint8(r >> 8)
					img.Pix[p+1] = uint8(r)
					img.Pix[p+2] = uint8(g >> 8)
					img.Pix[p+3] = uint8(g)
					img.Pix[p+4] = uint8(b >> 8)
					img.Pix[p+5] = uint8(b)
					img.Pix[p+6] = uint8(a >> 8)
					img.Pix[p+7] = uint8(a)
				}
			}
		}
	}
	return writePNG(img, path)
}

// HistLayer is one histogram drawn into a plot, painted over earlier layers.
type HistLayer struct {
	Hist  *Histogram
	Color color.NRGBA // alpha < 255 blends with the layers below
}

// SaveHistogramPNG draws the layers as bar charts sharing one x range and a
// common y scale (the largest bin over all layers).
func SaveHistogramPNG(path string, width, height int, layers ...HistLayer) error {
	if len(layers) == 0 {
		return errors.New("no histogram layers")
	}
	if width < 2 || height < 2 {
		return errors.Errorf("plot too small: %dx%d", width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	top := 0.0
	for _, l := range layers {
		top = math.Max(top, l.Hist.MaxCount())
	}
	if top == 0 {
		top = 1 // empty histograms draw nothing
	}

	for _, l := range layers {
		bins := len(l.Hist.Counts)
		src := image.NewUniform(l.Color)
		for k, c := range l.Hist.Counts {
			if c <= 0 {
				continue
			}
			x0 := k * width / bins
			x1 := (k + 1) * width / bins
			if x1 <= x0 {
				x1 = x0 + 1
			}
			h := int(math.Round(c / top * Real(height-1)))
			if h < 1 {
				h = 1
			}
			bar := image.Rect(x0, height-h, x1, height)
			draw.Draw(img, bar, src, image.Point{}, draw.Over)
		}
	}
	return writePNG(img, path)
}

func writePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression} // still lossless
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", path)
	}
	return nil
}
