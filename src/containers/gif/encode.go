package gif

import (
	"io"

	nImage "image"
	"image/color"
	nGif "image/gif"

	"github.com/gifkit/BackgroundRemover/src/image"
)

// Encode writes img as a GIF. Palette slot 0 of every frame is the fully
// transparent color, so the container declares transparency at index 0.
// Animated output disposes each frame to the background before the next
// one is drawn; without that, pixels that were opaque in an earlier frame
// ghost through the transparent areas of later ones.
func Encode(w io.Writer, img *image.Image) error {
	out := &nGif.GIF{
		Image: make([]*nImage.Paletted, len(img.Frames)),
		Delay: make([]int, len(img.Frames)),
		Config: nImage.Config{
			Width:  img.Width,
			Height: img.Height,
		},
	}

	if img.Animated() {
		out.LoopCount = img.LoopCount
		out.Disposal = make([]byte, len(img.Frames))
	}

	for i, frame := range img.Frames {
		out.Image[i] = palettize(frame)
		// model delays are milliseconds, the container wants 100ths of a second
		out.Delay[i] = img.Delays[i] / 10
		if out.Disposal != nil {
			out.Disposal[i] = nGif.DisposalBackground
		}
	}

	return nGif.EncodeAll(w, out)
}

// palettize converts a frame to a paletted image whose slot 0 is the
// transparent color. Opaque colors keep their exact channel values as
// long as the frame uses at most 255 of them; past that, new colors fall
// back to the nearest palette entry. Frames that came out of a GIF fit
// without fallback.
func palettize(src *nImage.NRGBA) *nImage.Paletted {
	b := src.Bounds()
	dst := nImage.NewPaletted(b, nil)

	pal := color.Palette{color.NRGBA{}}
	lookup := map[color.NRGBA]uint8{}

	for y := 0; y < b.Dy(); y++ {
		row := y * src.Stride
		for x := 0; x < b.Dx(); x++ {
			o := row + x*4
			c := color.NRGBA{R: src.Pix[o], G: src.Pix[o+1], B: src.Pix[o+2], A: src.Pix[o+3]}

			if c.A == 0 {
				dst.Pix[y*dst.Stride+x] = 0
				continue
			}

			idx, ok := lookup[c]
			if !ok {
				if len(pal) < 256 {
					pal = append(pal, c)
					idx = uint8(len(pal) - 1)
				} else {
					idx = uint8(pal.Index(c))
				}
				lookup[c] = idx
			}
			dst.Pix[y*dst.Stride+x] = idx
		}
	}

	dst.Palette = pal
	return dst
}
