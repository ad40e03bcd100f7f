package gif

import (
	"io"

	nImage "image"
	nGif "image/gif"

	"golang.org/x/image/draw"

	"github.com/gifkit/BackgroundRemover/src/image"
)

// Decode reads an entire GIF and flattens it into full-size NRGBA frames.
//
// GIF frames can be partial updates layered over earlier frames, so each
// frame is composited onto a shared canvas honoring the disposal method
// before being captured. Delays are converted from the container's 100ths
// of a second to milliseconds; frames with no delay get the default.
func Decode(r io.Reader) (*image.Image, error) {
	src, err := nGif.DecodeAll(r)
	if err != nil {
		return nil, err
	}

	width, height := src.Config.Width, src.Config.Height
	if width == 0 || height == 0 {
		b := src.Image[0].Bounds()
		width, height = b.Max.X, b.Max.Y
	}

	img := &image.Image{
		Type:      image.GIF,
		Width:     width,
		Height:    height,
		Frames:    make([]*nImage.NRGBA, len(src.Image)),
		Delays:    make([]int, len(src.Image)),
		LoopCount: src.LoopCount,
	}

	canvas := nImage.NewNRGBA(nImage.Rect(0, 0, width, height))
	for i, frame := range src.Image {
		var restore *nImage.NRGBA
		if disposalOf(src, i) == nGif.DisposalPrevious {
			restore = cloneNRGBA(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		img.Frames[i] = cloneNRGBA(canvas)

		switch disposalOf(src, i) {
		case nGif.DisposalBackground:
			clearRect(canvas, frame.Bounds())
		case nGif.DisposalPrevious:
			canvas = restore
		}

		delay := 0
		if i < len(src.Delay) {
			delay = src.Delay[i] * 10
		}
		if delay <= 0 {
			delay = image.DefaultFrameDelay
		}
		img.Delays[i] = delay
	}

	return img, nil
}

func disposalOf(g *nGif.GIF, i int) byte {
	if i < len(g.Disposal) {
		return g.Disposal[i]
	}
	return nGif.DisposalNone
}

func cloneNRGBA(src *nImage.NRGBA) *nImage.NRGBA {
	dst := nImage.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// clearRect resets a region of the canvas to fully transparent.
func clearRect(img *nImage.NRGBA, r nImage.Rectangle) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, y):img.PixOffset(r.Max.X, y)]
		for i := range row {
			row[i] = 0
		}
	}
}
