package remover

import (
	"github.com/sirupsen/logrus"

	"github.com/gifkit/BackgroundRemover/src/image"
)

// Remove zeroes the alpha channel of every background pixel, in place.
// A pixel is background when its R, G and B channels all strictly exceed
// the threshold; its color channels and every foreground pixel are left
// untouched. Alpha plays no part in the classification, so running the
// transform twice is the same as running it once.
func Remove(img *image.Image, threshold int) {
	t := clamp(threshold)

	for _, frame := range img.Frames {
		pix := frame.Pix
		for i := 0; i < len(pix); i += 4 {
			if int(pix[i]) > t && int(pix[i+1]) > t && int(pix[i+2]) > t {
				pix[i+3] = 0
			}
		}
	}
}

// Thresholds outside the channel range are clamped rather than rejected:
// out-of-range values still have a well-defined meaning (255 = nothing is
// background, 0 = everything but pure black is).
func clamp(threshold int) int {
	if threshold < 0 {
		logrus.Warnf("threshold %d below 0, clamping", threshold)
		return 0
	}
	if threshold > 255 {
		logrus.Warnf("threshold %d above 255, clamping", threshold)
		return 255
	}
	return threshold
}
