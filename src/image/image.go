package image

import (
	stdimage "image"
)

// DefaultFrameDelay is the per-frame display time used when the source
// container carries no timing information, in milliseconds.
const DefaultFrameDelay = 100

// Image is a fully decoded image: every frame flattened to a full-size
// NRGBA bitmap, with per-frame delays in milliseconds.
type Image struct {
	Type      ImageType
	Width     int
	Height    int
	Frames    []*stdimage.NRGBA
	Delays    []int
	LoopCount int
}

func (i *Image) Animated() bool {
	return len(i.Frames) > 1
}

type ImageType string

const (
	GIF  ImageType = "gif"
	JPEG ImageType = "jpeg"
	PNG  ImageType = "png"
	TIFF ImageType = "tiff"
	WEBP ImageType = "webp"
)
