package containers

import (
	"bytes"
	"fmt"

	nImage "image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gifkit/BackgroundRemover/src/containers/gif"
	"github.com/gifkit/BackgroundRemover/src/containers/jpeg"
	"github.com/gifkit/BackgroundRemover/src/containers/png"
	"github.com/gifkit/BackgroundRemover/src/containers/tiff"
	"github.com/gifkit/BackgroundRemover/src/containers/webp"
	"github.com/gifkit/BackgroundRemover/src/image"
)

var ErrUnknownFormat = fmt.Errorf("unknown image format")

func ToType(data []byte) (image.ImageType, error) {
	if gif.Test(data) {
		return image.GIF, nil
	} else if jpeg.Test(data) {
		return image.JPEG, nil
	} else if png.Test(data) {
		return image.PNG, nil
	} else if tiff.Test(data) {
		return image.TIFF, nil
	} else if webp.Test(data) {
		return image.WEBP, nil
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		header := data
		if len(header) > 16 {
			header = header[:16]
		}
		logrus.Debug("unrecognized header: ", spew.Sdump(header))
	}

	return "", ErrUnknownFormat
}

// Decode parses data into the flattened frame model. GIF keeps its full
// animation metadata; every other supported format yields a single frame.
func Decode(data []byte, imgType image.ImageType) (*image.Image, error) {
	if imgType == image.GIF {
		return gif.Decode(bytes.NewReader(data))
	}

	src, _, err := nImage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	frame := nImage.NewNRGBA(nImage.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(frame, frame.Bounds(), src, b.Min, draw.Src)

	return &image.Image{
		Type:   imgType,
		Width:  b.Dx(),
		Height: b.Dy(),
		Frames: []*nImage.NRGBA{frame},
		Delays: []int{image.DefaultFrameDelay},
	}, nil
}
