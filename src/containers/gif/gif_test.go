package gif

import (
	"bytes"
	"testing"

	nImage "image"
	"image/color"
	nGif "image/gif"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gifkit/BackgroundRemover/src/image"
)

var testPalette = color.Palette{
	color.RGBA{R: 255, G: 255, B: 255, A: 255},
	color.RGBA{A: 255},
	color.RGBA{R: 200, G: 200, B: 200, A: 255},
	color.RGBA{R: 250, G: 250, B: 250, A: 255},
}

func palettedFrame(indices ...uint8) *nImage.Paletted {
	frame := nImage.NewPaletted(nImage.Rect(0, 0, 2, 2), testPalette)
	copy(frame.Pix, indices)
	return frame
}

// encodes a 3-frame 2x2 animation with delays of 80/120/80 ms
func sourceGIF(t *testing.T) []byte {
	t.Helper()

	src := &nGif.GIF{
		Image: []*nImage.Paletted{
			palettedFrame(0, 1, 2, 3),
			palettedFrame(1, 0, 3, 2),
			palettedFrame(2, 3, 0, 1),
		},
		Delay:     []int{8, 12, 8},
		LoopCount: 0,
		Config:    nImage.Config{Width: 2, Height: 2},
	}

	buf := bytes.Buffer{}
	require.NoError(t, nGif.EncodeAll(&buf, src))
	return buf.Bytes()
}

func TestTest(t *testing.T) {
	assert.True(t, Test(sourceGIF(t)))
	assert.True(t, Test([]byte("GIF87a......")))
	assert.False(t, Test([]byte("GIF")))
	assert.False(t, Test([]byte("NOTAGIF.....")))
}

func TestDecode(t *testing.T) {
	img, err := Decode(bytes.NewReader(sourceGIF(t)))
	require.NoError(t, err)

	assert.Equal(t, image.GIF, img.Type)
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 2, img.Height)
	assert.Equal(t, []int{80, 120, 80}, img.Delays)
	assert.Equal(t, 0, img.LoopCount)
	require.Len(t, img.Frames, 3)
	assert.True(t, img.Animated())

	// first frame, first pixel is white and fully opaque
	assert.Equal(t, []uint8{255, 255, 255, 255}, img.Frames[0].Pix[:4])
	// second frame, first pixel is black
	assert.Equal(t, []uint8{0, 0, 0, 255}, img.Frames[1].Pix[:4])
}

func TestDecodeDefaultsMissingDelays(t *testing.T) {
	src := &nGif.GIF{
		Image: []*nImage.Paletted{
			palettedFrame(0, 1, 2, 3),
			palettedFrame(1, 0, 3, 2),
		},
		Delay:  []int{0, 0},
		Config: nImage.Config{Width: 2, Height: 2},
	}

	buf := bytes.Buffer{}
	require.NoError(t, nGif.EncodeAll(&buf, src))

	img, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int{image.DefaultFrameDelay, image.DefaultFrameDelay}, img.Delays)
}

func TestEncodeRoundTrip(t *testing.T) {
	img, err := Decode(bytes.NewReader(sourceGIF(t)))
	require.NoError(t, err)

	// make the white pixels transparent the way the remover would
	for _, frame := range img.Frames {
		for i := 0; i < len(frame.Pix); i += 4 {
			if frame.Pix[i] > 240 && frame.Pix[i+1] > 240 && frame.Pix[i+2] > 240 {
				frame.Pix[i+3] = 0
			}
		}
	}

	buf := bytes.Buffer{}
	require.NoError(t, Encode(&buf, img))

	out, err := nGif.DecodeAll(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	require.Len(t, out.Image, 3)
	assert.Equal(t, []int{8, 12, 8}, out.Delay)
	assert.Equal(t, 0, out.LoopCount)
	assert.Equal(t, []byte{
		nGif.DisposalBackground,
		nGif.DisposalBackground,
		nGif.DisposalBackground,
	}, out.Disposal)

	for _, frame := range out.Image {
		// slot 0 of every frame palette is the transparent color
		_, _, _, a := frame.Palette[0].RGBA()
		assert.EqualValues(t, 0, a)
	}

	// frame 0: white and near-white became transparent, the rest survived
	_, _, _, a := out.Image[0].At(0, 0).RGBA()
	assert.EqualValues(t, 0, a)
	_, _, _, a = out.Image[0].At(1, 1).RGBA()
	assert.EqualValues(t, 0, a)

	assert.Equal(t, color.NRGBA{A: 255}, color.NRGBAModel.Convert(out.Image[0].At(1, 0)))
	assert.Equal(t, color.NRGBA{R: 200, G: 200, B: 200, A: 255}, color.NRGBAModel.Convert(out.Image[0].At(0, 1)))
}

func TestEncodeSingleFrame(t *testing.T) {
	frame := nImage.NewNRGBA(nImage.Rect(0, 0, 2, 2))
	copy(frame.Pix, []uint8{
		255, 255, 255, 0,
		10, 20, 30, 255,
		40, 50, 60, 255,
		70, 80, 90, 255,
	})

	img := &image.Image{
		Type:   image.GIF,
		Width:  2,
		Height: 2,
		Frames: []*nImage.NRGBA{frame},
		Delays: []int{image.DefaultFrameDelay},
	}

	buf := bytes.Buffer{}
	require.NoError(t, Encode(&buf, img))

	out, err := nGif.DecodeAll(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, out.Image, 1)

	_, _, _, a := out.Image[0].At(0, 0).RGBA()
	assert.EqualValues(t, 0, a)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, color.NRGBAModel.Convert(out.Image[0].At(1, 0)))
}
