package webp

func Test(data []byte) bool {
	if len(data) < 16 {
		return false
	}

	// WEBP Magic Numbers: RIFF container with a WEBP fourcc followed by a
	// VP8 chunk (VP8 lossy, VP8L lossless, VP8X extended)
	// https://www.garykessler.net/library/file_sigs.html
	if data[0] != 'R' || data[1] != 'I' || data[2] != 'F' || data[3] != 'F' {
		return false
	}
	if data[8] != 'W' || data[9] != 'E' || data[10] != 'B' || data[11] != 'P' {
		return false
	}

	return data[12] == 'V' && data[13] == 'P' && data[14] == '8'
}
