package parallel

// Band is a horizontal strip of image rows in [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows the band covers.
func (b Band) Rows() int { return b.Y1 - b.Y0 }

// SplitBands partitions height rows into at most n contiguous bands of
// near-equal size. Every row belongs to exactly one band and bands are
// ordered top to bottom. n below 1 yields a single band.
func SplitBands(height, n int) []Band {
	if height <= 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > height {
		n = height
	}

	bands := make([]Band, 0, n)
	step := height / n
	extra := height % n
	y := 0
	for i := 0; i < n; i++ {
		h := step
		if i < extra {
			h++
		}
		bands = append(bands, Band{Y0: y, Y1: y + h})
		y += h
	}
	return bands
}
