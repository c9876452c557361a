package export

// A4 page size in millimetres, portrait.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

// Placement is where the captured image lands on the page, in millimetres.
type Placement struct {
	X, Y   float64
	Width  float64
	Height float64
}

// FitToPage scales the captured image to A4. The scale is chosen so the
// binding dimension fills its page edge exactly while the other dimension
// stays within the page, preserving aspect ratio. The image is anchored at
// the top-left corner.
func FitToPage(pixelWidth, pixelHeight int) Placement {
	if pixelWidth <= 0 || pixelHeight <= 0 {
		return Placement{Width: PageWidthMM, Height: PageHeightMM}
	}

	w := float64(pixelWidth)
	h := float64(pixelHeight)

	scale := PageWidthMM / w
	if byHeight := PageHeightMM / h; byHeight < scale {
		scale = byHeight
	}

	return Placement{
		Width:  w * scale,
		Height: h * scale,
	}
}
