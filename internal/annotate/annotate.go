// Package annotate renders scan results onto a debug copy of the frame.
package annotate

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/cdang054/qrscan/internal/decode"
	"github.com/cdang054/qrscan/internal/finder"
)

// NoticeText is rendered when no symbol was decoded.
const NoticeText = "No QR Code Detected"

var (
	textAnchor   = image.Pt(10, 30)
	quadColor    = color.RGBA{0, 255, 0, 0}
	decodedColor = color.RGBA{0, 255, 0, 0}
	noticeColor  = color.RGBA{255, 0, 0, 0}
)

// Annotate draws the finder-pattern candidates, the decoder's quadrilateral
// and a status line onto a copy of the frame. The input frame is never
// mutated; the caller owns the returned Mat and must Close it.
//
// Candidates are always drawn when present. The status line shows the
// decoded text, or NoticeText when the result carries none.
func Annotate(frame gocv.Mat, candidates []finder.Candidate, res decode.Result) (gocv.Mat, error) {
	if frame.Empty() {
		return gocv.NewMat(), errors.New("empty input frame")
	}

	out := frame.Clone()

	for i, c := range candidates {
		gocv.Rectangle(&out, c.Rect, candidateColor(i), 2)
	}

	if res.Located() {
		quad := gocv.NewPointsVectorFromPoints([][]image.Point{res.Points})
		gocv.Polylines(&out, quad, true, quadColor, 2)
		quad.Close()
	}

	status, col := res.Text, decodedColor
	if res.Text == "" {
		status, col = NoticeText, noticeColor
	}
	gocv.PutText(&out, status, textAnchor, gocv.FontHersheySimplex, 0.8, col, 2)

	return out, nil
}

// candidateColor spreads candidate box colors around the hue circle with
// golden-angle steps so neighboring boxes stay visually distinct.
func candidateColor(i int) color.RGBA {
	hue := math.Mod(float64(i)*137.5, 360)
	r, g, b := colorful.Hcl(hue, 0.7, 0.6).Clamped().RGB255()
	return color.RGBA{r, g, b, 0}
}
