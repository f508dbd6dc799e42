package decode

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// OpenCV decodes QR symbols with OpenCV's built-in QRCodeDetector.
type OpenCV struct {
	detector gocv.QRCodeDetector
}

// NewOpenCV creates the OpenCV-backed decoder. The caller must Close it.
func NewOpenCV() *OpenCV {
	return &OpenCV{detector: gocv.NewQRCodeDetector()}
}

// DetectAndDecode runs OpenCV's combined detection and decode on the frame.
// The corner Mat reported by OpenCV is flattened into []image.Point; OpenCV
// already orders the corners clockwise from the top-left.
func (d *OpenCV) DetectAndDecode(frame gocv.Mat) (Result, error) {
	if frame.Empty() {
		return Result{}, errors.New("empty input frame")
	}

	corners := gocv.NewMat()
	defer corners.Close()
	straight := gocv.NewMat()
	defer straight.Close()

	text := d.detector.DetectAndDecode(frame, &corners, &straight)

	res := Result{Text: text}
	if !corners.Empty() {
		for row := 0; row < corners.Rows(); row++ {
			for col := 0; col < corners.Cols(); col++ {
				v := corners.GetVecfAt(row, col)
				res.Points = append(res.Points, image.Pt(int(v[0]), int(v[1])))
			}
		}
	}
	return res, nil
}

// Close releases the underlying detector.
func (d *OpenCV) Close() error {
	return d.detector.Close()
}
