package decode

import (
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ZXing decodes QR symbols with a pure-Go ZXing port. It needs no native
// dependencies beyond the frame type itself, which makes it the backend of
// choice for tests and for builds where OpenCV's detector is unavailable.
type ZXing struct {
	reader gozxing.Reader
	hints  map[gozxing.DecodeHintType]interface{}
}

// NewZXing creates the ZXing-backed decoder.
func NewZXing() *ZXing {
	return &ZXing{
		reader: qrcode.NewQRCodeReader(),
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// DetectAndDecode converts the frame to an image and runs the ZXing QR
// reader on it. Reader exceptions (not found, bad checksum, bad format) are
// the engine's "nothing decodable here" signal and map to a zero Result.
func (d *ZXing) DetectAndDecode(frame gocv.Mat) (Result, error) {
	if frame.Empty() {
		return Result{}, errors.New("empty input frame")
	}

	img, err := frame.ToImage()
	if err != nil {
		return Result{}, errors.Wrap(err, "convert frame to image")
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return Result{}, errors.Wrap(err, "build binary bitmap")
	}

	decoded, err := d.reader.Decode(bmp, d.hints)
	if err != nil {
		if _, ok := err.(gozxing.ReaderException); ok {
			return Result{}, nil
		}
		return Result{}, errors.Wrap(err, "zxing decode")
	}

	return Result{
		Text:   decoded.GetText(),
		Points: quadFromResultPoints(decoded.GetResultPoints()),
	}, nil
}

// Close resets the reader; the ZXing backend holds no native resources.
func (d *ZXing) Close() error {
	d.reader.Reset()
	return nil
}

// quadFromResultPoints completes a quadrilateral from ZXing result points.
//
// For QR symbols ZXing reports the three finder-pattern centers in the order
// bottom-left, top-left, top-right (a fourth alignment-pattern point, when
// present, is inset from the corner and not usable directly). The missing
// fourth vertex is completed by parallelogram symmetry, which is exact for
// fronto-parallel captures. Fewer than three points yields no quadrilateral.
func quadFromResultPoints(points []gozxing.ResultPoint) []image.Point {
	if len(points) < 3 {
		return nil
	}
	bl := image.Pt(int(points[0].GetX()), int(points[0].GetY()))
	tl := image.Pt(int(points[1].GetX()), int(points[1].GetY()))
	tr := image.Pt(int(points[2].GetX()), int(points[2].GetY()))
	br := image.Pt(tr.X+bl.X-tl.X, tr.Y+bl.Y-tl.Y)
	return []image.Point{tl, tr, br, bl}
}
