package pipeline

import (
	"image"
	"image/color"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/cdang054/qrscan/internal/decode"
)

// stubDecoder returns a canned result and records how often it was called.
type stubDecoder struct {
	res   decode.Result
	err   error
	calls int
}

func (d *stubDecoder) DetectAndDecode(frame gocv.Mat) (decode.Result, error) {
	d.calls++
	return d.res, d.err
}

func (d *stubDecoder) Close() error { return nil }

func whiteFrame(width, height int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), height, width, gocv.MatTypeCV8UC3)
}

// markerFrame draws one nested square marker onto a white frame so the
// finder stage has something to report.
func markerFrame(width, height int) gocv.Mat {
	frame := whiteFrame(width, height)
	black := color.RGBA{0, 0, 0, 0}
	white := color.RGBA{255, 255, 255, 0}
	gocv.Rectangle(&frame, image.Rect(55, 48, 85, 96), black, -1)
	gocv.Rectangle(&frame, image.Rect(60, 60, 80, 80), white, -1)
	gocv.Rectangle(&frame, image.Rect(67, 67, 73, 73), black, -1)
	return frame
}

func TestScanAlwaysInvokesDecoder(t *testing.T) {
	frame := whiteFrame(160, 120)
	defer frame.Close()

	stub := &stubDecoder{}
	scanner := NewScanner(stub)

	result, err := scanner.Scan(frame)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	defer result.Annotated.Close()

	if stub.calls != 1 {
		t.Errorf("decoder calls: got %d, want 1 (decode must not gate on candidates)", stub.calls)
	}
	if result.Text != "" {
		t.Errorf("text: got %q, want empty", result.Text)
	}
	if len(result.Candidates) != 0 {
		t.Errorf("candidates on a blank frame: got %d, want 0", len(result.Candidates))
	}
	if result.Annotated.Empty() {
		t.Error("annotated frame is empty")
	}
}

func TestScanIdempotent(t *testing.T) {
	frame := markerFrame(160, 120)
	defer frame.Close()

	stub := &stubDecoder{res: decode.Result{Text: "fixed"}}
	scanner := NewScanner(stub)

	first, err := scanner.Scan(frame)
	if err != nil {
		t.Fatalf("first Scan failed: %v", err)
	}
	defer first.Annotated.Close()

	second, err := scanner.Scan(frame)
	if err != nil {
		t.Fatalf("second Scan failed: %v", err)
	}
	defer second.Annotated.Close()

	if first.Text != second.Text {
		t.Errorf("text changed between scans: %q vs %q", first.Text, second.Text)
	}
	if len(first.Candidates) != len(second.Candidates) {
		t.Fatalf("candidate count changed between scans: %d vs %d",
			len(first.Candidates), len(second.Candidates))
	}
	for i := range first.Candidates {
		if first.Candidates[i].Rect != second.Candidates[i].Rect {
			t.Errorf("candidate %d changed between scans: %v vs %v",
				i, first.Candidates[i].Rect, second.Candidates[i].Rect)
		}
	}
}

func TestScanRejectsEmptyFrame(t *testing.T) {
	stub := &stubDecoder{}
	scanner := NewScanner(stub)

	empty := gocv.NewMat()
	defer empty.Close()

	if _, err := scanner.Scan(empty); err == nil {
		t.Fatal("expected error for empty frame, got nil")
	}
	if stub.calls != 0 {
		t.Errorf("decoder called %d times on precondition failure", stub.calls)
	}
}

func TestScanSurfacesDecoderFailure(t *testing.T) {
	frame := whiteFrame(160, 120)
	defer frame.Close()

	stub := &stubDecoder{err: errors.New("engine exploded")}
	scanner := NewScanner(stub)

	if _, err := scanner.Scan(frame); err == nil {
		t.Fatal("expected decoder failure to propagate, got nil")
	}
}

func TestScanRoundTrip(t *testing.T) {
	writer := qrcode.NewQRCodeWriter()
	matrix, err := writer.Encode("HELLO", gozxing.BarcodeFormat_QR_CODE, 200, 200, nil)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, matrix.GetWidth(), matrix.GetHeight()))
	for y := 0; y < matrix.GetHeight(); y++ {
		for x := 0; x < matrix.GetWidth(); x++ {
			if matrix.Get(x, y) {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	frame, err := gocv.ImageToMatRGB(img)
	if err != nil {
		t.Fatalf("ImageToMatRGB failed: %v", err)
	}
	defer frame.Close()

	dec := decode.NewZXing()
	defer dec.Close()
	scanner := NewScanner(dec)

	result, err := scanner.Scan(frame)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	defer result.Annotated.Close()

	if result.Text != "HELLO" {
		t.Errorf("text: got %q, want %q", result.Text, "HELLO")
	}
	if result.Annotated.Empty() {
		t.Error("annotated frame is empty")
	}
}
