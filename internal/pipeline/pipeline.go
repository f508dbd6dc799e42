// Package pipeline orchestrates one full scan of a frame: binarization and
// finder-pattern detection for the debug overlay, the external decoder for
// the authoritative payload, and annotation of the result.
package pipeline

import (
	"log/slog"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/cdang054/qrscan/internal/annotate"
	"github.com/cdang054/qrscan/internal/decode"
	"github.com/cdang054/qrscan/internal/finder"
	"github.com/cdang054/qrscan/internal/preprocess"
)

// Scanner runs the scan pipeline. It holds only fixed parameters and the
// injected decoder; there is no state across Scan calls, so a Scanner may be
// invoked repeatedly from a tight polling loop and every call is an
// idempotent function of its input frame.
type Scanner struct {
	pre     preprocess.Params
	finder  finder.Params
	decoder decode.QuadDecoder
	logger  *slog.Logger
}

// Option customizes a Scanner.
type Option func(*Scanner)

// WithPreprocessParams overrides the binarization parameters.
func WithPreprocessParams(p preprocess.Params) Option {
	return func(s *Scanner) { s.pre = p }
}

// WithFinderParams overrides the candidate filter thresholds.
func WithFinderParams(p finder.Params) Option {
	return func(s *Scanner) { s.finder = p }
}

// WithLogger sets the logger used for per-frame debug records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// NewScanner builds a Scanner around the given decoder. The decoder's
// lifecycle stays with the caller; the Scanner never closes it.
func NewScanner(dec decode.QuadDecoder, opts ...Option) *Scanner {
	s := &Scanner{
		pre:     preprocess.DefaultParams(),
		finder:  finder.DefaultParams(),
		decoder: dec,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanResult is the outcome of scanning one frame.
//
// Text is the decoder's payload and may be empty. Candidates are the
// diagnostic finder-pattern regions. Annotated is a copy of the input frame
// with overlays drawn; the caller owns it and must Close it.
type ScanResult struct {
	Text       string
	Candidates []finder.Candidate
	Annotated  gocv.Mat
}

// Scan runs the full pipeline on one frame.
//
// The candidate detection branch and the decode branch both read the
// original frame and are otherwise independent: decoding always proceeds
// regardless of how many candidates were found, and candidates only feed the
// overlay. A frame with no symbol is a success with empty Text, not an
// error.
func (s *Scanner) Scan(frame gocv.Mat) (ScanResult, error) {
	if frame.Empty() {
		return ScanResult{}, errors.New("empty input frame")
	}

	mask, err := preprocess.Binarize(frame, s.pre)
	if err != nil {
		return ScanResult{}, errors.Wrap(err, "preprocess")
	}
	candidates, err := finder.Detect(mask, s.finder)
	mask.Close()
	if err != nil {
		return ScanResult{}, errors.Wrap(err, "detect finder patterns")
	}

	res, err := s.decoder.DetectAndDecode(frame)
	if err != nil {
		return ScanResult{}, errors.Wrap(err, "decode")
	}

	annotated, err := annotate.Annotate(frame, candidates, res)
	if err != nil {
		return ScanResult{}, errors.Wrap(err, "annotate")
	}

	s.logger.Debug("frame scanned",
		"candidates", len(candidates),
		"located", res.Located(),
		"decoded", res.Text != "")

	return ScanResult{
		Text:       res.Text,
		Candidates: candidates,
		Annotated:  annotated,
	}, nil
}
