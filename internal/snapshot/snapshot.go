// Package snapshot persists annotated frames to disk for offline review.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Saver writes annotated frames as PNG files into a per-session directory.
//
// Filenames carry a sequence number and a timestamp:
// scan_000042_20260826_154517.123.png. Safe for concurrent use; counters are
// atomic and each Save works on its own file.
type Saver struct {
	dir      string
	maxWidth int

	seq     atomic.Uint64
	saved   atomic.Uint64
	dropped atomic.Uint64
}

// NewSaver creates a saver rooted at root. Each saver writes into its own
// session subdirectory so repeated runs never collide. maxWidth > 0 downsizes
// wider frames before writing; 0 keeps the original size.
func NewSaver(root string, maxWidth int) (*Saver, error) {
	dir := filepath.Join(root, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create snapshot directory")
	}
	return &Saver{dir: dir, maxWidth: maxWidth}, nil
}

// Dir returns the session directory files are written into.
func (s *Saver) Dir() string {
	return s.dir
}

// Save writes one frame. Failures count as dropped and return the cause.
func (s *Saver) Save(frame gocv.Mat) error {
	if frame.Empty() {
		s.dropped.Add(1)
		return errors.New("empty frame")
	}

	img, err := frame.ToImage()
	if err != nil {
		s.dropped.Add(1)
		return errors.Wrap(err, "convert frame")
	}
	if s.maxWidth > 0 && img.Bounds().Dx() > s.maxWidth {
		img = imaging.Resize(img, s.maxWidth, 0, imaging.Lanczos)
	}

	name := fmt.Sprintf("scan_%06d_%s.png", s.seq.Add(1), time.Now().Format("20060102_150405.000"))
	if err := imaging.Save(img, filepath.Join(s.dir, name)); err != nil {
		s.dropped.Add(1)
		return errors.Wrap(err, "write snapshot")
	}

	s.saved.Add(1)
	return nil
}

// Stats returns how many frames were saved and dropped so far.
func (s *Saver) Stats() (saved, dropped uint64) {
	return s.saved.Load(), s.dropped.Load()
}
