package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/cdang054/qrscan/internal/decode"
	"github.com/cdang054/qrscan/internal/pipeline"
	"github.com/cdang054/qrscan/internal/snapshot"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("qrscan %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("qrscan - live QR code scanner")
			fmt.Println()
			fmt.Println("Usage: qrscan [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  -device N          Capture device ID (default 0)")
			fmt.Println("  -snapshots DIR     Save annotated frames under DIR (default off)")
			fmt.Println("  -snapshot-width N  Downscale snapshots to N pixels wide (default keep)")
			fmt.Println("  -debug             Enable debug logging")
			fmt.Println("  --version, -v      Print version information")
			fmt.Println()
			fmt.Println("Decoded text is printed to stdout whenever it changes.")
			fmt.Println("Press ESC or q in the preview window to quit.")
			return
		}
	}

	device := flag.Int("device", 0, "capture device ID")
	snapshots := flag.String("snapshots", "", "directory to save annotated frames into (empty = off)")
	snapshotWidth := flag.Int("snapshot-width", 0, "downscale snapshots to this width (0 = keep)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level).With("session", uuid.NewString())
	logger.Info("starting", "version", Version, "device", *device)

	if err := run(logger, *device, *snapshots, *snapshotWidth); err != nil {
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, device int, snapshotDir string, snapshotWidth int) error {
	webcam, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return errors.Wrapf(err, "open capture device %d", device)
	}
	defer webcam.Close()

	dec := decode.NewOpenCV()
	defer dec.Close()
	scanner := pipeline.NewScanner(dec, pipeline.WithLogger(logger))

	var saver *snapshot.Saver
	if snapshotDir != "" {
		saver, err = snapshot.NewSaver(snapshotDir, snapshotWidth)
		if err != nil {
			return errors.Wrap(err, "snapshot saver")
		}
		logger.Info("saving snapshots", "dir", saver.Dir())
	}

	window := gocv.NewWindow("QR Scanner")
	defer window.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	lastText := ""
	for {
		if ok := webcam.Read(&frame); !ok {
			logger.Info("capture device closed", "device", device)
			return nil
		}
		if frame.Empty() {
			continue
		}

		result, err := scanner.Scan(frame)
		if err != nil {
			logger.Error("scan failed", "err", err)
			continue
		}

		if result.Text != "" && result.Text != lastText {
			fmt.Println(result.Text)
			logger.Info("decoded", "text", result.Text)
			lastText = result.Text
		}

		if saver != nil {
			if err := saver.Save(result.Annotated); err != nil {
				logger.Warn("snapshot failed", "err", err)
			}
		}

		window.IMShow(result.Annotated)
		result.Annotated.Close()

		if key := window.WaitKey(1); key == 27 || key == 'q' {
			if saver != nil {
				saved, dropped := saver.Stats()
				logger.Info("snapshot stats", "saved", saved, "dropped", dropped)
			}
			return nil
		}
	}
}
