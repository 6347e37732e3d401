package starfield

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// flushScreenshots saves the current screen once per queued label into dir.
// ReadPixels only works from Draw.
func flushScreenshots(screen *ebiten.Image, dir string, labels []string, log Logger) {
	if len(labels) == 0 {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Errorf("screenshot: %v", err)
		return
	}

	// ebiten pixels are premultiplied, which is exactly image.RGBA's layout;
	// the PNG encoder converts to straight alpha itself.
	shot := image.NewRGBA(screen.Bounds())
	screen.ReadPixels(shot.Pix)

	stamp := time.Now().Format("20060102_150405")
	for _, label := range labels {
		path := filepath.Join(dir, stamp+"_"+shotName(label)+".png")
		if err := savePNG(path, shot); err != nil {
			log.Errorf("screenshot: %v", err)
			continue
		}
		log.Infof("screenshot: %s", path)
	}
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("save %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// shotName turns a script label into a file-name fragment: ASCII letters,
// digits, '-' and '.' survive, everything else becomes '_'.
func shotName(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r < 0x80 && (r == '-' || r == '.' || '0' <= r && r <= '9' ||
			'a' <= r|0x20 && r|0x20 <= 'z') {
			return r
		}
		return '_'
	}, label)
}
