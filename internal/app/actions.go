package app

import (
	"errors"
	"log/slog"
	"sync"

	"mandelview/internal/viewer"

	"github.com/atotto/clipboard"
	"github.com/sqweek/dialog"
	imgclip "golang.design/x/clipboard"
)

var errNoImageClipboard = errors.New("image clipboard unavailable")

// desktopActions wires the viewer's side effects to native dialogs and the
// system clipboard.
func desktopActions(log *slog.Logger) viewer.Actions {
	var (
		initOnce sync.Once
		initErr  error
	)
	return viewer.Actions{
		SavePath: func() (string, error) {
			path, err := dialog.File().Filter("PNG images", "png").Title("Export view").Save()
			if errors.Is(err, dialog.ErrCancelled) {
				return "", errors.New("export cancelled")
			}
			return path, err
		},
		CopyText: clipboard.WriteAll,
		CopyImage: func(png []byte) error {
			initOnce.Do(func() {
				if err := imgclip.Init(); err != nil {
					log.Warn("image clipboard init failed", "err", err)
					initErr = errNoImageClipboard
				}
			})
			if initErr != nil {
				return initErr
			}
			imgclip.Write(imgclip.FmtImage, png)
			return nil
		},
	}
}
