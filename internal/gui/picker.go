package gui

import (
	"wordcounter/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// Picker asks the user for a file. onPicked receives the chosen path, or is
// not called at all when the user cancels.
type Picker interface {
	PickFile(parent fyne.Window, onPicked func(path string))
}

// DialogPicker shows fyne's file open dialog filtered to the supported
// extensions.
type DialogPicker struct {
	startDir   string
	extensions []string
}

// NewDialogPicker creates a picker opening in startDir (if not empty) and
// listing only files whose extension is one of formats.
func NewDialogPicker(startDir string, formats []string) *DialogPicker {
	exts := make([]string, 0, len(formats))
	for _, f := range formats {
		exts = append(exts, "."+f)
	}
	return &DialogPicker{startDir: startDir, extensions: exts}
}

// PickFile implements Picker.
func (p *DialogPicker) PickFile(parent fyne.Window, onPicked func(path string)) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			log.LogError(err, "File dialog failed")
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		onPicked(path)
	}, parent)

	if len(p.extensions) > 0 {
		d.SetFilter(storage.NewExtensionFileFilter(p.extensions))
	}
	if p.startDir != "" {
		if dir, err := storage.ListerForURI(storage.NewFileURI(p.startDir)); err == nil {
			d.SetLocation(dir)
		} else {
			log.LogWithFields(log.F("dir", p.startDir), log.F("error", err)).Warn("Cannot open start directory")
		}
	}
	d.Resize(parent.Canvas().Size())
	d.Show()
}
