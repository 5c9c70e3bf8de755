package gui

import (
	"wordcounter/internal/config"
	"wordcounter/internal/counter"

	"fyne.io/fyne/v2/app"
)

// AppID identifies the application to fyne's preferences storage.
const AppID = "io.github.wordcounter"

// Interface defines the contract for GUI operations
type Interface interface {
	Run()
	ShowError(title string, err error)
}

// Factory creates GUI instances
type Factory struct {
	config  *config.Config
	counter *counter.Counter
}

// NewFactory creates a new GUI factory
func NewFactory(cfg *config.Config, c *counter.Counter) *Factory {
	if cfg == nil {
		cfg = config.New()
	}
	return &Factory{
		config:  cfg,
		counter: c,
	}
}

// Create returns the desktop GUI backed by the native fyne driver and the
// file open dialog.
func (f *Factory) Create() (Interface, error) {
	fyneApp := app.NewWithID(AppID)
	picker := NewDialogPicker(f.config.Dialog.StartDir, f.counter.Formats())
	return NewApp(fyneApp, f.config, f.counter, picker), nil
}
