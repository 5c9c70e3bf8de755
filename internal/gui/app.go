package gui

import (
	"fmt"
	"time"

	"wordcounter/internal/config"
	"wordcounter/internal/counter"
	"wordcounter/internal/errors"
	"wordcounter/internal/log"
	"wordcounter/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Window text.
const (
	windowTitle      = "Word Counter"
	headingText      = "Підрахунок слів у файлі"
	chooseButtonText = "📂 Вибрати файл"
	countButtonText  = "▶ Порахувати слова"
	fileLabelFormat  = "Файл: %s"
	noFileText       = "Файл: Не вибрано"
	resultFormat     = "📝 Кількість слів: %d"
	errorFormat      = "❌ Помилка: %s"
)

var windowSize = fyne.NewSize(400, 300)

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	counter    *counter.Counter
	picker     Picker
	model      *state.Model

	chooseButton *widget.Button
	fileLabel    *widget.Label
	countButton  *widget.Button
	resultLabel  *widget.Label
	errorLabel   *widget.Label
}

// NewApp builds the main window on fyneApp. The window is not shown until
// Run is called.
func NewApp(fyneApp fyne.App, cfg *config.Config, c *counter.Counter, picker Picker) *App {
	if cfg == nil {
		cfg = config.New()
	}

	a := &App{
		fyneApp: fyneApp,
		cfg:     cfg,
		counter: c,
		picker:  picker,
		model:   state.New(),
	}

	a.fyneApp.SetIcon(theme.DocumentIcon())
	a.mainWindow = a.fyneApp.NewWindow(windowTitle)
	a.mainWindow.SetIcon(theme.DocumentIcon())
	a.setupMainWindow()
	a.refresh()

	return a
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// State exposes the model the window renders.
func (a *App) State() state.Reader {
	return a.model
}

// Run shows the window and blocks until it is closed.
func (a *App) Run() {
	a.mainWindow.Show()
	a.fyneApp.Run()
}

// ShowError displays an error dialog
func (a *App) ShowError(title string, err error) {
	if err == nil {
		return
	}
	log.LogError(err, title)
	dialog.ShowError(errors.Wrap(err, title), a.mainWindow)
}

// setupMainWindow sets up the main window content
func (a *App) setupMainWindow() {
	headingStyle := widget.RichTextStyleHeading
	headingStyle.Alignment = fyne.TextAlignCenter
	heading := widget.NewRichText(&widget.TextSegment{Text: headingText, Style: headingStyle})

	a.chooseButton = widget.NewButton(chooseButtonText, a.chooseFile)
	a.fileLabel = widget.NewLabel(noFileText)
	a.fileLabel.Truncation = fyne.TextTruncateEllipsis

	a.countButton = widget.NewButton(countButtonText, a.countWords)
	a.countButton.Importance = widget.HighImportance

	a.resultLabel = widget.NewLabel("")
	// Paths in error messages can be arbitrarily long; wrap them so the
	// fixed-size window never grows.
	a.errorLabel = widget.NewLabel("")
	a.errorLabel.Wrapping = fyne.TextWrapWord
	a.errorLabel.Importance = widget.DangerImportance

	content := container.NewVBox(
		heading,
		a.chooseButton,
		a.fileLabel,
		a.countButton,
		a.resultLabel,
		a.errorLabel,
	)

	a.mainWindow.SetContent(container.NewPadded(content))
	a.mainWindow.Resize(windowSize)
	a.mainWindow.SetFixedSize(true)
}

func (a *App) chooseFile() {
	a.picker.PickFile(a.mainWindow, a.selectFile)
}

func (a *App) selectFile(path string) {
	if path == "" {
		return
	}
	a.model.SelectFile(path)
	log.LogWithFields(log.F("path", path)).Debug("File selected")
	a.refresh()
}

// countWords runs the count on the UI goroutine; the window is unresponsive
// until the extractor returns.
func (a *App) countWords() {
	if !a.model.CanCount() {
		return
	}
	start := time.Now()
	n, err := a.counter.Count(a.model.FilePath())
	a.model.Apply(n, err)
	log.LogWithFields(
		log.F("phase", a.model.Phase().String()),
		log.F("elapsed", time.Since(start).String()),
	).Debug("Count finished")
	a.refresh()
}

// refresh renders the model into the widgets.
func (a *App) refresh() {
	if a.model.CanCount() {
		a.fileLabel.SetText(fmt.Sprintf(fileLabelFormat, a.model.FilePath()))
		a.countButton.Enable()
	} else {
		a.fileLabel.SetText(noFileText)
		a.countButton.Disable()
	}

	if n, ok := a.model.Count(); ok {
		a.resultLabel.SetText(fmt.Sprintf(resultFormat, n))
		a.resultLabel.Show()
	} else {
		a.resultLabel.SetText("")
		a.resultLabel.Hide()
	}

	if msg, ok := a.model.ErrorMessage(); ok {
		a.errorLabel.SetText(fmt.Sprintf(errorFormat, msg))
		a.errorLabel.Show()
	} else {
		a.errorLabel.SetText("")
		a.errorLabel.Hide()
	}
}
