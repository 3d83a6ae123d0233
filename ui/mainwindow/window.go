// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/MicroSwitchers/sfh/internal/app"
	"github.com/MicroSwitchers/sfh/internal/export"
	"github.com/MicroSwitchers/sfh/internal/version"
	"github.com/MicroSwitchers/sfh/pkg/colorutil"
	"github.com/MicroSwitchers/sfh/ui/prefs"
	"github.com/MicroSwitchers/sfh/ui/surface"
)

var imageFilter = storage.NewExtensionFileFilter(
	[]string{".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".webp", ".bmp"})

var toolNames = []string{"Pen", "Eraser", "Magnet", "Hand"}

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app     fyne.App
	state   *app.State
	prefs   *prefs.Prefs
	surface *surface.Surface

	statusBar *widget.Label
}

// New creates the main window around an annotation session.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(fmt.Sprintf("sfh v%s", version.Version))

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.restorePrefs()
	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()

	win.Resize(fyne.NewSize(1100, 750))
	win.SetOnClosed(func() {
		mw.savePrefs()
		mw.surface.Close()
	})
	return mw
}

func (mw *MainWindow) setupUI() {
	mw.surface = surface.New(mw.state)
	mw.statusBar = widget.NewLabel("Ready")

	content := container.NewBorder(
		mw.createToolbar(), // top
		mw.statusBar,       // bottom
		nil, nil,
		mw.surface,
	)
	mw.SetContent(content)
}

func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	tools := widget.NewRadioGroup(toolNames, func(name string) {
		mw.state.SetTool(toolFromName(name))
	})
	tools.Horizontal = true
	tools.SetSelected(mw.state.Tool.String())

	palette := container.NewHBox()
	for _, c := range []color.RGBA{
		colorutil.Red, colorutil.Blue, colorutil.Green,
		colorutil.Yellow, colorutil.Magenta, colorutil.Black, colorutil.White,
	} {
		palette.Add(newSwatch(c, func(chosen color.RGBA) {
			mw.state.SetPen(chosen, mw.state.PenWidth)
		}))
	}

	width := widget.NewSlider(1, 30)
	width.SetValue(mw.state.PenWidth)
	width.OnChanged = func(v float64) {
		mw.state.SetPen(mw.state.PenColor, v)
	}

	compare := widget.NewCheck("Compare", func(on bool) {
		if on && mw.state.Right.Layer == nil {
			mw.openImage(app.PaneRight)
		}
		mw.state.SetCompare(on)
	})

	undo := widget.NewButton("Undo", func() { mw.state.Undo(app.PaneLeft) })
	redo := widget.NewButton("Redo", func() { mw.state.Redo(app.PaneLeft) })

	return container.NewHBox(
		tools,
		widget.NewSeparator(),
		palette,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		container.New(layout.NewGridWrapLayout(fyne.NewSize(140, 36)), width),
		widget.NewSeparator(),
		undo, redo,
		widget.NewSeparator(),
		compare,
		layout.NewSpacer(),
	)
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", func() { mw.openImage(app.PaneLeft) }),
		fyne.NewMenuItem("Open Reference...", func() { mw.openImage(app.PaneRight) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", func() { mw.exportPNG(0) }),
		fyne.NewMenuItem("Export Thumbnail...", func() { mw.exportPNG(thumbnailEdge) }),
		fyne.NewMenuItem("Export PDF...", mw.exportPDF),
	)
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() { mw.state.Undo(app.PaneLeft) }),
		fyne.NewMenuItem("Redo", func() { mw.state.Redo(app.PaneLeft) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Workspace", func() { mw.state.ClearPane(app.PaneLeft) }),
		fyne.NewMenuItem("Clear Reference", func() { mw.state.ClearPane(app.PaneRight) }),
		fyne.NewMenuItem("Undo Reference", func() { mw.state.Undo(app.PaneRight) }),
		fyne.NewMenuItem("Redo Reference", func() { mw.state.Redo(app.PaneRight) }),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Recenter", func() {
			mw.state.Recenter(app.PaneLeft)
			if mw.state.Compare {
				mw.state.Recenter(app.PaneRight)
			}
		}),
	)
	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu))
}

// setupShortcuts binds undo/redo to the workspace pane. The reference
// pane is driven from the Edit menu instead.
func (mw *MainWindow) setupShortcuts() {
	c := mw.Canvas()
	undoSc := &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	redoSc := &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}
	redoShiftSc := &desktop.CustomShortcut{
		KeyName:  fyne.KeyZ,
		Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift,
	}

	c.AddShortcut(undoSc, func(fyne.Shortcut) { mw.state.Undo(app.PaneLeft) })
	c.AddShortcut(redoSc, func(fyne.Shortcut) { mw.state.Redo(app.PaneLeft) })
	c.AddShortcut(redoShiftSc, func(fyne.Shortcut) { mw.state.Redo(app.PaneLeft) })
}

func (mw *MainWindow) setupEventHandlers() {
	update := func(interface{}) { mw.updateStatus() }
	mw.state.On(app.EventViewChanged, update)
	mw.state.On(app.EventToolChanged, update)
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		if pane, ok := data.(*app.Pane); ok && pane.Layer != nil {
			log.Printf("Loaded %s (%dx%d) into %s pane",
				pane.Layer.Name(), pane.Layer.Width(), pane.Layer.Height(), pane.ID)
		}
		mw.updateStatus()
	})
}

func (mw *MainWindow) updateStatus() {
	mw.statusBar.SetText(fmt.Sprintf("%s  |  Zoom %.0f%%",
		mw.state.Tool, mw.state.Left.Transform.K*100))
}

func (mw *MainWindow) openImage(id app.PaneID) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()

		if err := mw.state.LoadImage(id, path); err != nil {
			log.Printf("Failed to load %s: %v", path, err)
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.Set(prefs.KeyLastDir, filepath.Dir(path))
	}, mw.Window)
	fd.SetFilter(imageFilter)
	mw.setStartDir(fd)
	fd.Show()
}

// thumbnailEdge is the longer-edge limit for thumbnail export.
const thumbnailEdge = 512

// exportPNG saves the flattened workspace pane; a positive maxEdge
// scales the result down to a thumbnail.
func (mw *MainWindow) exportPNG(maxEdge int) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		img := export.Flatten(mw.state.Left, mw.state.ViewSize(), color.RGBA{40, 40, 40, 255})
		if maxEdge > 0 {
			img = export.Thumbnail(img, maxEdge)
		}
		if err := export.WritePNG(writer, img); err != nil {
			log.Printf("PNG export failed: %v", err)
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	name := "annotation.png"
	if maxEdge > 0 {
		name = "annotation-thumb.png"
	}
	fd.SetFileName(name)
	fd.Show()
}

func (mw *MainWindow) exportPDF() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		_ = writer.Close()
		if err := export.ExportPDF(path, mw.state.Left); err != nil {
			log.Printf("PDF export failed: %v", err)
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("annotation.pdf")
	fd.Show()
}

func (mw *MainWindow) setStartDir(fd *dialog.FileDialog) {
	dir := mw.prefs.String(prefs.KeyLastDir, "")
	if dir == "" {
		return
	}
	uri := storage.NewFileURI(dir)
	if lister, err := storage.ListerForURI(uri); err == nil {
		fd.SetLocation(lister)
	}
}

func (mw *MainWindow) restorePrefs() {
	mw.state.SetTool(toolFromName(mw.prefs.String(prefs.KeyTool, "Pen")))
	col := mw.state.PenColor
	if hex := mw.prefs.String(prefs.KeyPenColor, ""); hex != "" {
		if parsed, ok := parseHexColor(hex); ok {
			col = parsed
		}
	}
	mw.state.SetPen(col, mw.prefs.Float(prefs.KeyPenWidth, mw.state.PenWidth))
}

func (mw *MainWindow) savePrefs() {
	mw.prefs.Set(prefs.KeyTool, mw.state.Tool.String())
	mw.prefs.Set(prefs.KeyPenWidth, mw.state.PenWidth)
	mw.prefs.Set(prefs.KeyPenColor, hexColor(mw.state.PenColor))
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

func toolFromName(name string) app.Tool {
	switch name {
	case "Eraser":
		return app.ToolEraser
	case "Magnet":
		return app.ToolMagnet
	case "Hand":
		return app.ToolHand
	default:
		return app.ToolPen
	}
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func parseHexColor(s string) (color.RGBA, bool) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, true
}

// swatch is a tappable color square in the toolbar.
type swatch struct {
	widget.BaseWidget
	color    color.RGBA
	onTapped func(color.RGBA)
}

func newSwatch(c color.RGBA, tapped func(color.RGBA)) *swatch {
	s := &swatch{color: c, onTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *swatch) CreateRenderer() fyne.WidgetRenderer {
	rect := fynecanvas.NewRectangle(s.color)
	rect.SetMinSize(fyne.NewSize(24, 24))
	rect.StrokeColor = color.Gray{Y: 120}
	rect.StrokeWidth = 1
	return widget.NewSimpleRenderer(rect)
}

func (s *swatch) Tapped(_ *fyne.PointEvent) {
	if s.onTapped != nil {
		s.onTapped(s.color)
	}
}
