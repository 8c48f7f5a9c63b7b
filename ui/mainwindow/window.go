// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"chart-board/internal/app"
	"chart-board/internal/config"
	"chart-board/internal/editor"
	"chart-board/internal/imageio"
	"chart-board/internal/project"
	"chart-board/internal/render"
	"chart-board/internal/scene"
	"chart-board/internal/version"
	"chart-board/pkg/geometry"
	"chart-board/ui/canvas"
	"chart-board/ui/dialogs"
	"chart-board/ui/panels"
	"chart-board/ui/prefs"
)

const watchInterval = 2 * time.Second

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app     fyne.App
	state   *app.State
	session *editor.Session
	cfg     *config.Config
	prefs   *prefs.Prefs

	canvas     *canvas.BoardCanvas
	toolPanel  *panels.ToolPanel
	stylePanel *panels.StylePanel

	cursorLabel *widget.Label
	zoomLabel   *widget.Label
	countLabel  *widget.Label
	toolLabel   *widget.Label

	// Menu items that track toggle state
	gridItem    *fyne.MenuItem
	rulersItem  *fyne.MenuItem
	minimapItem *fyne.MenuItem
	darkItem    *fyne.MenuItem

	board   *project.Board
	watcher *app.BoardWatcher
}

// New creates the main window over an already assembled state and session.
func New(fyneApp fyne.App, state *app.State, session *editor.Session, renderer *render.Renderer, cfg *config.Config, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("chart-board")

	mw := &MainWindow{
		Window:  win,
		app:     fyneApp,
		state:   state,
		session: session,
		cfg:     cfg,
		prefs:   appPrefs,
	}

	mw.canvas = canvas.NewBoardCanvas(session, renderer, cfg.Canvas.GridSpacing)
	mw.restoreViewPrefs()

	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupPrompts()
	mw.setupEventHandlers()

	w, h := appPrefs.WindowSize()
	win.Resize(fyne.NewSize(float32(w), float32(h)))
	win.SetCloseIntercept(mw.onClose)

	return mw
}

// setupUI assembles tool column | canvas | style panel with a status bar.
func (mw *MainWindow) setupUI() {
	mw.toolPanel = panels.NewToolPanel(mw.session)
	mw.stylePanel = panels.NewStylePanel(mw.session)

	mw.cursorLabel = widget.NewLabel("0, 0")
	mw.zoomLabel = widget.NewLabel("100%")
	mw.countLabel = widget.NewLabel("0 elements")
	mw.toolLabel = widget.NewLabel("select")

	mw.canvas.OnCursorMoved(func(world geometry.Point2D) {
		mw.cursorLabel.SetText(fmt.Sprintf("%.0f, %.0f", world.X, world.Y))
	})

	statusBar := container.NewHBox(
		mw.cursorLabel,
		widget.NewSeparator(),
		mw.zoomLabel,
		widget.NewSeparator(),
		mw.countLabel,
		widget.NewSeparator(),
		mw.toolLabel,
	)

	content := container.NewBorder(
		nil,                              // top
		container.NewPadded(statusBar),   // bottom
		mw.toolPanel.Container(),         // left
		mw.stylePanel.Container(),        // right
		mw.canvas,                        // center
	)
	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Board", mw.onNewBoard),
		fyne.NewMenuItem("Open Board...", mw.onOpenBoard),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Board", mw.onSaveBoard),
		fyne.NewMenuItem("Save Board As...", mw.onSaveBoardAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Image...", mw.onImportImage),
		fyne.NewMenuItem("Export PNG...", mw.onExportPNG),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.session.Undo),
		fyne.NewMenuItem("Redo", mw.session.Redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Copy", mw.session.Copy),
		fyne.NewMenuItem("Paste", mw.session.Paste),
		fyne.NewMenuItem("Duplicate", mw.session.Duplicate),
		fyne.NewMenuItem("Delete", mw.session.DeleteSelection),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Select All", mw.session.SelectAll),
		fyne.NewMenuItem("Clear Board...", mw.onClearBoard),
	)

	mw.gridItem = fyne.NewMenuItem(toggleLabel("Grid", mw.canvas.ShowGrid()), mw.onToggleGrid)
	mw.rulersItem = fyne.NewMenuItem(toggleLabel("Rulers", mw.canvas.ShowRulers()), mw.onToggleRulers)
	mw.minimapItem = fyne.NewMenuItem(toggleLabel("Minimap", mw.canvas.ShowMinimap()), mw.onToggleMinimap)
	mw.darkItem = fyne.NewMenuItem(toggleLabel("Dark Mode", mw.state.DarkMode()), mw.onToggleDark)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { mw.session.ZoomIn(mw.viewCenter()) }),
		fyne.NewMenuItem("Zoom Out", func() { mw.session.ZoomOut(mw.viewCenter()) }),
		fyne.NewMenuItem("Reset Zoom", func() { mw.session.ResetZoom(mw.viewCenter()) }),
		fyne.NewMenuItem("Zoom to Fit", mw.onZoomToFit),
		fyne.NewMenuItemSeparator(),
		mw.gridItem,
		mw.rulersItem,
		mw.minimapItem,
		fyne.NewMenuItemSeparator(),
		mw.darkItem,
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupShortcuts installs keyboard handling on the window canvas. All
// shortcuts are ignored while a text entry has focus.
func (mw *MainWindow) setupShortcuts() {
	type binding struct {
		key    fyne.KeyName
		action func()
	}
	for _, b := range []binding{
		{fyne.KeyZ, mw.session.Undo},
		{fyne.KeyY, mw.session.Redo},
		{fyne.KeyC, mw.session.Copy},
		{fyne.KeyV, mw.session.Paste},
		{fyne.KeyD, mw.session.Duplicate},
		{fyne.KeyA, mw.session.SelectAll},
		{fyne.KeyN, mw.onNewBoard},
		{fyne.KeyO, mw.onOpenBoard},
		{fyne.KeyS, mw.onSaveBoard},
		{fyne.KeyE, mw.onExportPNG},
	} {
		action := b.action
		sc := &desktop.CustomShortcut{KeyName: b.key, Modifier: fyne.KeyModifierControl}
		mw.Canvas().AddShortcut(sc, func(fyne.Shortcut) {
			if mw.textFocused() {
				return
			}
			action()
		})
	}

	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if mw.textFocused() {
			return
		}
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			mw.session.DeleteSelection()
		case fyne.KeyEscape:
			mw.session.Cancel()
		}
	})

	mw.Canvas().SetOnTypedRune(func(r rune) {
		if mw.textFocused() {
			return
		}
		if tool, ok := toolForKey(r); ok {
			mw.session.SetTool(tool)
		}
	})

	// Spacebar held overrides any tool with panning.
	if deskCanvas, ok := mw.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			if ev.Name == fyne.KeySpace && !mw.textFocused() {
				mw.session.SetSpacePan(true)
			}
		})
		deskCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			if ev.Name == fyne.KeySpace {
				mw.session.SetSpacePan(false)
			}
		})
	}
}

// toolForKey maps single-letter shortcuts to tools.
func toolForKey(r rune) (editor.Tool, bool) {
	switch r {
	case 'v':
		return editor.ToolSelect, true
	case 'h':
		return editor.ToolHand, true
	case 'r':
		return editor.ToolRectangle, true
	case 'd':
		return editor.ToolDiamond, true
	case 'o':
		return editor.ToolEllipse, true
	case 'a':
		return editor.ToolArrow, true
	case 'l':
		return editor.ToolLine, true
	case 'p':
		return editor.ToolPencil, true
	case 'w':
		return editor.ToolPath, true
	case 't':
		return editor.ToolText, true
	case 'i':
		return editor.ToolImage, true
	case 'x':
		return editor.ToolEraser, true
	case 'k':
		return editor.ToolLaser, true
	}
	return 0, false
}

func (mw *MainWindow) textFocused() bool {
	return mw.Canvas().Focused() != nil
}

// setupPrompts wires the session callbacks that need modal UI.
func (mw *MainWindow) setupPrompts() {
	mw.session.OnTextPrompt(func(at geometry.Point2D, existing *scene.Text) {
		if existing != nil {
			dialogs.ShowTextEntry(mw.Window, existing.Content, func(content string) {
				mw.session.UpdateText(existing.ID, content)
			})
			return
		}
		dialogs.ShowTextEntry(mw.Window, "", func(content string) {
			mw.session.AddText(at, content)
		})
	})

	mw.session.OnImagePrompt(func(el *scene.Image) {
		mw.pickImageFile(func(data []byte) {
			mw.session.SetImageData(el.ID, data)
			mw.canvas.Renderer().Images().Drop(el.ID)
			mw.canvas.Refresh()
		})
	})

	mw.session.OnConfirmClear(func() {
		mw.onClearBoard()
	})

	// Dropped image files land as elements at the view center.
	mw.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		for _, uri := range uris {
			path := uri.Path()
			if !imageio.IsSupportedFormat(path) {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				dialog.ShowError(fmt.Errorf("read %s: %w", filepath.Base(path), err), mw.Window)
				continue
			}
			center := mw.session.Camera().ScreenToWorld(mw.viewCenter())
			mw.session.AddImage(center, data)
		}
	})
}

// setupEventHandlers subscribes the window chrome to application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventViewChanged, func(interface{}) {
		mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", mw.session.Camera().Scale*100))
	})
	mw.state.On(app.EventSceneChanged, func(interface{}) {
		mw.countLabel.SetText(fmt.Sprintf("%d elements", mw.state.Scene.Len()))
	})
	mw.state.On(app.EventToolChanged, func(interface{}) {
		label := mw.session.Tool().String()
		if mw.session.ToolLocked() {
			label += " (locked)"
		}
		mw.toolLabel.SetText(label)
	})
	mw.state.On(app.EventModified, func(interface{}) {
		mw.updateTitle()
	})
	mw.state.On(app.EventBoardLoaded, func(interface{}) {
		mw.updateTitle()
	})
	mw.state.On(app.EventBoardSaved, func(data interface{}) {
		mw.updateTitle()
		if path, ok := data.(string); ok {
			mw.watchBoard(path)
		}
	})
}

func (mw *MainWindow) updateTitle() {
	title := "chart-board — " + mw.state.BoardName()
	if mw.state.Modified() {
		title += " *"
	}
	mw.SetTitle(title)
}

func (mw *MainWindow) viewCenter() geometry.Point2D {
	w, h := mw.canvas.ViewSize()
	return geometry.NewPoint2D(w/2, h/2)
}

// restoreViewPrefs applies the persisted view toggles.
func (mw *MainWindow) restoreViewPrefs() {
	mw.canvas.SetShowGrid(mw.prefs.ShowGrid())
	mw.canvas.SetShowRulers(mw.prefs.ShowRulers())
	mw.canvas.SetShowMinimap(mw.prefs.ShowMinimap())
	mw.state.SetDarkMode(mw.prefs.DarkMode())
}

// RestoreLastBoard reopens the most recently used board file, if any.
func (mw *MainWindow) RestoreLastBoard() {
	path := mw.prefs.LastBoard()
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	mw.openBoard(path)
}

// watchBoard restarts the external-change watcher on the given path.
func (mw *MainWindow) watchBoard(path string) {
	if mw.watcher != nil {
		mw.watcher.Stop()
		mw.watcher = nil
	}
	w := app.NewBoardWatcher(path, watchInterval)
	if w == nil {
		return
	}
	w.OnChanged(func(changed string) {
		dialog.ShowConfirm("Board Changed",
			filepath.Base(changed)+" was modified outside chart-board.\nReload it?",
			func(ok bool) {
				if ok {
					mw.openBoard(changed)
					return
				}
				w.ResetBaseline()
				w.Start()
			}, mw.Window)
	})
	w.Start()
	mw.watcher = w
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.LastDirectory()
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir remembers the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetLastDirectory(filepath.Dir(filePath))
}

// Menu action handlers

func (mw *MainWindow) onNewBoard() {
	start := func() {
		mw.board = nil
		mw.state.NewBoard()
		mw.session.SetCamera(geometry.NewCamera())
	}
	if mw.state.Modified() {
		dialog.ShowConfirm("Unsaved Changes", "Discard the unsaved board?", func(ok bool) {
			if ok {
				start()
			}
		}, mw.Window)
		return
	}
	start()
}

func (mw *MainWindow) onOpenBoard() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		mw.openBoard(reader.URI().Path())
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{project.DefaultExt}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) openBoard(path string) {
	b, err := mw.state.LoadBoard(path)
	if err != nil {
		dialog.ShowError(fmt.Errorf("load board: %w", err), mw.Window)
		return
	}
	mw.board = b
	mw.session.SetCamera(b.Camera)
	mw.saveLastDir(path)
	mw.prefs.SetLastBoard(path)
	mw.watchBoard(path)
}

func (mw *MainWindow) onSaveBoard() {
	if mw.state.BoardPath() == "" {
		mw.onSaveBoardAs()
		return
	}
	mw.saveBoard(mw.state.BoardPath())
}

func (mw *MainWindow) onSaveBoardAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		mw.saveBoard(project.EnsureExt(writer.URI().Path()))
	}, mw.Window)
	fd.SetFileName("board" + project.DefaultExt)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) saveBoard(path string) {
	if mw.board == nil {
		mw.board = project.New(project.NameFromPath(path))
	}
	mw.board.Camera = mw.session.Camera()
	if err := mw.state.SaveBoard(path, mw.board); err != nil {
		dialog.ShowError(fmt.Errorf("save board: %w", err), mw.Window)
		return
	}
	mw.saveLastDir(path)
	mw.prefs.SetLastBoard(path)
}

func (mw *MainWindow) onImportImage() {
	mw.pickImageFile(func(data []byte) {
		center := mw.session.Camera().ScreenToWorld(mw.viewCenter())
		mw.session.AddImage(center, data)
	})
}

// pickImageFile opens a file dialog for a raster image and hands the raw
// bytes to done. Cancel calls nothing.
func (mw *MainWindow) pickImageFile(done func(data []byte)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		data, err := os.ReadFile(path)
		if err != nil {
			dialog.ShowError(fmt.Errorf("read image: %w", err), mw.Window)
			return
		}
		mw.saveLastDir(path)
		done(data)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(imageio.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportPNG() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		pal := render.PaletteFor(mw.state.DarkMode())
		data, err := render.SnapshotPNG(mw.state.Scene.Elements(),
			mw.canvas.Renderer().Images(), pal, mw.cfg.Export.Padding)
		if err != nil {
			dialog.ShowError(fmt.Errorf("export: %w", err), mw.Window)
			return
		}
		if _, err := writer.Write(data); err != nil {
			dialog.ShowError(fmt.Errorf("write PNG: %w", err), mw.Window)
		}
	}, mw.Window)
	fd.SetFileName(mw.state.BoardName() + ".png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onClearBoard() {
	if mw.state.Scene.Len() == 0 {
		return
	}
	dialog.ShowConfirm("Clear Board",
		"Remove every element from the board?", func(ok bool) {
			if ok {
				mw.session.ClearAll()
			}
		}, mw.Window)
}

func (mw *MainWindow) onZoomToFit() {
	w, h := mw.canvas.ViewSize()
	mw.session.FitToContent(w, h)
}

func (mw *MainWindow) onToggleGrid() {
	mw.canvas.SetShowGrid(!mw.canvas.ShowGrid())
	mw.gridItem.Label = toggleLabel("Grid", mw.canvas.ShowGrid())
	mw.prefs.SetShowGrid(mw.canvas.ShowGrid())
}

func (mw *MainWindow) onToggleRulers() {
	mw.canvas.SetShowRulers(!mw.canvas.ShowRulers())
	mw.rulersItem.Label = toggleLabel("Rulers", mw.canvas.ShowRulers())
	mw.prefs.SetShowRulers(mw.canvas.ShowRulers())
}

func (mw *MainWindow) onToggleMinimap() {
	mw.canvas.SetShowMinimap(!mw.canvas.ShowMinimap())
	mw.minimapItem.Label = toggleLabel("Minimap", mw.canvas.ShowMinimap())
	mw.prefs.SetShowMinimap(mw.canvas.ShowMinimap())
}

func (mw *MainWindow) onToggleDark() {
	dark := !mw.state.DarkMode()
	mw.state.SetDarkMode(dark)
	mw.darkItem.Label = toggleLabel("Dark Mode", dark)
	mw.prefs.SetDarkMode(dark)
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About chart-board",
		fmt.Sprintf("chart-board v%s\n\n"+
			"An annotation whiteboard for trading charts.",
			version.String()),
		mw.Window)
}

// onClose persists window preferences and confirms discarding unsaved
// changes.
func (mw *MainWindow) onClose() {
	quit := func() {
		size := mw.Canvas().Size()
		mw.prefs.SetWindowSize(float64(size.Width), float64(size.Height))
		if err := mw.prefs.Save(); err != nil {
			fmt.Fprintln(os.Stderr, "save preferences:", err)
		}
		if mw.watcher != nil {
			mw.watcher.Stop()
		}
		mw.app.Quit()
	}

	if !mw.state.Modified() {
		quit()
		return
	}
	dialog.ShowConfirm("Unsaved Changes", "Quit without saving?", func(ok bool) {
		if ok {
			quit()
		}
	}, mw.Window)
}

func toggleLabel(name string, on bool) string {
	if on {
		return "✓ " + name
	}
	return "  " + name
}
