// Package main provides the entry point for the chart-board application.
package main

import (
	"log"

	fyneapp "fyne.io/fyne/v2/app"

	"chart-board/internal/app"
	"chart-board/internal/config"
	"chart-board/internal/editor"
	"chart-board/internal/render"
	"chart-board/internal/version"
	"chart-board/ui/mainwindow"
	"chart-board/ui/prefs"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting chart-board v%s", version.Version)

	cfg, err := config.Load("")
	if err != nil {
		log.Printf("config: %v (using defaults)", err)
		cfg = config.DefaultConfig()
	}

	appState := app.NewState()
	session := editor.NewSession(appState, cfg)
	renderer := render.NewRenderer(nil)
	appPrefs := prefs.Load()

	fyneApp := fyneapp.NewWithID("chart-board")
	fyneApp.Settings().SetTheme(&app.ChartBoardTheme{})

	win := mainwindow.New(fyneApp, appState, session, renderer, cfg, appPrefs)
	win.RestoreLastBoard()
	win.ShowAndRun()
}
