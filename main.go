// Package main provides the entry point for the sfh annotation surface.
package main

import (
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"github.com/MicroSwitchers/sfh/internal/app"
	"github.com/MicroSwitchers/sfh/internal/version"
	"github.com/MicroSwitchers/sfh/ui/mainwindow"
	"github.com/MicroSwitchers/sfh/ui/prefs"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting sfh v%s", version.Version)

	fyneApp := fyneapp.NewWithID("com.microswitchers.sfh")
	fyneApp.Settings().SetTheme(&app.SurfaceTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Command line arguments: optional workspace image, optional reference.
	if len(os.Args) > 1 {
		if err := appState.LoadImage(app.PaneLeft, os.Args[1]); err != nil {
			log.Printf("Failed to load image %s: %v", os.Args[1], err)
		}
	}
	if len(os.Args) > 2 {
		if err := appState.LoadImage(app.PaneRight, os.Args[2]); err != nil {
			log.Printf("Failed to load reference %s: %v", os.Args[2], err)
		} else {
			appState.SetCompare(true)
		}
	}

	win.ShowAndRun()
}
