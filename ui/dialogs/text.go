// Package dialogs provides modal dialogs for the board window.
package dialogs

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// ShowTextEntry opens the text element editor. For a new element initial
// is empty; submitting an empty string on an existing element deletes it,
// which the callback handler decides. Cancel leaves state untouched.
func ShowTextEntry(win fyne.Window, initial string, onSubmit func(content string)) {
	entry := widget.NewMultiLineEntry()
	entry.SetText(initial)
	entry.Wrapping = fyne.TextWrapWord

	title := "Add Text"
	if initial != "" {
		title = "Edit Text"
	}

	d := dialog.NewCustomConfirm(title, "OK", "Cancel", entry, func(ok bool) {
		if !ok {
			return
		}
		onSubmit(entry.Text)
	}, win)
	d.Resize(fyne.NewSize(360, 200))
	d.Show()
	win.Canvas().Focus(entry)
}
