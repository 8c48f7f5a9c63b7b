// Package panels provides the tool column and style panel flanking the
// board canvas.
package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"chart-board/internal/app"
	"chart-board/internal/editor"
)

// toolButton is a button that distinguishes a double tap, used to lock a
// tool active across commits.
type toolButton struct {
	widget.Button
	onDouble func()
}

func newToolButton(label string, onTap, onDouble func()) *toolButton {
	b := &toolButton{onDouble: onDouble}
	b.Text = label
	b.OnTapped = onTap
	b.ExtendBaseWidget(b)
	return b
}

func (b *toolButton) DoubleTapped(*fyne.PointEvent) {
	if b.onDouble != nil {
		b.onDouble()
	}
}

// ToolPanel is the vertical tool column. A single click activates a tool
// for one use; a double click locks it.
type ToolPanel struct {
	session   *editor.Session
	container fyne.CanvasObject
	buttons   map[editor.Tool]*toolButton
}

// toolEntries fixes the column order and the button captions.
var toolEntries = []struct {
	tool  editor.Tool
	label string
}{
	{editor.ToolSelect, "Select"},
	{editor.ToolHand, "Hand"},
	{editor.ToolRectangle, "Rect"},
	{editor.ToolDiamond, "Diamond"},
	{editor.ToolEllipse, "Ellipse"},
	{editor.ToolArrow, "Arrow"},
	{editor.ToolLine, "Line"},
	{editor.ToolPencil, "Pencil"},
	{editor.ToolPath, "Path"},
	{editor.ToolText, "Text"},
	{editor.ToolImage, "Image"},
	{editor.ToolEraser, "Eraser"},
	{editor.ToolLaser, "Laser"},
	{editor.ToolLongPosition, "Long"},
	{editor.ToolShortPosition, "Short"},
}

// NewToolPanel creates the tool column bound to a session.
func NewToolPanel(session *editor.Session) *ToolPanel {
	tp := &ToolPanel{
		session: session,
		buttons: make(map[editor.Tool]*toolButton),
	}

	items := make([]fyne.CanvasObject, 0, len(toolEntries))
	for _, entry := range toolEntries {
		tool := entry.tool
		btn := newToolButton(entry.label,
			func() { session.SetTool(tool) },
			func() { session.LockTool(tool) },
		)
		tp.buttons[tool] = btn
		items = append(items, btn)
	}
	tp.container = container.NewVBox(items...)

	session.State().On(app.EventToolChanged, func(interface{}) {
		tp.highlightActive()
	})
	tp.highlightActive()

	return tp
}

// Container returns the panel's root object.
func (tp *ToolPanel) Container() fyne.CanvasObject {
	return tp.container
}

// highlightActive marks the active tool button.
func (tp *ToolPanel) highlightActive() {
	active := tp.session.Tool()
	for tool, btn := range tp.buttons {
		imp := widget.MediumImportance
		if tool == active {
			imp = widget.HighImportance
		}
		if btn.Importance != imp {
			btn.Importance = imp
			btn.Refresh()
		}
	}
}
