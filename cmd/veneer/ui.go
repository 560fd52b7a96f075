package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/go-veneer/veneer/pkg/runtime"
	"github.com/go-veneer/veneer/pkg/widget"
)

// uiLoop owns the terminal screen and feeds events into the runtime
// until the user quits with Escape or Ctrl-C. One terminal cell maps to
// one unit of skin coordinates.
func uiLoop(rt *runtime.Runtime, title string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	var prevButtons tcell.ButtonMask
	for {
		render(screen, rt, title)

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return nil
			}
			if wev, ok := translateKey(ev); ok {
				rt.KeyPressed(wev)
			}
		case *tcell.EventMouse:
			x, y := ev.Position()
			rt.PointerMoved(float64(x), float64(y))

			buttons := ev.Buttons()
			down := buttons&tcell.Button1 != 0
			wasDown := prevButtons&tcell.Button1 != 0
			if down && !wasDown {
				rt.PointerPressed()
			}
			if !down && wasDown {
				rt.PointerReleased()
			}
			prevButtons = buttons
		}
	}
}

// translateKey maps a tcell key event onto the runtime's closed key
// vocabulary. Anything outside it is dropped, key-up never arrives
// from tcell, and multi-rune composed input has no tcell representation
// so it never reaches the runtime either.
func translateKey(ev *tcell.EventKey) (widget.Event, bool) {
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return widget.KeyDown(widget.KeyBackspace), true
	case tcell.KeyDelete:
		return widget.KeyDown(widget.KeyDelete), true
	case tcell.KeyLeft:
		return widget.KeyDown(widget.KeyLeft), true
	case tcell.KeyRight:
		return widget.KeyDown(widget.KeyRight), true
	case tcell.KeyHome:
		return widget.KeyDown(widget.KeyHome), true
	case tcell.KeyEnd:
		return widget.KeyDown(widget.KeyEnd), true
	case tcell.KeyEnter:
		return widget.KeyDown(widget.KeyEnter), true
	case tcell.KeyRune:
		return widget.CharInput(ev.Rune()), true
	}
	return widget.Event{}, false
}

// render paints the tree as plain cells: boxes are not drawn, only each
// widget's text at its bounds origin. The runtime never calls in here;
// the painter reads the tree read-only once per frame.
func render(screen tcell.Screen, rt *runtime.Runtime, title string) {
	screen.Clear()
	drawString(screen, 0, 0, title, tcell.StyleDefault.Bold(true))

	focused, hasFocus := rt.Tree.Focused()
	hovered, hasHover := rt.Tree.Hovered()

	for _, id := range rt.Tree.IDs() {
		n := rt.Tree.Get(id)
		if n == nil {
			continue
		}
		x := int(n.Bounds().Left)
		y := int(n.Bounds().Top)

		style := tcell.StyleDefault
		if hasHover && hovered == id {
			style = style.Underline(true)
		}

		switch w := n.Widget().(type) {
		case *widget.TextInput:
			text := w.Text()
			if hasFocus && focused == id {
				style = style.Reverse(true)
				runes := []rune(text)
				text = string(runes[:w.Cursor()]) + "|" + string(runes[w.Cursor():])
			}
			drawString(screen, x, y, "["+text+"]", style)
		case *widget.StaticText:
			drawString(screen, x, y, w.Content(), style)
		case *widget.Button:
			if w.Down() {
				style = style.Reverse(true)
			}
			drawString(screen, x, y, "<"+w.Label()+">", style)
		}
	}
	screen.Show()
}

func drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
