package main

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// HelpWidget lists the key bindings in effect for a page, so a keybinding
// file shows up here too.
type HelpWidget struct {
	Root *tview.Flex

	bindings *tview.Table
	mouse    *tview.TextView

	// visible reflects whether the modal is shown
	visible bool

	ui *Ui
}

func (ui *Ui) createHelpWidget() (h *HelpWidget) {
	h = &HelpWidget{ui: ui}

	h.bindings = tview.NewTable().
		SetBorders(false).
		SetSelectable(false, false)
	h.mouse = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true)

	h.Root = tview.NewFlex().SetDirection(tview.FlexRow)
	h.Root.Box.SetBorder(true).SetTitle(" Keys (ESC to close) ")
	return
}

func (h *HelpWidget) RenderHelp(page string) {
	context := pageContexts[page]

	h.bindings.Clear()
	row := 0
	for _, entry := range helpCommands {
		keys := h.ui.keys.KeysFor(context, entry.cmd)
		if len(keys) == 0 {
			continue
		}
		h.bindings.SetCell(row, 0, tview.NewTableCell(tview.Escape(strings.Join(keys, " "))).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignRight))
		h.bindings.SetCell(row, 1, tview.NewTableCell("  "+entry.label).
			SetExpansion(1))
		row++
	}

	h.Root.Clear()
	h.Root.AddItem(h.bindings, 0, 1, true)
	if page == PagePlayer {
		h.mouse.SetText(helpMousePlayer)
		h.Root.AddItem(h.mouse, 6, 0, false)
	}
}
