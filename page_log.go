// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"time"

	"github.com/rivo/tview"
)

// the log list never holds more lines than this
const logPageLines = 200

type LogPage struct {
	Root *tview.Flex

	logList *tview.List

	// external refs
	ui *Ui
}

func (ui *Ui) createLogPage() *LogPage {
	logPage := LogPage{
		ui: ui,
	}

	logPage.logList = tview.NewList().ShowSecondaryText(false)
	logPage.logList.Box.
		SetTitle(" log ").
		SetTitleAlign(tview.AlignLeft).
		SetBorder(true)
	logPage.Root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(logPage.logList, 0, 1, true)

	return &logPage
}

func (l *LogPage) Clear() {
	l.logList.Clear()
}

// Print is safe to call from any goroutine; the newest line goes on top.
func (l *LogPage) Print(line string) {
	stamped := time.Now().Local().Format("(15:04:05) ") + line
	l.ui.app.QueueUpdateDraw(func() {
		l.logList.InsertItem(0, stamped, "", 0, nil)

		// Make sure the log list doesn't grow infinitely
		for l.logList.GetItemCount() > logPageLines {
			l.logList.RemoveItem(-1)
		}
	})
}
