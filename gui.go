// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spezifisch/canvasplay/canvas"
	"github.com/spezifisch/canvasplay/catalog"
	"github.com/spezifisch/canvasplay/controls"
	"github.com/spezifisch/canvasplay/effects"
	"github.com/spezifisch/canvasplay/logger"
	"github.com/spezifisch/canvasplay/mpvplayer"
	"github.com/spezifisch/canvasplay/playback"
	"github.com/spezifisch/canvasplay/playlist"
	"github.com/spezifisch/canvasplay/prefs"
	"github.com/spezifisch/canvasplay/remote"
	"github.com/spezifisch/canvasplay/renderloop"
	tviewcommand "github.com/spezifisch/tview-command"
	"github.com/spf13/afero"
)

// struct contains all the updatable elements of the Ui
type Ui struct {
	app   *tview.Application
	pages *tview.Pages

	// top bar
	startStopStatus *tview.TextView
	playerStatus    *tview.TextView

	// bottom bar
	menuWidget *MenuWidget

	playerPage   *PlayerPage
	playlistPage *PlaylistPage
	logPage      *LogPage

	// modals
	messageBox *tview.Modal
	helpModal  tview.Primitive
	helpWidget *HelpWidget

	keys *keymap

	eventLoop   *eventLoop
	mpvEvents   chan mpvplayer.UiEvent
	mprisPlayer *remote.MprisPlayer

	// playback core, only touched on the tview goroutine
	scheduler  *uiScheduler
	loop       *renderloop.Loop
	controller *playback.Controller
	thumbnails *thumbnailCache
	status     mpvplayer.StatusData

	player     *mpvplayer.Player
	preview    *mpvplayer.PreviewGrabber
	catalog    *catalog.Source
	prefsStore *prefs.Store
	restored   prefs.Prefs
	fs         afero.Fs
	logger     *logger.Logger

	catalogLocation string
	startupNotice   string
	notice          string
}

const (
	// page identifiers (use these instead of hardcoding page names for showing/hiding)
	PagePlayer   = "player"
	PagePlaylist = "playlist"
	PageLog      = "log"

	PageMessageBox = "messageBox"
	PageHelpBox    = "helpBox"
)

// noticeTimeout is how long a notice stays up without a key press.
const noticeTimeout = 5 * time.Second

type guiConfig struct {
	CanvasWidth  int
	CanvasHeight int
	Fps          int
	Effect       effects.Kind
	Icons        controls.Icons

	CatalogLocation string
	Entries         []playlist.VideoEntry
	// StartupNotice is shown once the ui runs, e.g. a failed catalog fetch
	StartupNotice string
	// Keybindings overrides the built-in key table; may be nil
	Keybindings *tviewcommand.Config
}

func InitGui(config guiConfig,
	player *mpvplayer.Player,
	preview *mpvplayer.PreviewGrabber,
	source *catalog.Source,
	prefsStore *prefs.Store,
	logger *logger.Logger) (ui *Ui) {
	restored, err := prefsStore.Load()
	if err != nil {
		logger.PrintError("InitGui: restore preferences", err)
	}

	ui = &Ui{
		eventLoop: nil, // initialized by initEventLoops()
		mpvEvents: make(chan mpvplayer.UiEvent, 5),

		player:     player,
		preview:    preview,
		catalog:    source,
		prefsStore: prefsStore,
		restored:   restored,
		fs:         afero.NewOsFs(),
		logger:     logger,

		catalogLocation: config.CatalogLocation,
		startupNotice:   config.StartupNotice,
		keys:            newKeymap(config.Keybindings),
	}

	ui.initEventLoops()

	ui.app = tview.NewApplication()
	ui.pages = tview.NewPages()
	ui.scheduler = newUiScheduler(func(fn func()) { ui.app.QueueUpdateDraw(fn) }, config.Fps)

	// status text at the top
	statusLeft := fmt.Sprintf("[::b]%s[::-] %s", Name, Version)
	ui.startStopStatus = tview.NewTextView().SetText(statusLeft).
		SetTextAlign(tview.AlignLeft).
		SetDynamicColors(true).
		SetScrollable(false)
	ui.startStopStatus.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		return action, nil
	})

	statusRight := formatPlayerStatus(restored.Autoplay, restored.Volume, 0, 0)
	ui.playerStatus = tview.NewTextView().SetText(statusRight).
		SetTextAlign(tview.AlignRight).
		SetDynamicColors(true).
		SetScrollable(false)

	ui.menuWidget = ui.createMenuWidget()
	ui.helpWidget = ui.createHelpWidget()

	// message box for small notes
	ui.messageBox = tview.NewModal().
		SetText("hi there").
		SetBackgroundColor(tcell.ColorBlack)
	ui.messageBox.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		ui.closeMessageBox()
		return nil
	})

	// help box modal
	ui.helpModal = makeModal(ui.helpWidget.Root, 80, 30)
	ui.helpWidget.Root.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Belts and suspenders. After the dialog is shown, this function will
		// _always_ be called. Therefore, check to ensure it's actually visible
		// before triggering on events. Also, don't close on every key, but only
		// ESC, like the help text says.
		if ui.helpWidget.visible && (event.Key() == tcell.KeyEscape) {
			ui.CloseHelp()
		}
		return event
	})

	// top bar: status text
	topBarFlex := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(ui.startStopStatus, 0, 1, false).
		AddItem(ui.playerStatus, 32, 0, false)

	// player page
	ui.playerPage = ui.createPlayerPage()

	// playlist page
	ui.playlistPage = ui.createPlaylistPage()

	// log page
	ui.logPage = ui.createLogPage()

	ui.pages.AddPage(PagePlayer, ui.playerPage.Root, true, true).
		AddPage(PagePlaylist, ui.playlistPage.Root, true, false).
		AddPage(PageLog, ui.logPage.Root, true, false).
		AddPage(PageMessageBox, ui.messageBox, true, false).
		AddPage(PageHelpBox, ui.helpModal, true, false)

	rootFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(topBarFlex, 1, 0, false).
		AddItem(ui.pages, 0, 1, true).
		AddItem(ui.menuWidget.Root, 1, 0, false)

	// add main input handler
	rootFlex.SetInputCapture(ui.handlePageInput)

	ui.app.SetRoot(rootFlex, true).
		SetFocus(rootFlex).
		EnableMouse(true).
		EnablePaste(true)

	// playback core
	surface := canvas.NewSurface(config.CanvasWidth, config.CanvasHeight)
	layout := controls.NewLayout(config.CanvasWidth, config.CanvasHeight)

	var thumbs renderloop.Thumbnails
	if preview != nil {
		ui.thumbnails = newThumbnailCache(preview.Grab, player.Source, ui.thumbnailFetched, logger)
		thumbs = ui.thumbnails
	}

	ui.loop = renderloop.New(renderloop.Options{
		Surface:    surface,
		Layout:     layout,
		Pipeline:   effects.NewPipeline(rand.New(rand.NewSource(time.Now().UnixNano()))),
		Icons:      config.Icons,
		Frames:     ui.scheduler,
		Source:     player,
		State:      &playerState{state: func() playback.State { return ui.controller.State() }, clock: player},
		Thumbnails: thumbs,
		Present:    ui.playerPage.canvas.SetFrame,
		Effect:     config.Effect,
	})
	ui.playerPage.layout = layout
	ui.menuWidget.SetEffect(config.Effect.String())

	list, err := playlist.FromEntries(config.Entries)
	if err != nil {
		logger.PrintError("InitGui: playlist", err)
		list = playlist.New()
	}
	ui.controller = playback.NewController(
		playback.NewState(restored.Autoplay, restored.Volume),
		list,
		player,
		ui.loop,
		ui.scheduler,
		logger,
	)
	ui.controller.AddObserver(ui)

	ui.playlistPage.UpdatePlaylist()
	ui.loop.RedrawStatic()

	return ui
}

// AttachMpris lets the remote follow playback. Must be called before Run.
func (ui *Ui) AttachMpris(mprisPlayer *remote.MprisPlayer) {
	ui.mprisPlayer = mprisPlayer
	ui.controller.AddObserver(mprisPlayer)
}

// RemoteControl is the player as seen by remote controls.
func (ui *Ui) RemoteControl() remote.ControlledPlayer {
	return &remoteControl{ui: ui}
}

func (ui *Ui) Run() error {
	// receive events from mpv wrapper
	ui.player.RegisterEventConsumer(ui)

	// run gui/background event handler
	ui.runEventLoops()

	// run mpv event handler
	go ui.player.EventLoop()

	ui.app.QueueUpdateDraw(ui.restoreSession)

	// gui main loop (blocking)
	return ui.app.Run()
}

// restoreSession loads the video that was current at the last quit, or the
// first entry.
func (ui *Ui) restoreSession() {
	if ui.startupNotice != "" {
		ui.showNotice(ui.startupNotice)
	}

	list := ui.controller.Playlist()
	if list.Len() == 0 {
		return
	}
	entry, ok := list.Find(ui.restored.CurrentVideoId)
	if !ok {
		entry, _ = list.Get(0)
	}
	ui.controller.Dispatch(playback.LoadVideo{Entry: entry})
}

// thumbnailFetched runs on the cache goroutine.
func (ui *Ui) thumbnailFetched() {
	ui.app.QueueUpdateDraw(func() {
		if !ui.loop.Armed() && ui.loop.Hover().Active {
			ui.loop.RedrawStatic()
		}
	})
}

func (ui *Ui) OnVideoChanged(entry playlist.VideoEntry) {
	ui.playerPage.SetEntry(entry)
	ui.playlistPage.UpdatePlaylist()
}

func (ui *Ui) OnStateChanged(state playback.State) {
	entry, _ := ui.controller.Current()
	ui.startStopStatus.SetText(formatPhase(state.Phase) + formatVideoForStatusBar(entry))
	ui.playerStatus.SetText(formatPlayerStatus(state.Autoplay, state.Volume, ui.status.Position, ui.status.Duration))
}

func (ui *Ui) ShowHelp() {
	activePage := ui.menuWidget.GetActivePage()
	ui.helpWidget.RenderHelp(activePage)

	ui.pages.ShowPage(PageHelpBox)
	ui.pages.SendToFront(PageHelpBox)
	ui.app.SetFocus(ui.helpModal)
	ui.helpWidget.visible = true
}

func (ui *Ui) CloseHelp() {
	ui.helpWidget.visible = false
	ui.pages.HidePage(PageHelpBox)
	ui.focusFrontPage()
}

func (ui *Ui) showMessageBox(text string) {
	ui.pages.ShowPage(PageMessageBox)
	ui.pages.SendToFront(PageMessageBox)
	ui.messageBox.SetText(text)
	ui.notice = text
	ui.app.SetFocus(ui.messageBox)
}

// showNotice is a message box that goes away on its own.
func (ui *Ui) showNotice(text string) {
	ui.logger.Print("notice: " + text)
	ui.showMessageBox(text)
	ui.scheduler.AfterFunc(noticeTimeout, func() {
		// a newer message replaced this one
		if ui.notice == text {
			ui.closeMessageBox()
		}
	})
}

func (ui *Ui) closeMessageBox() {
	if name, _ := ui.pages.GetFrontPage(); name != PageMessageBox {
		return
	}
	ui.pages.HidePage(PageMessageBox)
	ui.notice = ""
	ui.focusFrontPage()
}

func (ui *Ui) focusFrontPage() {
	if _, prim := ui.pages.GetFrontPage(); prim != nil {
		ui.app.SetFocus(prim)
	}
}
