// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"
	"github.com/spezifisch/canvasplay/logger"
	"github.com/spezifisch/canvasplay/playback"
	"github.com/spezifisch/canvasplay/playlist"
)

const (
	objectPath   = "/org/mpris/MediaPlayer2"
	ifaceRoot    = "org.mpris.MediaPlayer2"
	ifacePlayer  = "org.mpris.MediaPlayer2.Player"
	busName      = "org.mpris.MediaPlayer2.canvasplay"
	microsPerSec = 1e6
)

// MprisPlayer exposes the player on the session bus and follows the
// playback controller as an observer.
type MprisPlayer struct {
	dbus    *dbus.Conn
	props   *prop.Properties
	methods *mprisMethods
	logger  logger.LoggerInterface

	// duration of the current entry in seconds, 0 while unknown
	duration func() float64
}

// mprisMethods holds exactly the methods exported on the Player interface.
type mprisMethods struct {
	player ControlledPlayer
	logger logger.LoggerInterface
}

func RegisterMprisPlayer(player ControlledPlayer, duration func() float64, logger_ logger.LoggerInterface) (mpp *MprisPlayer, err error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return
	}

	mpp = &MprisPlayer{
		dbus:     conn,
		methods:  &mprisMethods{player: player, logger: logger_},
		logger:   logger_,
		duration: duration,
	}

	err = conn.Export(mpp.methods, objectPath, ifacePlayer)
	if err != nil {
		return
	}

	var mprisPlayer = map[string]*prop.Prop{
		"CanControl":     {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanGoNext":      {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanGoPrevious":  {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanPause":       {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanPlay":        {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanSeek":        {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Metadata":       {Value: metadataFor(playlist.VideoEntry{}, 0), Writable: false, Emit: prop.EmitTrue, Callback: nil},
		"Volume":         {Value: float64(1.0), Writable: true, Emit: prop.EmitTrue, Callback: mpp.methods.volumeChange},
		"PlaybackStatus": {Value: playbackStatus(playback.NoVideo), Writable: false, Emit: prop.EmitTrue, Callback: nil},
		"Position":       {Value: int64(0), Writable: false, Emit: prop.EmitFalse, Callback: nil},
	}

	var mediaPlayer = map[string]*prop.Prop{
		"CanQuit":             {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanRaise":            {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"HasTrackList":        {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Identity":            {Value: "canvasplay", Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"SupportedUriSchemes": {Value: []string{"file", "http", "https"}, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"SupportedMimeTypes":  {Value: []string{"video/mp4", "video/webm", "video/x-matroska"}, Writable: false, Emit: prop.EmitFalse, Callback: nil},
	}

	mpp.props, err = prop.Export(
		conn,
		objectPath,
		map[string]map[string]*prop.Prop{
			ifaceRoot:   mediaPlayer,
			ifacePlayer: mprisPlayer,
		},
	)
	if err != nil {
		return
	}

	n := &introspect.Node{
		Name: objectPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{
				Name:       ifacePlayer,
				Methods:    introspect.Methods(mpp.methods),
				Properties: mpp.props.Introspection(ifacePlayer), // we implement the standard interface
			},
		},
	}
	err = conn.Export(introspect.NewIntrospectable(n), objectPath, "org.freedesktop.DBus.Introspectable")
	if err != nil {
		return
	}

	reply, err := conn.RequestName(busName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		err = errors.New("name already owned")
		return
	}
	return
}

func (m *MprisPlayer) Close() {
	if err := m.dbus.Close(); err != nil {
		m.logger.PrintError("mpp Close", err)
	}
}

// OnVideoChanged publishes the new entry's metadata.
func (m *MprisPlayer) OnVideoChanged(entry playlist.VideoEntry) {
	var duration float64
	if m.duration != nil {
		duration = m.duration()
	}
	m.props.SetMust(ifacePlayer, "Metadata", metadataFor(entry, duration))
}

func (m *MprisPlayer) OnStateChanged(state playback.State) {
	m.props.SetMust(ifacePlayer, "PlaybackStatus", playbackStatus(state.Phase))
	m.props.SetMust(ifacePlayer, "Volume", state.Volume)
	m.props.SetMust(ifacePlayer, "Position", toMicros(m.methods.player.Position()))
}

// Mandatory functions
func (m *mprisMethods) Stop() *dbus.Error {
	m.player.Stop()
	return nil
}

func (m *mprisMethods) Next() *dbus.Error {
	m.player.Next()
	return nil
}

func (m *mprisMethods) Previous() *dbus.Error {
	m.player.Previous()
	return nil
}

// set paused
func (m *mprisMethods) Pause() *dbus.Error {
	m.player.Pause()
	return nil
}

// set playing
func (m *mprisMethods) Play() *dbus.Error {
	m.player.Play()
	return nil
}

func (m *mprisMethods) PlayPause() *dbus.Error {
	m.player.PlayPause()
	return nil
}

func (m *mprisMethods) OpenUri(uri string) *dbus.Error {
	return dbus.MakeFailedError(fmt.Errorf("OpenUri not supported: %s", uri))
}

// Seek takes a relative offset in microseconds.
func (m *mprisMethods) Seek(offset int64) *dbus.Error {
	m.player.SeekBy(float64(offset) / microsPerSec)
	return nil
}

// SetPosition takes an absolute position in microseconds.
func (m *mprisMethods) SetPosition(trackId dbus.ObjectPath, position int64) *dbus.Error {
	if position < 0 {
		return nil
	}
	m.player.SetPosition(float64(position) / microsPerSec)
	return nil
}

func (m *mprisMethods) volumeChange(c *prop.Change) *dbus.Error {
	fVol, ok := c.Value.(float64)
	if !ok {
		return dbus.MakeFailedError(errors.New("volume must be a double"))
	}
	m.player.SetVolume(fVol)
	m.logger.Printf("mpris: adjust volume %f", fVol)
	return nil
}
