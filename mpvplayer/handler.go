// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

import (
	"github.com/supersonic-app/go-mpv"
)

var observed = []struct {
	name   string
	format mpv.Format
}{
	{"time-pos", mpv.FORMAT_DOUBLE},
	{"duration", mpv.FORMAT_DOUBLE},
	{"volume", mpv.FORMAT_DOUBLE},
	{"mute", mpv.FORMAT_FLAG},
	{"pause", mpv.FORMAT_FLAG},
	{"eof-reached", mpv.FORMAT_FLAG},
}

func (p *Player) EventLoop() {
	for i, prop := range observed {
		if err := p.instance.ObserveProperty(uint64(i), prop.name, prop.format); err != nil {
			p.logger.PrintError("Observe "+prop.name, err)
		}
	}

	for evt := range p.mpvEvents {
		if evt == nil {
			// quit signal
			break
		}

		switch evt.Event_Id {
		case mpv.EVENT_START_FILE:
			p.mu.Lock()
			p.tracker.startFile()
			p.mu.Unlock()

		case mpv.EVENT_PLAYBACK_RESTART:
			st := p.readStatus()
			p.mu.Lock()
			signals := p.tracker.restart(st)
			p.mu.Unlock()
			p.sendSignals(signals)

		case mpv.EVENT_PROPERTY_CHANGE:
			// which property changed is in evt.Data; a fresh snapshot of all of them is simpler
			st := p.readStatus()
			p.mu.Lock()
			p.status = st
			signals := p.tracker.changed(st)
			p.mu.Unlock()
			p.sendSignals(signals)
			p.sendGuiDataEvent(EventStatus, st)

		case mpv.EVENT_END_FILE:
			// with keep-open a natural end shows up as eof-reached instead
			p.logger.Print("mpv.EventLoop: file closed")

		case mpv.EVENT_IDLE, mpv.EVENT_NONE:
			continue

		default:
			p.logger.Printf("mpv.EventLoop: unhandled event id %v", evt.Event_Id)
		}
	}
}

func (p *Player) readStatus() StatusData {
	var st StatusData
	var err error

	if st.Position, err = getPropertyFloat(p.instance, "time-pos"); err != nil {
		st.Position = 0
	}
	if st.Duration, err = getPropertyFloat(p.instance, "duration"); err != nil {
		st.Duration = 0
	}
	st.Duration = knownDuration(st.Duration)

	volume, err := getPropertyFloat(p.instance, "volume")
	if err != nil {
		volume = 100
	}
	st.Volume = fromMpvVolume(volume)

	st.Muted, _ = getPropertyBool(p.instance, "mute")
	if st.Paused, err = getPropertyBool(p.instance, "pause"); err != nil {
		st.Paused = true
	}
	st.Ended, _ = getPropertyBool(p.instance, "eof-reached")
	return st
}

func (p *Player) sendSignals(signals []UiEventType) {
	for _, typ := range signals {
		p.sendGuiEvent(typ)
	}
}

func (p *Player) sendGuiEvent(typ UiEventType) {
	p.sendGuiDataEvent(typ, nil)
}

func (p *Player) sendGuiDataEvent(typ UiEventType, data interface{}) {
	if p.eventConsumer != nil {
		p.eventConsumer.SendEvent(UiEvent{
			Type: typ,
			Data: data,
		})
	}
}
