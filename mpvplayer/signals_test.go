package mpvplayer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadThenPlay(t *testing.T) {
	var tr signalTracker
	tr.startFile()

	// property churn while loading is not a signal
	assert.Empty(t, tr.changed(StatusData{Paused: false}))
	assert.Equal(t, []UiEventType{EventPlaying}, tr.restart(StatusData{Paused: false, Duration: 60}))
}

func TestLoadWhilePaused(t *testing.T) {
	var tr signalTracker
	tr.startFile()
	assert.Empty(t, tr.restart(StatusData{Paused: true}))

	assert.Equal(t, []UiEventType{EventPlaying}, tr.changed(StatusData{Paused: false}))
}

func TestSeekCompletes(t *testing.T) {
	var tr signalTracker
	tr.startFile()
	tr.restart(StatusData{})

	// restarts without a request are ignored
	assert.Empty(t, tr.restart(StatusData{Position: 3}))

	tr.seekRequested()
	assert.Equal(t, []UiEventType{EventSeeked}, tr.restart(StatusData{Position: 30}))
	assert.Empty(t, tr.restart(StatusData{Position: 30}))
}

func TestNaturalEnd(t *testing.T) {
	var tr signalTracker
	tr.startFile()
	tr.restart(StatusData{})

	assert.Equal(t, []UiEventType{EventEnded}, tr.changed(StatusData{Ended: true, Paused: true}))
	// mpv reports the same state again
	assert.Empty(t, tr.changed(StatusData{Ended: true, Paused: true, Position: 60}))

	// play again from the top
	assert.Equal(t, []UiEventType{EventPlaying}, tr.changed(StatusData{}))
}

func TestReplayAfterEndUnpausesFirst(t *testing.T) {
	var tr signalTracker
	tr.startFile()
	tr.restart(StatusData{})
	tr.changed(StatusData{Ended: true, Paused: true})

	// pause clears while eof-reached is still set
	assert.Empty(t, tr.changed(StatusData{Ended: true}))
	assert.Equal(t, []UiEventType{EventPlaying}, tr.changed(StatusData{}))
	assert.Empty(t, tr.changed(StatusData{Position: 1}))
}

func TestLeaveEndWhilePaused(t *testing.T) {
	var tr signalTracker
	tr.startFile()
	tr.restart(StatusData{})
	tr.changed(StatusData{Ended: true, Paused: true})

	// seeking back while paused is not playback
	assert.Empty(t, tr.changed(StatusData{Paused: true, Position: 10}))
}

func TestPauseAndResume(t *testing.T) {
	var tr signalTracker
	tr.startFile()
	tr.restart(StatusData{})

	assert.Equal(t, []UiEventType{EventPaused}, tr.changed(StatusData{Paused: true}))
	assert.Empty(t, tr.changed(StatusData{Paused: true, Position: 1}))
	assert.Equal(t, []UiEventType{EventPlaying}, tr.changed(StatusData{}))
}

func TestNewFileClearsEnded(t *testing.T) {
	var tr signalTracker
	tr.startFile()
	tr.restart(StatusData{})
	tr.changed(StatusData{Ended: true, Paused: true})

	tr.startFile()
	tr.restart(StatusData{})
	assert.Equal(t, []UiEventType{EventEnded}, tr.changed(StatusData{Ended: true, Paused: true}))
}

func TestVolumeMapping(t *testing.T) {
	assert.Equal(t, 0.0, toMpvVolume(-1))
	assert.Equal(t, 0.0, toMpvVolume(math.NaN()))
	assert.Equal(t, 50.0, toMpvVolume(0.5))
	assert.Equal(t, 100.0, toMpvVolume(3))

	assert.Equal(t, 0.25, fromMpvVolume(25))
	assert.Equal(t, 1.0, fromMpvVolume(130))
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "12.500", formatSeconds(12.5))
	assert.Equal(t, "0.000", formatSeconds(-3))
	assert.Equal(t, "0.000", formatSeconds(math.NaN()))
}

func TestKnownDuration(t *testing.T) {
	assert.Equal(t, 0.0, knownDuration(math.Inf(1)))
	assert.Equal(t, 0.0, knownDuration(-1))
	assert.Equal(t, 42.0, knownDuration(42))
}

func TestUiEventTypeString(t *testing.T) {
	assert.Equal(t, "seeked", EventSeeked.String())
	assert.Equal(t, "unknown", UiEventType(99).String())
}
