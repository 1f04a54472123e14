package main

// helpCommands lists what the help shows, in order, with a short label.
var helpCommands = []struct {
	cmd, label string
}{
	{cmdTogglePlay, "play/pause"},
	{cmdToggleMute, "mute/unmute"},
	{cmdNext, "next video"},
	{cmdPrev, "previous video"},
	{cmdToggleAutoplay, "toggle autoplay"},
	{cmdCycleEffect, "cycle effect"},
	{cmdVolumeDown, "volume down"},
	{cmdVolumeUp, "volume up"},
	{cmdSeekBack, "seek -10s"},
	{cmdSeekForward, "seek +10s"},
	{cmdRefreshPlaylist, "refresh playlist"},
	{cmdShowPlayer, "player page"},
	{cmdShowPlaylist, "playlist page"},
	{cmdShowLog, "log page"},
	{cmdHelp, "this help"},
	{cmdQuit, "quit"},

	{cmdPlaySelected, "play selected video"},
	{cmdRemoveSelected, "remove from playlist"},
	{cmdMoveUp, "move video up"},
	{cmdMoveDown, "move video down"},

	{cmdClearLog, "clear the log"},
}

const helpMousePlayer = `[::b]Mouse[::-]
click |< >| for previous/next, >/|| to play or pause,
the long bar to seek, the short bar for volume,
the speaker to mute. Hover the seek bar for a preview.
Drop a video file on the terminal to add and play it.`
