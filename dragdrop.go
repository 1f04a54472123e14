// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"mime"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spezifisch/canvasplay/playlist"
	"github.com/spf13/afero"
)

const droppedSubtitle = "Drag & Drop"

var errNotVideo = errors.New("not a video file")

// Go's builtin mime table has no video types; systems without a mime.types
// file would otherwise reject everything.
var fallbackVideoTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".ogv":  "video/ogg",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
}

func init() {
	for ext, typ := range fallbackVideoTypes {
		if mime.TypeByExtension(ext) == "" {
			_ = mime.AddExtensionType(ext, typ)
		}
	}
}

// droppedPaths splits pasted text into file paths. Terminals paste dropped
// files as paths, optionally quoted, shell-escaped or as file:// URIs, one
// per line or separated by spaces when quoted.
func droppedPaths(text string) (paths []string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		paths = append(paths, splitDroppedLine(line)...)
	}
	return
}

func splitDroppedLine(line string) (paths []string) {
	var (
		cur     strings.Builder
		quote   rune
		escaped bool
	)
	flush := func() {
		if cur.Len() > 0 {
			paths = append(paths, normalizeDroppedPath(cur.String()))
			cur.Reset()
		}
	}
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ' ' || r == '\t':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return
}

func normalizeDroppedPath(p string) string {
	if strings.HasPrefix(p, "file://") {
		if u, err := url.Parse(p); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return p
}

// entryForDroppedFile turns a dropped file into a playlist entry. The file
// must exist and look like a video by its extension.
func entryForDroppedFile(fs afero.Fs, path string, now time.Time) (playlist.VideoEntry, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return playlist.VideoEntry{}, fmt.Errorf("[Drop] %w", err)
	}
	if info.IsDir() {
		return playlist.VideoEntry{}, fmt.Errorf("[Drop] %s: %w", path, errNotVideo)
	}

	typ := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if !strings.HasPrefix(typ, "video/") {
		return playlist.VideoEntry{}, fmt.Errorf("[Drop] %s: %w", path, errNotVideo)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return playlist.VideoEntry{
		Id:       droppedId(now),
		Title:    filepath.Base(path),
		Subtitle: droppedSubtitle,
		Src:      abs,
	}, nil
}

// dropFiles appends every video in the dropped text to list. All files of
// one drop share the clock reading now; ids are bumped until they are free.
func dropFiles(fs afero.Fs, list *playlist.Playlist, text string, now time.Time) (added []playlist.VideoEntry, rejected int, lastErr error) {
	stamp := now
	for _, path := range droppedPaths(text) {
		entry, err := entryForDroppedFile(fs, path, stamp)
		if err == nil {
			for list.IndexOf(entry.Id) >= 0 {
				stamp = stamp.Add(time.Nanosecond)
				entry.Id = droppedId(stamp)
			}
			err = list.Append(entry)
		}
		if err != nil {
			rejected++
			lastErr = err
			continue
		}
		added = append(added, entry)
		stamp = stamp.Add(time.Nanosecond)
	}
	return
}

func droppedId(t time.Time) string {
	return "file-" + strconv.FormatInt(t.UnixNano(), 10)
}
