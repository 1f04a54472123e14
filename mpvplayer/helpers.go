// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"math"
	"os"
	"strconv"

	"github.com/supersonic-app/go-mpv"
)

var errNilValue = errors.New("nil value")

func getPropertyFloat(instance *mpv.Mpv, name string) (float64, error) {
	value, err := instance.GetProperty(name, mpv.FORMAT_DOUBLE)
	if err != nil {
		return 0, err
	} else if value == nil {
		return 0, errNilValue
	}
	return value.(float64), nil
}

func getPropertyBool(instance *mpv.Mpv, name string) (bool, error) {
	value, err := instance.GetProperty(name, mpv.FORMAT_FLAG)
	if err != nil {
		return false, err
	} else if value == nil {
		return false, errNilValue
	}
	return value.(bool), nil
}

// toMpvVolume maps a 0..1 level to mpv's 0..100 volume property.
func toMpvVolume(level float64) float64 {
	if math.IsNaN(level) || level < 0 {
		return 0
	}
	if level > 1 {
		return 100
	}
	return level * 100
}

func fromMpvVolume(volume float64) float64 {
	return toMpvVolume(volume/100) / 100
}

func formatSeconds(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}

// knownDuration treats the unset, zero and non-finite durations mpv reports
// for streams and unloaded files alike.
func knownDuration(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return 0
	}
	return d
}

// screenshot makes instance write its current video frame to path and
// decodes it.
func screenshot(instance *mpv.Mpv, path string) (image.Image, error) {
	if err := instance.Command([]string{"screenshot-to-file", path, "video"}); err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("screenshot decode: %w", err)
	}
	return img, nil
}
