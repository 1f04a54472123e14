// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

func secondsToMinAndSec(seconds int64) (int, int) {
	minutes := seconds / 60
	remainingSeconds := seconds % 60
	return int(minutes), int(remainingSeconds)
}

// clampIndex keeps a table selection inside [0, n).
func clampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
