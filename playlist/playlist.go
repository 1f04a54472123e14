// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package playlist

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIndex = errors.New("invalid playlist index")
	ErrDuplicateId  = errors.New("duplicate video id")
	ErrEmptyId      = errors.New("empty video id")
)

// VideoEntry is one playable item. Entries are compared by Id only.
type VideoEntry struct {
	Id       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Src      string `json:"src"`
}

func (v *VideoEntry) GetTitle() string {
	if v == nil {
		return ""
	}
	if v.Title == "" {
		return "Untitled"
	}
	return v.Title
}

func (v *VideoEntry) IsValid() bool {
	return v != nil && v.Id != ""
}

// Playlist is the ordered play order. It has a single owner and is not safe
// for concurrent use.
type Playlist struct {
	entries []VideoEntry
}

func New() *Playlist {
	return &Playlist{entries: make([]VideoEntry, 0)}
}

// FromEntries builds a playlist, rejecting empty and duplicate ids.
func FromEntries(entries []VideoEntry) (*Playlist, error) {
	p := New()
	for _, e := range entries {
		if err := p.Append(e); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Playlist) Append(entry VideoEntry) error {
	if entry.Id == "" {
		return ErrEmptyId
	}
	if p.IndexOf(entry.Id) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateId, entry.Id)
	}
	p.entries = append(p.entries, entry)
	return nil
}

func (p *Playlist) RemoveAt(index int) (VideoEntry, error) {
	if index < 0 || index >= len(p.entries) {
		return VideoEntry{}, ErrInvalidIndex
	}
	removed := p.entries[index]
	p.entries = append(p.entries[:index], p.entries[index+1:]...)
	return removed, nil
}

// MoveUp swaps the entry at index with its predecessor. It is a no-op for
// the first entry or an invalid index and reports whether anything moved.
func (p *Playlist) MoveUp(index int) bool {
	if index <= 0 || index >= len(p.entries) {
		return false
	}
	p.entries[index-1], p.entries[index] = p.entries[index], p.entries[index-1]
	return true
}

// MoveDown swaps the entry at index with its successor. It is a no-op for
// the last entry or an invalid index and reports whether anything moved.
func (p *Playlist) MoveDown(index int) bool {
	if index < 0 || index >= len(p.entries)-1 {
		return false
	}
	p.entries[index+1], p.entries[index] = p.entries[index], p.entries[index+1]
	return true
}

// IndexOf returns the position of id, or -1.
func (p *Playlist) IndexOf(id string) int {
	for i := range p.entries {
		if p.entries[i].Id == id {
			return i
		}
	}
	return -1
}

func (p *Playlist) Get(index int) (VideoEntry, error) {
	if index < 0 || index >= len(p.entries) {
		return VideoEntry{}, ErrInvalidIndex
	}
	return p.entries[index], nil
}

func (p *Playlist) Find(id string) (VideoEntry, bool) {
	if i := p.IndexOf(id); i >= 0 {
		return p.entries[i], true
	}
	return VideoEntry{}, false
}

func (p *Playlist) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the play order.
func (p *Playlist) Entries() []VideoEntry {
	cpy := make([]VideoEntry, len(p.entries))
	copy(cpy, p.entries)
	return cpy
}
