// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package catalog fetches the video list the player starts with, either
// from a local JSON file or from an HTTP(S) URL.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spezifisch/canvasplay/playlist"
	"github.com/spf13/afero"
)

var ErrMalformed = errors.New("malformed catalog")

// maximum accepted catalog size
const maxBodySize = 8 << 20

type document struct {
	Videos []playlist.VideoEntry `json:"videos"`
}

type Source struct {
	Fs     afero.Fs
	Client *http.Client
}

func NewSource() *Source {
	return &Source{
		Fs:     afero.NewOsFs(),
		Client: http.DefaultClient,
	}
}

func IsRemote(location string) bool {
	u, err := url.Parse(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// Fetch loads and validates the catalog at location. Relative src values are
// resolved against the catalog's own location.
func (s *Source) Fetch(ctx context.Context, location string) ([]playlist.VideoEntry, error) {
	const caller = "Fetch"
	if location == "" {
		return nil, fmt.Errorf("[%s] no catalog source configured", caller)
	}

	var (
		body []byte
		err  error
	)
	if IsRemote(location) {
		body, err = s.fetchRemote(ctx, caller, location)
	} else {
		body, err = s.readFile(caller, location)
	}
	if err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("[%s] failed to unmarshal catalog: %w: %v", caller, ErrMalformed, err)
	}

	seen := make(map[string]bool, len(doc.Videos))
	for i := range doc.Videos {
		v := &doc.Videos[i]
		if v.Id == "" || v.Src == "" {
			return nil, fmt.Errorf("[%s] entry %d: %w: id and src are required", caller, i, ErrMalformed)
		}
		if seen[v.Id] {
			return nil, fmt.Errorf("[%s] entry %d: %w: duplicate id %q", caller, i, ErrMalformed, v.Id)
		}
		seen[v.Id] = true

		src, err := resolve(location, v.Src)
		if err != nil {
			return nil, fmt.Errorf("[%s] entry %d: %w: %v", caller, i, ErrMalformed, err)
		}
		v.Src = src
	}

	return doc.Videos, nil
}

func (s *Source) fetchRemote(ctx context.Context, caller, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("[%s] failed to build request: %v", caller, err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[%s] failed to make GET request: %v", caller, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("[%s] unexpected status code: %d, status: %s", caller, res.StatusCode, res.Status)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("[%s] failed to read response body: %v", caller, err)
	}
	return body, nil
}

func (s *Source) readFile(caller, path string) ([]byte, error) {
	fs := s.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	body, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("[%s] failed to read catalog: %w", caller, err)
	}
	return body, nil
}

func resolve(location, src string) (string, error) {
	ref, err := url.Parse(src)
	if err == nil && ref.Scheme != "" && len(ref.Scheme) > 1 {
		// already absolute (a one-letter scheme is a windows drive)
		return src, nil
	}

	if IsRemote(location) {
		base, err := url.Parse(location)
		if err != nil {
			return "", err
		}
		if ref == nil {
			return "", fmt.Errorf("invalid src %q", src)
		}
		return base.ResolveReference(ref).String(), nil
	}

	if filepath.IsAbs(src) || strings.HasPrefix(src, "/") {
		return src, nil
	}
	return filepath.Join(filepath.Dir(location), filepath.FromSlash(src)), nil
}
