// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/spezifisch/canvasplay/controls"
	"github.com/spezifisch/canvasplay/logger"
	"github.com/spezifisch/canvasplay/renderloop"
	"golang.org/x/image/draw"
)

// Cache fetches assets and holds a copy, returning them on request.
// A Cache is composed of four mechanisms:
//
// 1. a zero object
// 2. a function for fetching assets
// 3. a function for invalidating assets
// 4. a call-back function for when an asset is fetched
//
// When an asset is requested, Cache returns the asset if it is cached.
// Otherwise, it returns the zero object, and queues up a fetch for the object
// in the background. When the fetch is complete, the callback function is
// called, allowing the caller to get the real asset. An invalidation function
// allows Cache to manage the cache size by removing cached invalid objects.
//
// Get never blocks: when the fetch queue is full the request is dropped and
// will be repeated by the next Get for the same key.
type Cache[T any] struct {
	zero T

	mu         sync.Mutex
	cache      map[string]T
	pending    map[string]struct{}
	closed     bool
	cacheCheck func(string) string

	pipeline chan string
	quit     func()
}

const cacheBacklog = 8

// NewCache sets up a new cache, given
//
//   - a zeroValue, returned immediately on cache misses
//   - a fetcher, which can be a long-running function that loads assets.
//     fetcher should take a key ID and return an asset, or an error.
//   - a fetchedItem call-back function, which will be called when a requested asset is available. It
//     will be called with the asset ID, and the loaded asset.
//   - a cacheCheck function which, when given a key, returns a key to remove from the
//     cache, or the empty string if nothing is to be removed.
//   - a logger, used for reporting errors returned by the fetching function
//
// cacheCheck is always called with the cache locked.
func NewCache[T any](
	zeroValue T,
	fetcher func(string) (T, error),
	fetchedItem func(string, T),
	cacheCheck func(string) string,
	logger logger.LoggerInterface,
) *Cache[T] {
	c := &Cache[T]{
		zero:       zeroValue,
		cache:      make(map[string]T),
		pending:    make(map[string]struct{}),
		cacheCheck: cacheCheck,
		pipeline:   make(chan string, cacheBacklog),
	}
	c.quit = func() {
		close(c.pipeline)
	}

	go func() {
		for key := range c.pipeline {
			asset, err := fetcher(key)

			c.mu.Lock()
			delete(c.pending, key)
			if err != nil || c.closed {
				c.mu.Unlock()
				if err != nil {
					logger.Printf("error fetching asset %s: %s", key, err)
				}
				continue
			}
			c.cache[key] = asset
			if remove := c.cacheCheck(key); remove != "" {
				delete(c.cache, remove)
			}
			c.mu.Unlock()

			fetchedItem(key, asset)
		}
	}()

	return c
}

// Get returns a cached asset, or the zero asset on a cache miss.
// On a cache miss, the requested asset is queued for fetching.
func (c *Cache[T]) Get(key string) T {
	v, _ := c.Lookup(key)
	return v
}

// Lookup is Get that also reports whether key was cached.
func (c *Cache[T]) Lookup(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.zero, false
	}
	if v, ok := c.cache[key]; ok {
		// We're just touching something in the cache, not putting anything in it,
		// so we just call cacheCheck to refresh this key
		c.cacheCheck(key)
		return v, true
	}
	if _, ok := c.pending[key]; ok {
		return c.zero, false
	}
	select {
	case c.pipeline <- key:
		c.pending[key] = struct{}{}
	default:
	}
	return c.zero, false
}

func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// Close releases resources used by the cache, clearing the cache
// and shutting down goroutines. It should be called when the
// Cache is no longer used, and before program exit. Later calls to Get
// return the zero value.
func (c *Cache[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	for k := range c.cache {
		delete(c.cache, k)
	}
	c.quit()
}

const (
	// hover positions within one bucket share a thumbnail
	thumbnailBucket    = 2.0 // seconds
	thumbnailCacheSize = 64
)

// thumbnailCache serves scrub bar previews for the attached source. Frames
// are grabbed in the background and scaled down to the preview size.
type thumbnailCache struct {
	cache  *Cache[image.Image]
	source func() string
}

var _ renderloop.Thumbnails = (*thumbnailCache)(nil)

// newThumbnailCache wires grab into a Cache. fetched runs on the fetch
// goroutine whenever a new thumbnail is ready.
func newThumbnailCache(
	grab func(src string, seconds float64) (image.Image, error),
	source func() string,
	fetched func(),
	logger logger.LoggerInterface,
) *thumbnailCache {
	lru := NewLRU(thumbnailCacheSize)

	fetcher := func(key string) (image.Image, error) {
		src, seconds, err := parseThumbnailKey(key)
		if err != nil {
			return nil, err
		}
		frame, err := grab(src, seconds)
		if err != nil {
			return nil, err
		}
		return scaleThumbnail(frame), nil
	}

	return &thumbnailCache{
		cache:  NewCache[image.Image](nil, fetcher, func(string, image.Image) { fetched() }, lru.Touch, logger),
		source: source,
	}
}

func (t *thumbnailCache) Thumbnail(seconds float64) (image.Image, bool) {
	src := t.source()
	if src == "" {
		return nil, false
	}
	img, ok := t.cache.Lookup(thumbnailKey(src, seconds))
	return img, ok && img != nil
}

func (t *thumbnailCache) Close() {
	t.cache.Close()
}

func thumbnailKey(src string, seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	bucket := int64(seconds / thumbnailBucket)
	return src + "@" + strconv.FormatInt(bucket, 10)
}

// parseThumbnailKey returns the source and the start time of the bucket.
func parseThumbnailKey(key string) (src string, seconds float64, err error) {
	i := strings.LastIndexByte(key, '@')
	if i < 0 {
		return "", 0, fmt.Errorf("bad thumbnail key %q", key)
	}
	bucket, err := strconv.ParseInt(key[i+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad thumbnail key %q: %w", key, err)
	}
	return key[:i], float64(bucket) * thumbnailBucket, nil
}

func scaleThumbnail(frame image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, controls.PreviewWidth, controls.PreviewHeight))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), frame, frame.Bounds(), draw.Src, nil)
	return dst
}
