package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/remeh/sizedwaitgroup"
)

// assetState is the lifecycle of one avatar frame image.
type assetState int

const (
	assetUnrequested assetState = iota
	assetLoading
	assetReady
	assetFailed
)

type frameKey struct {
	avatar string
	dir    Direction
	idx    int
}

type frameHandle struct {
	state assetState
	img   *ebiten.Image
}

// avatarCache lazily fetches and decodes avatar frame images. Entries are
// never evicted; the key space is bounded by the avatar definitions seen.
// Loads run on background goroutines, so the map takes a mutex.
type avatarCache struct {
	mu     sync.Mutex
	frames map[frameKey]*frameHandle

	client *http.Client

	// onReady is called after a load completes so the frame loop knows to
	// repaint. Must be safe to call from any goroutine.
	onReady func()
}

func newAvatarCache(onReady func()) *avatarCache {
	return &avatarCache{
		frames:  make(map[frameKey]*frameHandle),
		client:  &http.Client{Timeout: 10 * time.Second},
		onReady: onReady,
	}
}

// image returns the drawable for a frame when ready. A miss starts the
// fetch in the background and reports false; the caller skips drawing this
// player until a later frame.
func (c *avatarCache) image(key frameKey, ref string) (*ebiten.Image, bool) {
	c.mu.Lock()
	h, ok := c.frames[key]
	if !ok {
		h = &frameHandle{state: assetLoading}
		c.frames[key] = h
		c.mu.Unlock()
		go c.load(key, ref)
		return nil, false
	}
	defer c.mu.Unlock()
	if h.state != assetReady {
		return nil, false
	}
	return h.img, true
}

func (c *avatarCache) load(key frameKey, ref string) {
	img, err := fetchImage(c.client, ref)

	c.mu.Lock()
	h := c.frames[key]
	if err != nil {
		// Failures are cached as tombstones so a bad reference is not
		// refetched every frame.
		h.state = assetFailed
		c.mu.Unlock()
		Log.Warnf("avatar frame %s/%s[%d]: %v", key.avatar, key.dir, key.idx, err)
		return
	}
	h.img = ebiten.NewImageFromImage(img)
	h.state = assetReady
	c.mu.Unlock()

	if c.onReady != nil {
		c.onReady()
	}
}

// precache fetches every frame of the given avatars with bounded
// parallelism. Runs once after the join snapshot lands.
func (c *avatarCache) precache(avatars map[string]Avatar) {
	wg := sizedwaitgroup.New(runtime.NumCPU())
	for name, av := range avatars {
		for dir, refs := range av.Frames {
			for i, ref := range refs {
				key := frameKey{avatar: name, dir: dir, idx: i}
				c.mu.Lock()
				if _, ok := c.frames[key]; ok {
					c.mu.Unlock()
					continue
				}
				c.frames[key] = &frameHandle{state: assetLoading}
				c.mu.Unlock()

				wg.Add()
				go func(key frameKey, ref string) {
					defer wg.Done()
					c.load(key, ref)
				}(key, ref)
			}
		}
	}
	wg.Wait()
}

// fetchImage resolves an image reference: either an inline data URI or an
// HTTP(S) URL.
func fetchImage(client *http.Client, ref string) (image.Image, error) {
	var r io.Reader
	switch {
	case strings.HasPrefix(ref, "data:"):
		comma := strings.IndexByte(ref, ',')
		if comma < 0 {
			return nil, fmt.Errorf("malformed data URI")
		}
		r = base64.NewDecoder(base64.StdEncoding, strings.NewReader(ref[comma+1:]))
	case strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
		resp, err := client.Get(ref)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: %s", ref, resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(data)
	default:
		return nil, fmt.Errorf("unsupported image reference %q", ref)
	}
	img, _, err := image.Decode(r)
	return img, err
}
