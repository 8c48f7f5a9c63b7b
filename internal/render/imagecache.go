package render

import (
	"image"
	"sync"

	"chart-board/internal/imageio"
)

// ImageCache memoizes decoded image element bitmaps keyed by element id.
// The encoded bytes live on the element and are immutable once set, so a
// decode is valid until the element is replaced via Drop. Undecodable data
// is remembered too: such elements stay un-rendered without retrying every
// frame.
type ImageCache struct {
	mu      sync.Mutex
	decoded map[string]image.Image
	failed  map[string]struct{}
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		decoded: make(map[string]image.Image),
		failed:  make(map[string]struct{}),
	}
}

// Get returns the decoded bitmap for an element, decoding on first access.
// Returns nil for empty or undecodable data.
func (c *ImageCache) Get(id string, data []byte) image.Image {
	if len(data) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if img, ok := c.decoded[id]; ok {
		return img
	}
	if _, ok := c.failed[id]; ok {
		return nil
	}

	img, err := imageio.Decode(data)
	if err != nil {
		c.failed[id] = struct{}{}
		return nil
	}
	c.decoded[id] = img
	return img
}

// Drop forgets one element's cache entry, e.g. after its data changed.
func (c *ImageCache) Drop(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.decoded, id)
	delete(c.failed, id)
}

// Clear forgets everything, e.g. when a different board is loaded.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decoded = make(map[string]image.Image)
	c.failed = make(map[string]struct{})
}

// Len returns the number of successfully decoded entries.
func (c *ImageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.decoded)
}
