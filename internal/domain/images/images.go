// Package images defines how entities reference stored image files and
// how stale files are removed once a mutation has committed.
package images

import (
	"context"
	"fmt"
	"path"
	"strings"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/id"
	"dastarkhan/pkg/logger"
)

// Sentinel references stand in for "no image" and are never deleted.
const (
	NoFood  = "product_images/no-food.webp"
	NoPhoto = "avatars/no_photo.png"
)

// IsSentinel reports references that must never be removed from storage.
func IsSentinel(ref string) bool {
	return ref == "" || ref == NoFood || ref == NoPhoto
}

// Store reads and writes image files by storage-relative reference.
type Store interface {
	Save(ctx context.Context, ref string, data []byte) error
	Delete(ctx context.Context, ref string) error
}

// Upload is an image payload received from a client.
type Upload struct {
	Filename string
	Data     []byte
}

// Validate rejects empty payloads.
func (u *Upload) Validate() error {
	if u == nil {
		return nil
	}
	if u.Filename == "" || len(u.Data) == 0 {
		return fmt.Errorf("image upload requires a filename and data")
	}
	return nil
}

// Distinct returns ref unless it equals previous, the file the stored row
// still references. Then a short random suffix goes before the extension so
// the upload never overwrites that file before the row is persisted.
func Distinct(ref, previous string) string {
	if ref != previous {
		return ref
	}
	key := strings.ReplaceAll(id.New().String(), "-", "")
	ext := path.Ext(ref)
	return strings.TrimSuffix(ref, ext) + "-" + key[len(key)-8:] + ext
}

// Cleanup collects delete instructions during a mutation. Nothing is removed
// until Flush, which callers invoke only after the new state is durable.
// Files written through Put are dropped again by Discard when the mutation fails.
type Cleanup struct {
	store   Store
	refs    []string
	written []string
}

// NewCleanup creates an empty batch bound to store.
func NewCleanup(store Store) *Cleanup {
	return &Cleanup{store: store}
}

// Replace queues previous when it differs from current.
func (c *Cleanup) Replace(previous, current string) {
	if previous != current {
		c.Remove(previous)
	}
}

// Remove queues ref unless it is a sentinel or already queued.
func (c *Cleanup) Remove(ref string) {
	if IsSentinel(ref) {
		return
	}
	for _, r := range c.refs {
		if r == ref {
			return
		}
	}
	c.refs = append(c.refs, ref)
}

// Pending returns the queued references in insertion order.
func (c *Cleanup) Pending() []string {
	return append([]string(nil), c.refs...)
}

// Flush deletes every queued file. Failures leave orphaned files behind and
// are logged, never returned: the record mutation has already succeeded.
func (c *Cleanup) Flush(ctx context.Context) {
	if c.store == nil {
		return
	}
	for _, ref := range c.refs {
		if err := c.store.Delete(ctx, ref); err != nil {
			logger.Warn(ctx, "stale image not removed", "ref", ref, "error", err)
			continue
		}
		logger.Debug(ctx, "stale image removed", "ref", ref)
	}
	c.refs = nil
	c.written = nil
}

// Put stores u at ref and remembers the file for Discard. A nil upload is a no-op.
func (c *Cleanup) Put(ctx context.Context, ref string, u *Upload) error {
	if u == nil {
		return nil
	}
	if err := Put(ctx, c.store, ref, u); err != nil {
		return err
	}
	c.written = append(c.written, ref)
	return nil
}

// Written returns the references stored through Put.
func (c *Cleanup) Written() []string {
	return append([]string(nil), c.written...)
}

// Discard removes the files this mutation wrote and forgets queued deletes.
// Called when the transaction did not commit.
func (c *Cleanup) Discard(ctx context.Context) {
	if c.store != nil {
		for _, ref := range c.written {
			if err := c.store.Delete(ctx, ref); err != nil {
				logger.Warn(ctx, "uncommitted image not removed", "ref", ref, "error", err)
			}
		}
	}
	c.refs = nil
	c.written = nil
}

// Put stores an upload at ref. A nil upload is a no-op.
func Put(ctx context.Context, store Store, ref string, u *Upload) error {
	if u == nil {
		return nil
	}
	if err := store.Save(ctx, ref, u.Data); err != nil {
		return apperror.NewFileStorage(err).WithDetail("ref", ref)
	}
	return nil
}
