// Package cache persists query results as Parquet files keyed by a
// deterministic hash of the query parameters.
//
// Entries live under the platform cache directory (e.g.
// ~/.cache/opensky). The file modification time is the only expiry
// signal; entries carry no embedded metadata and are never mutated in
// place. The directory is shared across processes without locking:
// operations are best-effort, writes go through a temp file plus rename
// so readers never observe a partial entry.
package cache

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/junzis/opensky-go/pkg/frame"
	"github.com/junzis/opensky-go/pkg/opensky"
)

// ext is the artifact extension for cache entries.
const ext = ".parquet"

// dirName is the application subdirectory under the platform cache root.
const dirName = "opensky"

// Cache is a directory of parameter-keyed result files.
type Cache struct {
	// Dir is the cache directory. It is created lazily on first write.
	Dir string
}

// Open returns the cache rooted at the platform cache directory.
func Open() (*Cache, error) {
	root, err := os.UserCacheDir()
	if err != nil {
		return nil, opensky.Wrap(opensky.KindConfig, "determine cache directory", err)
	}
	return &Cache{Dir: filepath.Join(root, dirName)}, nil
}

// New returns a cache rooted at dir. Used by tests and tooling.
func New(dir string) *Cache {
	return &Cache{Dir: dir}
}

// Key derives the deterministic entry filename for params: 16 lowercase
// hex digits plus the artifact extension. Identical params always
// produce the identical key; any differing hashed field changes it.
// Bounds are hashed by their raw bit patterns so that textually equal
// but bitwise different floats are distinguished.
func Key(p opensky.QueryParams) string {
	d := xxhash.New()

	writeField(d, p.ICAO24)
	writeField(d, p.Start)
	writeField(d, p.Stop)
	writeField(d, p.Callsign)
	writeField(d, p.DepartureAirport)
	writeField(d, p.ArrivalAirport)
	writeField(d, p.Airport)
	writeField(d, strconv.Itoa(p.Limit))

	if p.Bounds != nil {
		var buf [8]byte
		for _, v := range []float64{p.Bounds.West, p.Bounds.South, p.Bounds.East, p.Bounds.North} {
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = d.Write(buf[:])
		}
	}

	return fmt.Sprintf("%016x%s", d.Sum64(), ext)
}

// writeField writes a length-prefixed field so adjacent fields cannot
// collide ("ab"+"c" vs "a"+"bc").
func writeField(d *xxhash.Digest, s string) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(len(s)))
	_, _ = d.Write(buf[:])
	_, _ = d.Write([]byte(s))
}

// Path returns the entry file path for params.
func (c *Cache) Path(p opensky.QueryParams) string {
	return filepath.Join(c.Dir, Key(p))
}

// Get returns the cached frame for params, or a miss. When maxAge is
// positive and the entry is older, it is deleted and reported as a
// miss. A corrupt entry is treated as a miss, not a hard error.
func (c *Cache) Get(p opensky.QueryParams, maxAge time.Duration) (*frame.Frame, bool) {
	path := c.Path(p)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}

	if maxAge > 0 && time.Since(info.ModTime()) > maxAge {
		_ = os.Remove(path)
		return nil, false
	}

	f, err := frame.ReadParquetFile(path)
	if err != nil {
		return nil, false
	}
	return f, true
}

// Put writes or overwrites the entry for params. The frame is written
// to a temporary file and renamed so concurrent readers never see a
// partial write.
func (c *Cache) Put(p opensky.QueryParams, f *frame.Frame) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return opensky.Wrap(opensky.KindConfig, "create cache directory", err)
	}

	tmp, err := os.CreateTemp(c.Dir, Key(p)+".tmp*")
	if err != nil {
		return opensky.Wrap(opensky.KindIO, "create cache temp file", err)
	}
	tmpPath := tmp.Name()

	if err := f.WriteParquet(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return opensky.Wrap(opensky.KindIO, "close cache temp file", err)
	}

	if err := os.Rename(tmpPath, c.Path(p)); err != nil {
		_ = os.Remove(tmpPath)
		return opensky.Wrap(opensky.KindIO, "publish cache entry", err)
	}
	return nil
}

// Remove deletes the entry for params. Removing a missing entry is not
// an error.
func (c *Cache) Remove(p opensky.QueryParams) error {
	if err := os.Remove(c.Path(p)); err != nil && !os.IsNotExist(err) {
		return opensky.Wrap(opensky.KindIO, "remove cache entry", err)
	}
	return nil
}

// Clear removes every entry and returns the count removed.
func (c *Cache) Clear() (int, error) {
	return c.removeEntries(func(os.FileInfo) bool { return true })
}

// Purge removes entries whose modification time is older than maxAge
// and returns the count removed.
func (c *Cache) Purge(maxAge time.Duration) (int, error) {
	now := time.Now()
	return c.removeEntries(func(info os.FileInfo) bool {
		return now.Sub(info.ModTime()) > maxAge
	})
}

func (c *Cache) removeEntries(match func(os.FileInfo) bool) (int, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, opensky.Wrap(opensky.KindConfig, "read cache directory", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		info, err := entry.Info()
		if err != nil || !match(info) {
			continue
		}
		if os.Remove(filepath.Join(c.Dir, entry.Name())) == nil {
			count++
		}
	}
	return count, nil
}
