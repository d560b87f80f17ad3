package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/junzis/opensky-go/pkg/opensky"
)

// Stats summarizes the cache contents.
type Stats struct {
	Directory  string
	Entries    int
	TotalBytes int64
}

// Stats scans the cache directory and returns entry count and total
// size. A missing directory yields empty stats.
func (c *Cache) Stats() (Stats, error) {
	stats := Stats{Directory: c.Dir}

	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, opensky.Wrap(opensky.KindConfig, "read cache directory", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += info.Size()
	}
	return stats, nil
}

// HumanSize renders the total size with binary prefixes: two-decimal
// KB/MB/GB above each 1024 threshold, exact bytes below.
func (s Stats) HumanSize() string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case s.TotalBytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(s.TotalBytes)/float64(gb))
	case s.TotalBytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(s.TotalBytes)/float64(mb))
	case s.TotalBytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(s.TotalBytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", s.TotalBytes)
	}
}
