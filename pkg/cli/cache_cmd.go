package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/junzis/opensky-go/pkg/cache"
	"github.com/junzis/opensky-go/pkg/config"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local parquet result cache",
	}

	cmd.AddCommand(newCacheStatsCmd())
	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePurgeCmd())
	return cmd
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print cache location, entry count and size",
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := cache.Open()
			if err != nil {
				return err
			}
			stats, err := c.Stats()
			if err != nil {
				return err
			}

			fmt.Printf("directory: %s\n", stats.Directory)
			fmt.Printf("entries:   %d\n", stats.Entries)
			fmt.Printf("size:      %s\n", stats.HumanSize())
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached result",
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := cache.Open()
			if err != nil {
				return err
			}
			n, err := c.Clear()
			if err != nil {
				return err
			}
			fmt.Printf("removed %d entries\n", n)
			return nil
		},
	}
}

func newCachePurgeCmd() *cobra.Command {
	var olderThan string

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete cached results older than the purge age",
		Long: "Delete cached results whose file modification time is older than the " +
			"given age. Defaults to the [cache] purge setting in the configuration " +
			"file, or 90 days.",
		Example: `  opensky cache purge
  opensky cache purge --older-than "2 weeks"`,
		RunE: func(_ *cobra.Command, _ []string) error {
			age := olderThan
			if age == "" {
				if cfg, err := config.Load(); err == nil && cfg.CachePurge != "" {
					age = cfg.CachePurge
				} else {
					age = "90 days"
				}
			}
			maxAge, err := config.ParsePurgeAge(age)
			if err != nil {
				return err
			}

			c, err := cache.Open()
			if err != nil {
				return err
			}
			n, err := c.Purge(maxAge)
			if err != nil {
				return err
			}
			fmt.Printf("removed %d entries older than %s\n", n, age)
			return nil
		},
	}

	cmd.Flags().StringVar(&olderThan, "older-than", "", "Purge age, like \"90 days\" or \"12 hours\"")
	return cmd
}
