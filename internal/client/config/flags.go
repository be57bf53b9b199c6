package config

import (
	"flag"
	"os"
	"time"

	"github.com/spaceshelter/orbitar-sub001/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the platform API (default from Config)
//	-s string   starting site context
//	-i int      status update interval in seconds
//	-p int      posts per feed page
//	-d string   path of the local database
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-i", "-p", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIEndpoint, "a", cfg.APIEndpoint, "base URL of the platform API")
	fs.StringVar(&cfg.Site, "s", cfg.Site, "starting site context")
	statusInterval := fs.Int("i", int(cfg.StatusUpdateInterval.Seconds()), "status update interval (in seconds)")
	fs.IntVar(&cfg.FeedPerPage, "p", cfg.FeedPerPage, "posts per feed page")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.StatusUpdateInterval = time.Duration(*statusInterval) * time.Second
}
