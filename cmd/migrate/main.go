package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/markamcfadden/be-nc-news-project/internal/config"
	"github.com/markamcfadden/be-nc-news-project/internal/database"
	"github.com/markamcfadden/be-nc-news-project/pkg/logger"
)

const usage = `usage: migrate [-to N] <up|down|version>

  up       apply all pending migrations (or migrate to -to N)
  down     roll back every migration
  version  print the current schema version
`

func main() {
	to := flag.Uint("to", 0, "target schema version for up")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(config.Default().Log)
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(cfg.Log).With().Str("component", "migrate").Logger()

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	switch flag.Arg(0) {
	case "up":
		if *to > 0 {
			err = db.MigrateToVersion(*to)
		} else {
			err = db.RunMigrations()
		}
	case "down":
		err = db.MigrateDown()
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = db.Version()
		if err == nil {
			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Schema version")
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal().Err(err).Str("command", flag.Arg(0)).Msg("Migration failed")
	}
}
