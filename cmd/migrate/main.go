package main

import (
	"flag"
	"log"

	"github.com/DhavalSuthar-24/socialsoccer/config"
	"github.com/DhavalSuthar-24/socialsoccer/internal/db"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/logger"
)

func main() {
	down := flag.Int("down", 0, "roll back this many migrations instead of applying")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLog := logger.NewFromEnv(cfg.App.Env)

	if *down > 0 {
		err = db.Down(cfg.MigrateURL(), *down, appLog)
	} else {
		err = db.Up(cfg.MigrateURL(), appLog)
	}
	if err != nil {
		log.Fatalf("database migration failed: %v", err)
	}
}
