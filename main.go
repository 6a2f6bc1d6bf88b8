package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/config"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/database"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/intent"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/logger"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/router"

	"github.com/rs/zerolog/log"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logger.Setup(cfg.Log.Level, cfg.Log.Pretty)

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatal().Err(err).Msg("create data dir")
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("init database")
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	// load intent models once; they stay immutable for the process lifetime
	classifier, err := intent.Load(cfg.Models.GeneralIntent, cfg.Models.ObjectIntent)
	if err != nil {
		log.Fatal().Err(err).Msg("load intent models")
	}

	// setup router
	r := router.SetupRouter(cfg, db, classifier)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("server listening")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("run server")
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
