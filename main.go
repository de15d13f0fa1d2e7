package main

import (
	"fmt"

	"storefront/configs"
	"storefront/middlewares"
	"storefront/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()
	log := configs.Logger()

	// DB
	configs.ConnectionDB(cfg.DBSource)

	// migrate + seed lookups
	if err := configs.SetupDatabase(); err != nil {
		log.Fatalw("migration failed", "err", err)
	}

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalw("seed admin failed", "err", err)
	}
	if err := configs.SeedLookups(); err != nil {
		log.Fatalw("seed lookups failed", "err", err)
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Infow("server running", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalw("server stopped", "err", err)
	}
}
