package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akshay2172/Excel-Analytics-Platform/internal/config"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/db"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/logger"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/middleware"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	if _, err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Sync()

	database, err := db.Open(cfg.DbDsn)
	if err != nil {
		logger.L().Fatal("db error", zap.Error(err))
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	routes.Register(router, database, cfg, routes.Deps{})

	logger.L().Info("server starting", zap.String("addr", cfg.Addr))
	if err := router.Run(cfg.Addr); err != nil {
		logger.L().Fatal("server error", zap.Error(err))
	}
}
