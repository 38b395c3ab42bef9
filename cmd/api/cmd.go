package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/expense-backend/internal/bootstrap"
	"github.com/GregMSThompson/expense-backend/internal/config"
	"github.com/GregMSThompson/expense-backend/internal/handlers"
	"github.com/GregMSThompson/expense-backend/internal/parser"
	"github.com/GregMSThompson/expense-backend/internal/response"
	"github.com/GregMSThompson/expense-backend/internal/router"
	"github.com/GregMSThompson/expense-backend/internal/services"
	"github.com/GregMSThompson/expense-backend/internal/store"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg, err := config.Load()
	exitOnError("config load failed", err, logger.New("info", logger.NewCloudRunHandler))

	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	estore := store.NewExpenseStore(bs.DB)

	// parsers
	textRouter := parser.NewRouter(cfg.ParserMode, bs.Vertex, bs.OpenAI)
	scanner := parser.NewVisionParser(bs.Vertex)

	// services
	eserv := services.NewExpenseService(textRouter, scanner, estore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.ExpenseSvc = eserv
	deps.DB = bs.DB
	deps.Firebase = bs.Firebase
	deps.AuthRequired = cfg.AuthRequired

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("listening", "port", cfg.Port, "parser_mode", cfg.ParserMode)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
