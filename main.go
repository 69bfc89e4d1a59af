package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/microbian-systems/survey/app"
	"github.com/microbian-systems/survey/config"
	"github.com/microbian-systems/survey/database"
	"github.com/microbian-systems/survey/httpx"
	"github.com/microbian-systems/survey/log"
	"github.com/microbian-systems/survey/routes"
	"github.com/microbian-systems/survey/store"
	"github.com/microbian-systems/survey/survey"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	bearerServer := httpx.NewBearerServer(db, cfg)

	sqlite := store.NewSQLite(db)
	surveys := survey.NewService(sqlite, sqlite, survey.NewAuditLogger())

	app := app.App{
		DB:           db,
		BearerServer: bearerServer,
		Config:       cfg,
		Surveys:      surveys,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
