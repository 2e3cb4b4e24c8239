/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/hepaguard/config"
	"github.com/humaidq/hepaguard/db"
	"github.com/humaidq/hepaguard/model"
	"github.com/humaidq/hepaguard/routes"
	"github.com/humaidq/hepaguard/static"
	"github.com/humaidq/hepaguard/templates"
	"github.com/humaidq/hepaguard/theme"
)

const (
	runtimeEnvVar   = "HEPAGUARD_ENV"
	csrfSecretEnv   = "CSRF_SECRET"
	shutdownTimeout = 10 * time.Second
)

var CmdStart = &cli.Command{
	Name:    "start",
	Aliases: []string{"run"},
	Usage:   "Start the web dashboard",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "port",
			Value: "8080",
			Usage: "the web server port",
		},
		&cli.StringFlag{
			Name:    "db-path",
			Sources: cli.EnvVars(config.EnvDBPath),
			Usage:   "SQLite database file (default db/app.db)",
		},
		&cli.StringFlag{
			Name:    "data-file",
			Sources: cli.EnvVars(config.EnvDataFile),
			Usage:   "liver patient dataset used to train the classifier",
		},
		&cli.BoolFlag{
			Name:  "dev",
			Value: false,
			Usage: "enables development mode (templates are read from disk)",
		},
	},
	Action: start,
}

// parseRuntimeEnv reports whether value selects development mode. An empty
// value means production.
func parseRuntimeEnv(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "production", "prod":
		return false, nil
	case "development", "dev":
		return true, nil
	default:
		return false, errInvalidRuntimeEnv
	}
}

func configureEmptyNotFoundHandler(f *flamego.Flame) {
	f.NotFound(func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNotFound)
	})
}

func csrfSecret(dev bool) (string, error) {
	secret := os.Getenv(csrfSecretEnv)
	if secret == "" && !dev {
		return "", errCSRFSecretRequired
	}

	return secret, nil
}

func templateFileSystem(dev bool) (template.FileSystem, error) {
	if dev {
		return nil, nil
	}

	return template.EmbedFS(templates.Templates, ".", []string{".html"})
}

func newWebApp(engine *routes.Engine, dev bool, secret string) (*flamego.Flame, error) {
	fs, err := templateFileSystem(dev)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	f := flamego.New()
	f.Use(flamego.Recovery())
	f.Use(routes.RequestLogger)
	f.Use(routes.NoCacheHeaders())
	f.Use(session.Sessioner())
	f.Use(csrf.Csrfer(csrf.Options{Secret: secret}))
	f.Use(template.Templater(template.Options{
		FileSystem: fs,
		Directory:  "templates",
		FuncMaps:   []htmltemplate.FuncMap{routes.TemplateFuncs()},
	}))
	f.Use(flamego.Static(flamego.StaticOptions{
		FileSystem: http.FS(static.Static),
	}))
	f.Map(engine)
	f.Use(routes.CSRFInjector())
	f.Use(routes.ThemeInjector(theme.Default))
	f.Use(routes.FlashInjector())

	configureEmptyNotFoundHandler(f)

	f.Get("/", routes.PredictForm)
	f.Post("/predict", csrf.Validate, routes.Predict)
	f.Get("/analytics", routes.Analytics)
	f.Get("/healthz", routes.Healthz)

	f.Group("/patients", func() {
		f.Get("", routes.ListPatients)
		f.Post("", csrf.Validate, routes.SavePatient)
		f.Get("/{id}", routes.ViewPatient)
		f.Post("/{id}/delete", csrf.Validate, routes.DeletePatient)
	})

	return f, nil
}

func start(ctx context.Context, cmd *cli.Command) error {
	paths := config.Load()

	envDev, err := parseRuntimeEnv(os.Getenv(runtimeEnvVar))
	if err != nil {
		return err
	}

	dev := cmd.Bool("dev") || envDev
	if dev {
		flamego.SetEnv(flamego.EnvTypeDev)
	} else {
		flamego.SetEnv(flamego.EnvTypeProd)
	}

	secret, err := csrfSecret(dev)
	if err != nil {
		return err
	}

	dbPath := cmd.String("db-path")
	if dbPath == "" {
		dbPath = paths.DBPath
	}

	dataFile := cmd.String("data-file")
	if dataFile == "" {
		dataFile = paths.DataFile
	}

	appLogger.Info("Opening database", "path", dbPath)

	if err := db.Init(ctx, dbPath); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	appLogger.Info("Syncing database schema")

	if err := db.SyncSchema(ctx); err != nil {
		return fmt.Errorf("failed to sync schema: %w", err)
	}

	appLogger.Info("Training classifier", "data_file", dataFile)

	engine := routes.TrainEngine(dataFile, model.DefaultTrainOptions())
	if engine.Ready() {
		appLogger.Info("Classifier ready", "model", engine.Pipeline.String(), "accuracy", engine.Evaluation.Accuracy)
	} else {
		appLogger.Warn("Classifier unavailable, predictions disabled", "reason", engine.ErrorMessage())
	}

	f, err := newWebApp(engine, dev, secret)
	if err != nil {
		return err
	}

	port := cmd.String("port")
	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", port),
		Handler:           f,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ErrorLog:          requestStdLogger,
	}

	errCh := make(chan error, 1)

	go func() {
		appLogger.Info("Starting web server", "port", port, "dev", dev)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
		appLogger.Info("Shutting down web server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down web server: %w", err)
		}

		return nil
	}
}
