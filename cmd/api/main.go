package main

import (
	"os"

	"github.com/eakyurek/gradehub/internal/pkg/logger"
	"github.com/eakyurek/gradehub/internal/server"
)

// @title GradeHub API
// @version 1.0
// @description Authorization-gated academic lifecycle API for courses, enrollments and grades

// @contact.name API Support
// @contact.email support@gradehub.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
