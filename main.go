package main

import (
	"venuehub/core/logger"
	"venuehub/core/server"
)

// @title VenueHub API
// @version 1.0
// @description Backend API for the VenueHub venue marketplace

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Fatal("run server error", "error", err)
	}
}
