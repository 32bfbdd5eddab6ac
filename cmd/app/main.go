package main

import (
	"basecamp/config"
	"basecamp/di"
	"basecamp/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
