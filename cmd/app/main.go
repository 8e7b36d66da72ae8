package main

import (
	"context"

	"minka/config"
	"minka/di"
	"minka/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	consumer := di.InitializeReservationConsumer()
	go consumer.Start(context.Background())

	http := di.InitializeService()
	http.Serve()
}
