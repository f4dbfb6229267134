package main

import (
	"go-leave/internal/app"
	"go-leave/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Entry point for the notification consumer, which turns leave decision
// events into emails.
func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	apperror.Init()

	if err := app.RunConsumer(); err != nil {
		logger.Fatal("notification consumer exited", zap.Error(err))
	}
}
