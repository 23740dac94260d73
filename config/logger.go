package database

import (
	"log"
	"os"

	"go.uber.org/zap"
)

// Logger is the process-wide structured logger.
var Logger *zap.Logger = newLogger()

func newLogger() *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if os.Getenv("ENV") == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(err)
	}
	return l
}
