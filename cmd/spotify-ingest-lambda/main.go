// Command spotify-ingest-lambda is the AWS Lambda entry point for the
// playlist ingest.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/justestif/spotify-raw-ingest/internal/app"
	"github.com/justestif/spotify-raw-ingest/internal/config"
	"github.com/justestif/spotify-raw-ingest/internal/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(logging.Options{Level: cfg.LogLevel})
	defer logger.Sync()

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	lambda.Start(a.Handler.Handle)
}
