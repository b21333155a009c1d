// Command update-item is the Lambda entry point that applies a partial update to an item.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/vinicius-dias23/roteiro3/internal/app"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error starting update-item: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, logger, err := app.Setup()
	if err != nil {
		return err
	}

	h, err := app.NewAPI(context.Background(), cfg, logger)
	if err != nil {
		return fmt.Errorf("error building handler: %w", err)
	}

	lambda.Start(h.Update)
	return nil
}
