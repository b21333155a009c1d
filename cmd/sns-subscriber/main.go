// Command sns-subscriber consumes item notifications from the topic.
package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/vinicius-dias23/roteiro3/internal/app"
)

func main() {
	_, logger, err := app.Setup()
	if err != nil {
		fmt.Printf("error starting sns-subscriber: %v\n", err)
		os.Exit(1)
	}

	lambda.Start(app.NewSubscriber(logger).Handle)
}
