//go:build lambda

package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/feedform/feedform/pkg/api"
)

func main() {
	h, err := api.NewLambdaHandler(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	lambda.Start(h)
}
