package main

import (
	"context"
	"log"

	"github.com/feedform/feedform/pkg/api"
)

func main() {
	if err := api.Serve(context.Background()); err != nil {
		log.Fatal(err)
	}
}
