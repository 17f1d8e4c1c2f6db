package main

import (
	"github.com/feedform/feedform/pkg/cli"
)

func main() {
	cli.Execute()
}
