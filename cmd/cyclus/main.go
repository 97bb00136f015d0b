package main

import (
	"github.com/cyclus-go/cyclus/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
