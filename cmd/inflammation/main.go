package main

import (
	"fmt"
	"os"

	"inflammation/internal/config"
	"inflammation/internal/container"
	"inflammation/internal/errors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		exit(err)
	}

	c, err := container.New(cfg, os.Stderr)
	if err != nil {
		exit(err)
	}

	if err := newRootCmd(c).Execute(); err != nil {
		exit(err)
	}
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[%s] %v\n", errors.GetCode(err), err)
	os.Exit(1)
}
