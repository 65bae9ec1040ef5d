package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kjk/javaprops/log"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	c := &Cmd{
		Out: os.Stdout,
	}
	err := c.Run(ctx, os.Args[1:])
	log.Close()
	if log.IfErrf(err) {
		os.Exit(1)
	}
}
