// Package main is the entry point for the taskflow CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskflow/internal/backend/taskflowapi"
	"taskflow/internal/cli"
	"taskflow/internal/commands"
	"taskflow/internal/config"
	"taskflow/internal/localcache"
	"taskflow/internal/service"
	"taskflow/internal/session"
	"taskflow/internal/store"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Build the stores for the identity stored on this device. A fresh
	// Stores per invocation means sign-in/sign-out transitions never leak
	// state across identities.
	factory := func(ctx context.Context, cfg *config.Config) (*store.Stores, error) {
		sess := session.Load(ctx, cfg)
		cache := localcache.New(cfg.Dir)

		var svc service.Service
		if sess.Authenticated() {
			client, err := taskflowapi.New(cfg.Settings.APIURL, sess.Client(ctx))
			if err != nil {
				return nil, err
			}
			svc = client
		}
		return store.New(sess, svc, cache), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
