package main

import (
	"flag"
	"net/http"

	"go.uber.org/zap"

	"github.com/mjoseph28/game28-client/internal/devserver"
)

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer func() { _ = logger.Sync() }()

	srv := devserver.New(logger, nil)

	logger.Info("dev server listening", zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
