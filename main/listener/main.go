package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"udplisten/common"
	"udplisten/listener"

	log "github.com/sirupsen/logrus"
)

func main() {
	var level string

	flag.StringVar(&level, "l", "", "log level: debug, info, warn, error")
	flag.Parse()

	common.Setup(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	server := listener.NewListener(nil)
	defer server.Close()

	if err := server.Start(common.DEFAULT_UDP_PORT); err != nil {
		log.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.Warn(err)
	}
}
