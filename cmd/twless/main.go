package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand(viper.New()).ExecuteContext(ctx); err != nil {
		log.Println("[ERROR]", err)
		stop()
		os.Exit(1)
	}
}

var ldflagsSoftwareVersion = "debug"
