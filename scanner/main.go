package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arbscan/solana-arbscan/config"
	"github.com/arbscan/solana-arbscan/scanner/app"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGABRT)
	go shutdown(cancel, quit)

	if len(os.Args) == 2 {
		os.Chdir(os.Args[1])
	}
	workspace, _ := os.Getwd()
	fmt.Printf("work space: %s\n", workspace)

	cfg, err := config.Load(config.ConfigFile)
	if err != nil {
		panic(err)
	}

	t := time.Now()
	dir := fmt.Sprintf("./%s_log/", t.Format("2006-01-02"))
	os.Mkdir(dir, os.ModePerm)
	config.LogPath = dir

	at := app.NewApp(ctx, cfg)
	at.Service()
}

func shutdown(cancel context.CancelFunc, quit <-chan os.Signal) {
	osCall := <-quit
	fmt.Printf("System call: %v, scanner is shutting down......\n", osCall)
	cancel()
}
