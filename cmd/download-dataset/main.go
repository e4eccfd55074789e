package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/BaizeAI/download-dataset/internal/cmd/downloaddataset"
	"github.com/BaizeAI/download-dataset/pkg/log"
)

func main() {
	log.InitEngine(&log.Config{
		Output: os.Getenv("DOWNLOAD_DATASET_LOG_OUTPUT"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := downloaddataset.NewCommand()
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		downloaddataset.HandleError(err)
	}
}
