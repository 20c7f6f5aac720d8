package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kfarnes/mast/app"
	"github.com/kfarnes/mast/config"
	"github.com/kfarnes/mast/infra/logger"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the configured model and serialize it",
	RunE:  runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("train-command").Errorf("service close: %v", err)
		}
	}()

	dir, err := svc.Train(ctx)
	if err != nil {
		return err
	}
	cmd.Printf("model written to %s\n", dir)
	return nil
}
