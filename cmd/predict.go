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

var (
	predictModelDir string
	predictOut      string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run a serialized model over the configured dataset",
	RunE:  runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&predictModelDir, "model-dir", "artifacts", "directory holding the serialized model")
	predictCmd.Flags().StringVar(&predictOut, "out", "predictions.csv", "output CSV file")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
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
			logger.New("predict-command").Errorf("service close: %v", err)
		}
	}()

	return svc.Predict(ctx, predictModelDir, predictOut)
}
