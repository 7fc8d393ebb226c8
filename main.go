package main

import (
	"os"

	"github.com/nightowlcasino/logline/cmd"
	"go.uber.org/zap"
)

func main() {
	if err := cmd.Execute(); err != nil {
		zap.L().Error("failed to execute logline", zap.Error(err))
		os.Exit(1)
	}
}
