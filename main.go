package main

import (
	"os"

	"github.com/Nicolas-Barriere/pactole-sub001/src/commands"
	"github.com/Nicolas-Barriere/pactole-sub001/src/config"
	"github.com/Nicolas-Barriere/pactole-sub001/src/logger"
)

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
