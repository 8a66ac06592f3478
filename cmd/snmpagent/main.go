package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"snmpagent/internal/commands"
	"snmpagent/internal/ui"
)

// VERSION is set during build via ldflags
var VERSION string

func main() {
	version := VERSION
	if version == "" {
		version = "dev"
	}

	rootCmd := commands.NewRootCmd(viper.GetViper(), version)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.RenderStatus("error", err.Error()))
		os.Exit(1)
	}
}
