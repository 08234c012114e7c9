// ABOUTME: Entry point for the askbob CLI
// ABOUTME: Terminal client for the AskBob project tracker

package main

import (
	"fmt"
	"os"

	"github.com/reemkandil/askbob-project-mgmt/cmd"
	"github.com/reemkandil/askbob-project-mgmt/internal/logger"
)

func main() {
	logger.Init()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
