package main

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Adarsh1999/combine-files-gpt/cmd"
	"github.com/Adarsh1999/combine-files-gpt/pkg/logging"
	"github.com/Adarsh1999/combine-files-gpt/pkg/version"
)

const appName = "combinefiles"

func main() {
	// A .env file is optional; it can carry COMBINEFILES_DEV and
	// COMBINEIGNORE_GLOBAL for local setups.
	_ = godotenv.Load(".env")

	development := os.Getenv("COMBINEFILES_DEV") != ""
	logger, err := logging.Setup(development, appName, version.Version)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	execErr := cmd.NewRootCommand(logger).Execute()
	if execErr != nil {
		logger.Error("combinefiles failed", zap.Error(execErr))
	}

	// Check if stderr is a terminal or a regular file before attempting to
	// sync; syncing a closed TTY fails with "invalid argument".
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logger.Sync(); syncErr != nil {
			lowerErr := strings.ToLower(syncErr.Error())
			if !strings.Contains(lowerErr, "invalid argument") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}

	if execErr != nil {
		os.Exit(1)
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
