package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"vapredict/autopsy"
	"vapredict/config"
	"vapredict/logger"
)

func main() {
	modelPath := flag.String("model_path", config.DefaultModelPath, "serialized voting ensemble")
	recordPath := flag.String("record", "-", "health record JSON file, - for stdin")
	verbose := flag.Bool("v", false, "debug logging to stderr")
	flag.Parse()

	if err := run(*modelPath, *recordPath, *verbose, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(modelPath, recordPath string, verbose bool, stdin io.Reader, stdout io.Writer) error {
	lg := zap.NewNop()
	if verbose {
		lg = logger.New(logger.Config{Level: "debug", Format: "console"})
		defer lg.Sync()
	}

	payload, err := readRecord(recordPath, stdin)
	if err != nil {
		return fmt.Errorf("failed to read record: %w", err)
	}
	record, err := autopsy.DecodeHealthData(payload)
	if err != nil {
		return err
	}

	predictor := autopsy.LoadPredictor(modelPath, lg)
	result, err := predictor.Predict(context.Background(), record)
	if err != nil {
		return errors.New(autopsy.Detail(err))
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func readRecord(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
