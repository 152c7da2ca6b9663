// Package batch handles batch processing of message files
package batch

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"avinya/fin-pulse/cmd/root"
	"avinya/fin-pulse/internal/common"
	"avinya/fin-pulse/internal/fileutils"
	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/models"
)

var (
	inputFile  string
	outputFile string
	source     string
	voiceMode  bool
	paragraphs bool
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process a file of messages",
	Long: `Batch process a file of messages and write one CSV row per message.

Messages are read one per line, or separated by blank lines with
--paragraphs. They are processed concurrently (batch.workers) and written in
input order. With --voice every message is interpreted as a spoken expense.

Example:
  fin-pulse batch -i sms.txt -o candidates.csv
  cat notes.txt | fin-pulse batch --voice`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "-", "Input file (- for stdin)")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "-", "Output CSV file (- for stdout)")
	Cmd.Flags().StringVarP(&source, "source", "s", "", "Package name the messages came from")
	Cmd.Flags().BoolVar(&voiceMode, "voice", false, "Interpret messages as spoken expenses")
	Cmd.Flags().BoolVar(&paragraphs, "paragraphs", false, "Messages are separated by blank lines")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	logger := c.GetLogger().WithFields(
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile},
	)
	started := time.Now()

	mode := fileutils.Lines
	if paragraphs {
		mode = fileutils.Paragraphs
	}
	var messages []fileutils.Message
	if inputFile == "-" {
		messages, err = fileutils.ReadMessages(cmd.InOrStdin(), mode)
	} else {
		messages, err = fileutils.ReadMessagesFile(inputFile, mode)
	}
	if err != nil {
		return err
	}
	logger.Info("Read messages", logging.Field{Key: logging.FieldCount, Value: len(messages)})

	out := cmd.OutOrStdout()
	if outputFile != "-" {
		w, err := fileutils.CreateOutput(outputFile)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := w.Close(); cerr != nil {
				logger.WithError(cerr).Warn("Failed to close output file")
			}
		}()
		out = w
	}

	processor := c.GetBatchProcessor()
	var stats models.ProcessingStats
	modeName := "messages"
	if voiceMode {
		modeName = "voice"
		rows, s, err := processor.ProcessUtterances(cmd.Context(), messages)
		if err != nil {
			return fmt.Errorf("batch processing failed: %w", err)
		}
		stats = s
		if err := common.WriteCSV(out, rows); err != nil {
			return err
		}
	} else {
		rows, s, err := processor.ProcessMessages(cmd.Context(), messages, source)
		if err != nil {
			return fmt.Errorf("batch processing failed: %w", err)
		}
		stats = s
		if err := common.WriteCSV(out, rows); err != nil {
			return err
		}
	}

	stats.LogSummary(logger.WithField(logging.FieldDuration, time.Since(started).String()), modeName)
	return nil
}
