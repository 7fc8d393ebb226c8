package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/nightowlcasino/logline/config"
	"github.com/nightowlcasino/logline/event"
	"github.com/nightowlcasino/logline/formatter"
	"github.com/nightowlcasino/logline/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const maxRecordBytes = 1 << 20

var ErrRecordTooLarge = errors.New("event record exceeds the maximum record size")

// formatCommand reads newline delimited JSON events and writes one log line
// per event to stdout.
func formatCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Format newline delimited JSON events from a file or stdin into log lines on stdout.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.SetLoggingDefaults()
			logger.Initialize("logline-format")
			defer logger.Flush()
			config.SetLoggingLevel()

			mf, err := newMessageFormatter()
			if err != nil {
				return fmt.Errorf("invalid formatter configuration - %w", err)
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			return formatStream(in, cmd.OutOrStdout(), mf, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any event is rejected or formatted with errors")

	return cmd
}

// formatStream formats every record of in. Rejected records, including
// those longer than maxRecordBytes, are logged and skipped. All problems are
// returned together once the input is drained, only in strict mode.
func formatStream(in io.Reader, out io.Writer, mf *formatter.MessageFormatter, strict bool) error {
	log := zap.L()

	r := bufio.NewReaderSize(in, 64*1024)
	w := bufio.NewWriter(out)
	defer w.Flush()

	var (
		errs   *multierror.Error
		lineNo int
	)
	for {
		record, oversized, err := readRecord(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read events - %w", err)
		}
		lineNo++

		if oversized {
			log.Warn("skipping event record", zap.Int("line", lineNo), zap.Error(ErrRecordTooLarge))
			errs = multierror.Append(errs, fmt.Errorf("line %d - %w", lineNo, ErrRecordTooLarge))
			continue
		}
		if len(record) == 0 {
			continue
		}

		evt, err := event.Decode(record)
		if err != nil {
			log.Warn("skipping event record", zap.Int("line", lineNo), zap.Error(err))
			errs = multierror.Append(errs, fmt.Errorf("line %d - %w", lineNo, err))
			continue
		}

		line, err := mf.Format(evt)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("line %d - %w", lineNo, err))
		}
		if line == "" {
			continue
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write log line - %w", err)
		}
	}

	if strict {
		return errs.ErrorOrNil()
	}
	return nil
}

// readRecord returns the next line of r without its line ending. A line
// longer than maxRecordBytes is drained up to its end and reported as
// oversized with no content.
func readRecord(r *bufio.Reader) ([]byte, bool, error) {
	var (
		record    []byte
		oversized bool
	)
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return nil, false, err
		}
		if !oversized {
			if len(record)+len(chunk) > maxRecordBytes {
				oversized = true
				record = nil
			} else {
				record = append(record, chunk...)
			}
		}
		if !isPrefix {
			return record, oversized, nil
		}
	}
}
