package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/poki/mongodb-filter-to-sql/filter"
)

func runConvert(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	data, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		logger.Debug("failed to read filter.", "path", path, "error", err)
		return fail(formatter, ExitCommandError, ErrCodeIO, "failed to read filter", err, nil)
	}

	format := detectFormat(opts.InputFormat, path)
	logger.Debug("read filter.", "path", path, "bytes", len(data), "format", format)

	var stage filter.Value
	if format == "yaml" {
		stage, err = filter.ParseYAML(data)
	} else {
		stage, err = filter.Parse(data)
	}
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeDecode, "invalid filter input", err, nil)
	}

	options := []filter.Option{filter.WithMaxDepth(opts.MaxDepth)}
	if opts.Strict {
		options = append(options, filter.WithStrictOperators())
	}
	if opts.NegateNor {
		options = append(options, filter.WithNegatedNor())
	}
	converter := filter.NewConverter(options...)
	logger.Debug("converting filter.", "converter", converter.String())

	where, err := converter.ConvertValue(stage)
	if err != nil {
		var details *ErrorDetails
		var ferr *filter.Error
		if errors.As(err, &ferr) {
			details = &ErrorDetails{Kind: ferr.Kind.String(), Key: ferr.Key}
			if ferr.Value != nil {
				details.Value = filter.Render(ferr.Value)
			}
		}
		logger.Debug("conversion failed.", "error", err)
		return fail(formatter, ExitFailure, ErrCodeTranslate, "failed to translate filter", err, details)
	}

	return formatter.Success(ConvertResult{Where: where})
}

// fail writes the error and returns the matching ExitError.
func fail(f *OutputFormatter, exitCode int, code, message string, err error, details *ErrorDetails) error {
	text := message
	if err != nil {
		text = message + ": " + err.Error()
	}
	var d any
	if details != nil {
		d = details
	}
	if werr := f.Error(code, text, d); werr != nil {
		return WrapExitError(ExitCommandError, "failed to write output", werr)
	}
	return WrapExitError(exitCode, message, err)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func detectFormat(inputFormat, path string) string {
	if inputFormat != "auto" {
		return inputFormat
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
