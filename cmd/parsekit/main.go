package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/deepnoodle-ai/parsekit/parser"
	"github.com/deepnoodle-ai/parsekit/token"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "parsekit [file]",
	Short:         "Parse C-style source text with the staged-rewrite engine",
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringP("code", "c", "", "Code to parse")
	rootCmd.Flags().Bool("stdin", false, "Read code from stdin")
	rootCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
	rootCmd.Flags().Bool("short", false, "Short diagnostics without source context")
	rootCmd.Flags().Bool("no-color", false, "Disable colored output")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().Int("line-offset", 0, "Base line number for positions")
	viper.BindPFlags(rootCmd.Flags())
	viper.BindEnv("no-color", "NO_COLOR")
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// getCode determines the input source: --code, --stdin, or a file argument.
func getCode(cmd *cobra.Command, args []string) (path, code string, err error) {
	codeFlagSet := cmd.Flags().Lookup("code").Changed
	stdinFlagSet := cmd.Flags().Lookup("stdin").Changed
	pathSupplied := len(args) > 0
	if (pathSupplied && (codeFlagSet || stdinFlagSet)) || (codeFlagSet && stdinFlagSet) {
		return "", "", errors.New("multiple input sources specified")
	}
	switch {
	case stdinFlagSet:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return "<stdin>", string(data), nil
	case pathSupplied:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return args[0], string(data), nil
	case codeFlagSet:
		return "<code>", viper.GetString("code"), nil
	}
	return "", "", errors.New("no input provided")
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	path, code, err := getCode(cmd, args)
	if err != nil {
		return err
	}

	useColor := !viper.GetBool("no-color") && isatty.IsTerminal(os.Stdout.Fd())
	color.NoColor = !useColor

	doc := token.NewDocument(path, code)
	logger.Debug().Str("path", path).Int("chars", len(code)).Msg("parsing document")
	root, diags := parser.Parse(doc, parser.Default(),
		parser.WithLineOffset(viper.GetInt("line-offset")))
	logger.Debug().Int("diagnostics", len(diags)).Msg("parse complete")

	if viper.GetString("output") == "json" {
		if err := printJSON(root, diags, useColor); err != nil {
			return err
		}
	} else {
		printTree(root)
		printDiagnostics(diags, viper.GetBool("short"))
	}

	if len(diags) > 0 {
		return fmt.Errorf("found %d parse problems", len(diags))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed, color.Bold).Sprint("error: ")+err.Error())
		os.Exit(1)
	}
}
