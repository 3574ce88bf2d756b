package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	cli "github.com/opage-dev/opage/internal/cli"
)

func main() {
	root := &cobra.Command{
		Use:   "opage",
		Short: "Build a resolved client IR from OpenAPI specs",
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var opts cli.Options

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Resolve schemas and model operations into an IR",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunGenerate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to opage.yaml config")
	cmd.Flags().StringVar(&opts.Spec, "spec", "", "OpenAPI spec file or URL (overrides config)")
	cmd.Flags().StringVar(&opts.OutDir, "out", "", "Output directory (overrides config)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable trace logging")
	cmd.Flags().BoolVar(&opts.JSONLog, "json-log", false, "Emit logs as JSON")

	return cmd
}

func newValidateCmd() *cobra.Command {
	var opts cli.Options

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunValidate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to opage.yaml config")
	cmd.Flags().StringVar(&opts.Spec, "spec", "", "OpenAPI spec file or URL")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable trace logging")

	return cmd
}
