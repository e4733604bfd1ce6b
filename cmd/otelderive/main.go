package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "otelderive",
		Short: "Derive OpenTelemetry attribute conversions for annotated Go types",
		Long: `otelderive generates Key, Value, StringValue and KeyValue conversions
into the OpenTelemetry attribute data model for Go types annotated with
//otel:derive directives. It is meant to be run from a go:generate line:

    //go:generate otelderive generate .`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
