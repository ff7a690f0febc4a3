package main

import (
	"fmt"
	"os"

	fcolor "github.com/fatih/color"
	"github.com/metaview-project/metaview/cmd/metaview/log"
	"github.com/metaview-project/metaview/cmd/metaview/option"
	"github.com/metaview-project/metaview/cmd/metaview/server"
	"github.com/spf13/cobra"
)

var program = "metaview"

// metaviewVersion is overridden at build time via -ldflags.
var metaviewVersion = "devel"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %s\n", program, err)
		os.Exit(1)
	}
}

func run() error {
	var serverOpt = option.Server{}

	var cmdStart = &cobra.Command{
		Use:   "start",
		Short: "Start the introspection server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initColor(); err != nil {
				return err
			}
			log.Init(os.Stderr, serverOpt.Debug, serverOpt.Trace)
			return server.Start(&serverOpt)
		},
	}
	cmdStart.Flags().StringVarP(&serverOpt.ConfigFile, "config", "c", "", "Configuration file")
	cmdStart.Flags().StringVar(&serverOpt.Listen, "listen", "", "Address to listen on (default is a Unix socket)")
	cmdStart.Flags().StringVar(&serverOpt.Port, "port", "", "Port to listen on")
	cmdStart.Flags().BoolVar(&serverOpt.Debug, "debug", false, "Enable debug messages")
	cmdStart.Flags().BoolVar(&serverOpt.Trace, "trace", false, "Enable extremely verbose messages")

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%s version %s\n", program, metaviewVersion)
			return nil
		},
	}

	var rootCmd = &cobra.Command{
		Use:           program,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.AddCommand(cmdStart, cmdVersion)
	return rootCmd.Execute()
}

func initColor() error {
	switch os.Getenv("METAVIEW_COLOR") {
	case "always":
		fcolor.NoColor = false
	case "never":
		fcolor.NoColor = true
		log.DisableColor = true
	case "auto", "":
		// Color is enabled when the log writer is a terminal.
	default:
		return fmt.Errorf("invalid value for METAVIEW_COLOR")
	}
	return nil
}
