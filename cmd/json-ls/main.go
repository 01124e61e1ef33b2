// Command json-ls is a JSON language server speaking LSP over stdio.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/blvp/json-ls/internal/server"
)

// version is set during the build via ldflags.
var version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "json-ls",
		Short: "JSON language server",
		Long: "Language server for JSON documents, driven by the schema each " +
			"document declares in its \"$schema\" member.",
		Version:      version,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			configureLogging()
			log := commonlog.GetLogger("main")
			log.Infof("starting json-ls %s", version)
			return server.NewServer(version).RunStdio()
		},
	}
	cmd.Flags().BoolP("version", "V", false, "print the version and exit")
	cmd.SetVersionTemplate("json-ls {{.Version}}\n")
	return cmd
}

// Logging goes to stderr, or to a file when JSON_LS_LOG_FILE is set; stdout
// carries the protocol and must stay clean.
func configureLogging() {
	verbosity := 0
	switch os.Getenv("JSON_LS_LOG") {
	case "debug":
		verbosity = 2
	case "info":
		verbosity = 1
	}

	var path *string
	if file := os.Getenv("JSON_LS_LOG_FILE"); file != "" {
		path = &file
	}
	commonlog.Configure(verbosity, path)
}
