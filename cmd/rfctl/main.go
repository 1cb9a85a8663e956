// Command rfctl fits, evaluates, tunes and visualises binary random
// forests over CSV data. It replaces the teacher's package-level
// flag.* CLI with cobra subcommands, one per concern, since the
// teacher's single binary had no subcommands to separate.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logger = logrus.New()

func main() {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	root := &cobra.Command{
		Use:   "rfctl",
		Short: "Train, evaluate and visualise binary random forests",
	}

	root.AddCommand(newFitCommand())
	root.AddCommand(newPredictCommand())
	root.AddCommand(newTuneCommand())
	root.AddCommand(newDotCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
