/*
NaiveSystems Analyze - A tool for static code analysis
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Command misra_gcs computes a MISRA Guideline Compliance Summary from the
// output of a static analysis tool.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

// errJobFailed makes the process exit with 1 after the report is out.
var errJobFailed = errors.New("job failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "misra_gcs",
		Short:         "MISRA Guideline Compliance Summary from static analysis warnings",
		SilenceUsage:  true,
		SilenceErrors: true,
		// cobra has already set the glog flags; glog only honors them, log_dir
		// included, once the standard flag set counts as parsed. Do not call
		// any logging functions of glog before this.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flag.Parsed() {
				return nil
			}
			return flag.CommandLine.Parse(nil)
		},
	}
	// glog registers its flags on the standard flag set
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	root.AddCommand(newReportCmd(), newParsersCmd(), newRulesetsCmd())
	return root
}

func main() {
	err := newRootCmd().Execute()
	glog.Flush()
	if err == nil {
		return
	}
	if !errors.Is(err, errJobFailed) {
		fmt.Fprintln(os.Stderr, "misra_gcs:", err)
	}
	os.Exit(1)
}
