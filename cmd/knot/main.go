package main

import (
	"context"
	"flag"
	"os"
	"strconv"

	"github.com/fine-structures/knots/libknot"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

type cliState struct {
	configPath string
	cfg        libknot.Config
}

func main() {
	err := newRootCmd().ExecuteContext(context.Background())
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	st := &cliState{}

	root := &cobra.Command{
		Use:          "knot",
		Short:        "knot converts, canonizes, and catalogs knot diagrams",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			st.cfg, err = libknot.LoadConfig(st.configPath)
			if err != nil {
				return err
			}
			initLogging(st.cfg.Verbosity)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&st.configPath, "config", "", "TOML config file (KNOT_* env vars override it)")

	root.AddCommand(st.runCommand())
	root.AddCommand(st.canonizeCommand())
	root.AddCommand(st.invariantsCommand())
	root.AddCommand(st.renderCommand())
	root.AddCommand(st.catalogCommand())
	return root
}

func initLogging(verbosity int) {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", strconv.Itoa(verbosity))
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})
}
