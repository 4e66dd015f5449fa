// SPDX-License-Identifier: Apache-2.0
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/term"

	"ocl/internal/config"
)

var version = "0.1.0"

var log = commonlog.GetLogger("ocl.cli")

// settings is the merged result of the config file and the command line.
type settings struct {
	config.Config
}

// errDiagnosed marks a failure whose diagnostics were already printed.
var errDiagnosed = errors.New("diagnostics reported")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errDiagnosed) {
			fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	s := &settings{Config: config.Default()}

	root := &cobra.Command{
		Use:           "ocl",
		Short:         "OCL lexer and parser toolchain",
		Long:          `ocl tokenizes, parses and checks Object Constraint Language sources`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load(cmd)
		},
	}

	root.PersistentFlags().String("config", "", "config file (default: nearest .ocl.toml or .ocl.yaml)")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Int("max-depth", config.Default().MaxDepth, "maximum expression nesting depth")
	root.PersistentFlags().CountP("verbose", "v", "increase log verbosity")

	root.AddCommand(newTokenizeCmd(s))
	root.AddCommand(newParseCmd(s))
	root.AddCommand(newCheckCmd(s))
	root.AddCommand(newReplCmd(s))

	return root
}

// load reads the config file and lets explicitly set flags override it.
func (s *settings) load(cmd *cobra.Command) error {
	flags := cmd.Flags()

	path, err := flags.GetString("config")
	if err != nil {
		return err
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return err
	}

	if flags.Changed("color") {
		if cfg.Color, err = flags.GetString("color"); err != nil {
			return err
		}
	}
	if flags.Changed("max-depth") {
		if cfg.MaxDepth, err = flags.GetInt("max-depth"); err != nil {
			return err
		}
	}
	if flags.Changed("verbose") {
		if cfg.LogVerbosity, err = flags.GetCount("verbose"); err != nil {
			return err
		}
	}
	if f := flags.Lookup("format"); f != nil && f.Changed {
		cfg.Format = f.Value.String()
	}
	if f := flags.Lookup("engine"); f != nil && f.Changed {
		cfg.Engine = f.Value.String()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.Config = cfg
	commonlog.Configure(cfg.LogVerbosity, nil)
	color.NoColor = !s.useColor(cmd.ErrOrStderr())
	if cfg.Path != "" {
		log.Infof("using config %s", cfg.Path)
	}
	return nil
}

// useColor resolves the color mode for output written to w.
func (s *settings) useColor(w io.Writer) bool {
	switch s.Color {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
