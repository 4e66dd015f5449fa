// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"ocl/internal/config"
	"ocl/internal/lsp"
)

const lsName = "ocl"

var (
	version = "0.1.0"
	handler protocol.Handler
	log     = commonlog.GetLogger("ocl.lsp")
)

func main() {
	cmd := &cobra.Command{
		Use:          "ocl-lsp",
		Short:        "Run the OCL language server over stdio",
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runServer,
	}
	cmd.Flags().String("log-file", "", "write logs to this file instead of stderr")
	cmd.Flags().CountP("verbose", "v", "increase log verbosity")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbose") {
		if cfg.LogVerbosity, err = cmd.Flags().GetCount("verbose"); err != nil {
			return err
		}
	}
	logFile, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return err
	}
	if logFile != "" {
		commonlog.Configure(cfg.LogVerbosity, &logFile)
	} else {
		commonlog.Configure(cfg.LogVerbosity, nil)
	}

	oclHandler := lsp.NewOCLHandler(cfg.ParserOptions())

	handler = protocol.Handler{
		Initialize:                     oclHandler.Initialize,
		Initialized:                    oclHandler.Initialized,
		Shutdown:                       oclHandler.Shutdown,
		SetTrace:                       oclHandler.SetTrace,
		TextDocumentDidOpen:            oclHandler.TextDocumentDidOpen,
		TextDocumentDidChange:          oclHandler.TextDocumentDidChange,
		TextDocumentDidClose:           oclHandler.TextDocumentDidClose,
		TextDocumentCompletion:         oclHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: oclHandler.TextDocumentSemanticTokensFull,
		TextDocumentDocumentSymbol:     oclHandler.TextDocumentDocumentSymbol,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Infof("starting OCL language server %s", version)
	if cfg.Path != "" {
		log.Infof("using config %s", cfg.Path)
	}

	return s.RunStdio()
}
