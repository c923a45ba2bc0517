package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
	"go.lsp.dev/jsonrpc2"

	"github.com/lfgparse/lfg"
	"github.com/lfgparse/lfg/cfg"
	"github.com/lfgparse/lfg/render"
	"github.com/lfgparse/lfg/solve"
)

type MainConfig struct {
	Main *cli.Command
}

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	return cli.NewCommandAt(&cfg.Main, "lfg").
		WithSynopsis("lfg <subcommand>").
		WithDescription("lfg parses tokenized sentences into LFG f-structures.").
		WithSubs(
			ParseCommand(cfg),
			ServeCommand(cfg),
			LSPCommand(cfg))
}

type ParseConfig struct {
	*MainConfig
	Parse   *cli.Command
	Workers int  `cli:"name=workers desc='max branches solved concurrently' default=4"`
	Color   bool `cli:"name=color desc='force colorized output'"`
}

func ParseCommand(mainCfg *MainConfig) *cli.Command {
	c := &ParseConfig{MainConfig: mainCfg, Workers: 4}
	opts, err := cli.StructOpts(c)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&c.Parse, "parse").
		WithSynopsis("parse [-workers N] token...").
		WithDescription("parse a tokenized sentence against the built-in demo grammar").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runParse(c, cc, args)
		})
}

func runParse(c *ParseConfig, cc *cli.Context, args []string) error {
	args, err := c.Parse.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: parse requires at least one token", cli.ErrUsage)
	}

	g, lex, err := demoGrammar()
	if err != nil {
		return err
	}
	parser := cfg.NewChartParser(g, lex.Symbols)
	engine := lfg.NewEngine(parser, g)
	engine.Options = solve.Options{Workers: c.Workers, Timeout: 5 * time.Second}

	results, err := engine.ParseTokens(context.Background(), args)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintf(cc.Out, "no admissible reading for %v\n", args)
		return nil
	}

	colors := (*render.Colors)(nil)
	if c.Color {
		colors = render.NewColors()
	} else if f, ok := cc.Out.(*os.File); ok {
		colors = render.AutoColors(f)
	}

	for i, r := range results {
		fmt.Fprintf(cc.Out, "--- parse %d (%d f-structure(s)) ---\n", i+1, len(r.FStructures))
		for _, fs := range r.FStructures {
			if err := render.Pretty(cc.Out, fs, colors); err != nil {
				return err
			}
			fmt.Fprintln(cc.Out)
		}
	}
	return nil
}

type ServeConfig struct {
	*MainConfig
	Serve *cli.Command
}

// ServeCommand starts a gops agent and idles, the way docdServe does in
// the teacher's cmd/o — useful for attaching a profiler to a long-lived
// grammar-serving process.
func ServeCommand(mainCfg *MainConfig) *cli.Command {
	c := &ServeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&c.Serve, "serve").
		WithSynopsis("serve").
		WithDescription("idle while exposing a gops diagnostics endpoint").
		WithRun(func(cc *cli.Context, args []string) error {
			if err := agent.Listen(agent.Options{}); err != nil {
				fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
			}
			fmt.Fprintln(cc.Out, "lfg serve: gops listening, ctrl-c to exit")
			select {}
		})
}

type LSPConfig struct {
	*MainConfig
	LSP *cli.Command
}

// LSPCommand speaks LSP over stdio and reports grammar/parse diagnostics
// for whatever document the client has open, the way the teacher's
// cmd/tony-lsp reports tony-format syntax diagnostics.
func LSPCommand(mainCfg *MainConfig) *cli.Command {
	c := &LSPConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&c.LSP, "lsp").
		WithSynopsis("lsp").
		WithDescription("run a grammar-diagnostics language server over stdio").
		WithRun(func(cc *cli.Context, args []string) error {
			stream := jsonrpc2.NewStream(stdioRWC{})
			conn := jsonrpc2.NewConn(stream)

			srv, err := NewServer(conn)
			if err != nil {
				return err
			}
			conn.Go(context.Background(), srv.Handle)
			<-conn.Done()
			return conn.Err()
		})
}

// stdioRWC adapts stdin/stdout to io.ReadWriteCloser for jsonrpc2.NewStream.
type stdioRWC struct{}

func (stdioRWC) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioRWC) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdioRWC) Close() error {
	_ = os.Stdin.Close()
	return os.Stdout.Close()
}
