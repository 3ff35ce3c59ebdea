package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	lmlerrors "github.com/lmllang/lml/pkg/lml/errors"
	"github.com/lmllang/lml/pkg/lml/parser"
	"github.com/lmllang/lml/pkg/lml/repl"
	"github.com/lmllang/lml/pkg/lml/skin"
	"github.com/lmllang/lml/pkg/lml/term"
	"github.com/lmllang/lml/pkg/lml/watch"
	"github.com/lmllang/lml/pkg/logging"
)

var (
	verbosity    int
	skinFile     string
	templatesDir string
	docArgs      []string
	treeOutput   bool

	rootCmd = &cobra.Command{
		Use:   "lml",
		Short: "Parse and render LML templates",
		Long: `lml parses LML markup templates into widget trees and renders them
in the terminal. Templates can reference document arguments, import
other templates, and define new tags with macros.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&skinFile, "skin", "", "Skin YAML file with widget styles")
	rootCmd.PersistentFlags().StringVar(&templatesDir, "templates", "", "Directory searched by classpath imports")
	rootCmd.PersistentFlags().StringArrayVar(&docArgs, "arg", nil, "Document argument as name=value (repeatable)")

	renderCmd.Flags().BoolVar(&treeOutput, "tree", false, "Print the widget tree instead of rendered output")
	watchCmd.Flags().BoolVar(&treeOutput, "tree", false, "Print the widget tree instead of rendered output")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// newSession builds a parser session from the persistent flags.
func newSession() (*parser.Parser, error) {
	var opts []parser.Option
	if skinFile != "" {
		sk, err := skin.Load(skinFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parser.WithSkin(sk))
	}
	if templatesDir != "" {
		opts = append(opts, parser.WithClasspath(os.DirFS(templatesDir)))
	}
	p := parser.New(opts...)
	for _, arg := range docArgs {
		name, value, found := strings.Cut(arg, "=")
		if !found {
			return nil, fmt.Errorf("malformed --arg %q: expected name=value", arg)
		}
		p.SetArgument(name, value)
	}
	return p, nil
}

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Parse a template file and render it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newSession()
		if err != nil {
			return err
		}
		roots, err := p.ParseFile(args[0])
		if err != nil {
			return renderError(err)
		}
		for _, warning := range p.Errors() {
			fmt.Fprintln(cmd.ErrOrStderr(), warning.PrettyString())
		}
		if treeOutput {
			fmt.Fprint(cmd.OutOrStdout(), term.Outline(roots))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), term.New(p.Skin()).RenderAll(roots))
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Parse template files and report every problem",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		problems := 0
		for _, path := range args {
			p, err := newSession()
			if err != nil {
				return err
			}
			if _, err := p.ParseFile(path); err != nil {
				problems++
				fmt.Fprintln(cmd.ErrOrStderr(), renderError(err).Error())
				continue
			}
			for _, warning := range p.Errors() {
				problems++
				fmt.Fprintln(cmd.ErrOrStderr(), path+": "+warning.String())
			}
			if len(p.Errors()) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), path+": OK")
			}
		}
		if problems > 0 {
			return fmt.Errorf("%d problem(s) found", problems)
		}
		return nil
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive template console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newSession()
		if err != nil {
			return err
		}
		repl.Start(cmd.OutOrStdout(), p, version)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Render a template file and re-render it on every change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		render := func(path string) {
			p, err := newSession()
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return
			}
			roots, err := p.ParseFile(path)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), renderError(err).Error())
				return
			}
			for _, warning := range p.Errors() {
				fmt.Fprintln(cmd.ErrOrStderr(), warning.PrettyString())
			}
			if treeOutput {
				fmt.Fprint(out, term.Outline(roots))
			} else {
				fmt.Fprintln(out, term.New(p.Skin()).RenderAll(roots))
			}
		}

		render(args[0])
		w, err := watch.New(args[0], watch.DefaultDebounce, render)
		if err != nil {
			return err
		}
		defer w.Stop()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Fprintln(cmd.ErrOrStderr(), "Watching", args[0], "(Ctrl+C to stop)")
		<-ctx.Done()
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lml version %s\n", version)
	},
}

// renderError prefers the structured multi-line form for template
// errors.
func renderError(err error) error {
	if le, ok := err.(*lmlerrors.Error); ok {
		return fmt.Errorf("%s", le.PrettyString())
	}
	return err
}
