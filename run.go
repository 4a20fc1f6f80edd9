package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/espresso-lang/espresso/lib/ast"
	"github.com/espresso-lang/espresso/lib/interpreter"
	"github.com/espresso-lang/espresso/lib/parser"
	"github.com/espresso-lang/espresso/lib/project"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "run",
		Usage:     "Run an Espresso file",
		Category:  "interpret",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input-str",
				Aliases: []string{"s"},
				Usage:   "Run a string instead of a file",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write runtime output to a file instead of stdout",
			},
			&cli.StringFlag{
				Name:    "tree",
				Aliases: []string{"t"},
				Usage:   "Write the diagnostic statement trees to a file",
			},
			&cli.StringFlag{
				Name:    "errors",
				Aliases: []string{"e"},
				Usage:   "Write runtime errors to a file instead of stderr",
			},
			&cli.BoolFlag{
				Name:    "dump-ast",
				Aliases: []string{"d"},
				Usage:   "Dump the parse tree to ast_dump.json",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "The directory containing the project config",
			},
		},
		Action: run,
	}, &cli.Command{
		Name:      "parse",
		Usage:     "Parse an Espresso file and print the parse tree",
		Category:  "interpret",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input-str",
				Aliases: []string{"s"},
				Usage:   "Parse a string instead of a file",
			},
			&cli.BoolFlag{
				Name: "ebnf",
				Usage: "Print the EBNF grammar for Espresso. " +
					"Useful for debugging the parser.",
			},
		},
		Action: parse,
	})
}

func run(c *cli.Context) error {
	filename := c.Args().First()
	outPath := c.String("output")
	treePath := c.String("tree")
	errPath := c.String("errors")

	if filename == "" && c.String("input-str") == "" {
		confDir := c.String("config")
		if confDir == "" {
			confDir = "."
		}
		conf, err := project.Load(confDir)
		if err != nil {
			return cli.Exit(color.RedString("Error: No file specified"), 1)
		}
		filename = conf.Main
		if outPath == "" {
			outPath = conf.Outputs.Runtime
		}
		if treePath == "" {
			treePath = conf.Outputs.Tree
		}
		if errPath == "" {
			errPath = conf.Outputs.Errors
		}
	}

	var prog *parser.Program
	var err error
	if s := c.String("input-str"); s != "" {
		prog, err = parser.ParseString("", s)
	} else {
		prog, err = parser.ParseFile(filename)
	}
	if err != nil {
		return cli.Exit(color.RedString("Error parsing: %s", err), 1)
	}

	if c.Bool("dump-ast") {
		if err := dumpAST(prog); err != nil {
			return cli.Exit(color.RedString("Error dumping AST: %s", err), 1)
		}
	}

	builder := parser.NewBuilder(ast.NewSymbolTable())
	program, err := builder.Program(prog)
	if err != nil {
		return cli.Exit(color.RedString("Error building syntax tree: %s", err), 1)
	}

	out, closeOut, err := openSink(outPath, os.Stdout)
	if err != nil {
		return cli.Exit(color.RedString("Error opening output: %s", err), 1)
	}
	defer closeOut()

	tree, closeTree, err := openSink(treePath, nil)
	if err != nil {
		return cli.Exit(color.RedString("Error opening tree output: %s", err), 1)
	}
	defer closeTree()

	errs, closeErrs, err := openSink(errPath, os.Stderr)
	if err != nil {
		return cli.Exit(color.RedString("Error opening error output: %s", err), 1)
	}
	defer closeErrs()

	interpreter.New(interpreter.NewStore(), out, tree, errs).Run(program)
	return nil
}

func parse(c *cli.Context) error {
	if c.Bool("ebnf") {
		fmt.Println(parser.Parser().String())
		return nil
	}

	var prog *parser.Program
	var err error
	if s := c.String("input-str"); s != "" {
		prog, err = parser.ParseString("", s)
	} else {
		filename := c.Args().First()
		if filename == "" {
			return cli.Exit(color.RedString("Error: No file specified"), 1)
		}
		prog, err = parser.ParseFile(filename)
	}
	if err != nil {
		return cli.Exit(color.RedString("Error parsing: %s", err), 1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(prog); err != nil {
		return cli.Exit(color.RedString("Error encoding AST: %s", err), 1)
	}
	return nil
}

func dumpAST(prog *parser.Program) error {
	astFile, err := os.Create("ast_dump.json")
	if err != nil {
		return err
	}
	defer astFile.Close()

	encoder := json.NewEncoder(astFile)
	encoder.SetIndent("", "  ")
	return encoder.Encode(prog)
}

// openSink resolves one output channel: a file when a path is given, the
// fallback writer otherwise. A nil fallback means the channel is discarded.
func openSink(path string, fallback io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return fallback, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
