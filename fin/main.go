package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/finsense/finsense/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// The GOOGLE_API_KEY may live in a .env file next to the statement.
	// A missing file is the normal case.
	godotenv.Load()

	complete.Complete("fin", completer())

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completer declares the shell completion tree.
func completer() *complete.Command {
	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"f":        predict.Files("*"),
			"currency": predict.Nothing,
			"rows":     predict.Nothing,
		},
	}
}
