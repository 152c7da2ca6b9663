package main

import (
	"fmt"
	"os"

	"avinya/fin-pulse/cmd/batch"
	"avinya/fin-pulse/cmd/categories"
	"avinya/fin-pulse/cmd/categorize"
	"avinya/fin-pulse/cmd/check"
	"avinya/fin-pulse/cmd/knowledge"
	"avinya/fin-pulse/cmd/parse"
	"avinya/fin-pulse/cmd/process"
	"avinya/fin-pulse/cmd/reset"
	"avinya/fin-pulse/cmd/root"
	"avinya/fin-pulse/cmd/train"
	"avinya/fin-pulse/cmd/voice"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(check.Cmd)
	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(voice.Cmd)
	root.Cmd.AddCommand(process.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(train.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(knowledge.Cmd)
	root.Cmd.AddCommand(reset.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
