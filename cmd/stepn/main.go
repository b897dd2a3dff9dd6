package main

import (
	"github.com/spf13/cobra"

	"github.com/go-go-golems/stepn/cmd/stepn/cmds"
)

var version = "dev"

func main() {
	cobra.CheckErr(cmds.NewRootCmd(version).Execute())
}
