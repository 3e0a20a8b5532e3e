// Command golden-cli is the operator CLI: submit a manual push_to_deploy
// run, query workflow status, cancel one, or bootstrap a host with
// "infra bootstrap". Built with spf13/cobra,
// replacing a hand-rolled os.Args switch with a proper subcommand tree.
package main

import (
	"fmt"
	"os"

	"github.com/skssmd/golden-ci/cmd/golden-cli/commands"
)

func main() {
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
