package main

import (
	"os"

	duetcmder "github.com/papercomputeco/duet/cmd/duet"
)

func main() {
	cmd := duetcmder.NewDuetCmd()
	cmd.SetArgs(duetcmder.NormalizeArgs(cmd, os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
