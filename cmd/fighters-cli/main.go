package main

import (
	"fighterdata/cmd/fighters-cli/commands"
	"fighterdata/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
