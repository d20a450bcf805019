package main

import "github.com/Tiliavir/trivial-work-ledger/cmd"

func main() {
	cmd.Execute()
}
