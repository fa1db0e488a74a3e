package main

import "github.com/kaleido-io/docstore/cmd"

// Each sample from the document store walkthrough is a subcommand of one
// executable rather than a separate program, so they share configuration and
// credentials handling.
func main() {
	cmd.Execute()
}
