package main

import "mbo_model/pkg/cli"

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cli.SetBuildInfo(version, commit)
	cli.Execute()
}
