package main

import "github.com/cmmoran/phpmodelgen/cmd"

func main() {
	cmd.Execute()
}
