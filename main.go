package main

import "github.com/frahmantamala/integration-tracker/cmd"

func main() {
	cmd.Execute()
}
