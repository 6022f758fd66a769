package main

import (
	"github.com/mvh/mvh-sync/cmd"
)

func main() {
	cmd.Execute()
}
