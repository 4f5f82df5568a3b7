package main

import (
	"os"
	"portfoliorisk/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
