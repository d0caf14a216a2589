package main

import (
	"os"

	"github.com/nmsltll12138/pathology-quiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
