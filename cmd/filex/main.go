package main

import (
	"fmt"
	"os"

	"github.com/Abraxas-365/filex/cmd/filex/cmd"
	"github.com/Abraxas-365/filex/errx"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errx.Print(err))
		os.Exit(1)
	}
}
