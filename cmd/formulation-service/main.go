package main

import (
	"os"

	"github.com/ionwell/formulation-service/formulationservice"
)

func main() {
	if err := formulationservice.Run(); err != nil {
		os.Exit(1)
	}
}
