package main

import (
	"os"

	"github.com/irislab/irismapper-admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
