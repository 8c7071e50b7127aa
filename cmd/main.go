package main

import (
	"github.com/sirupsen/logrus"

	"staffdir/internal/app"
)

func main() {
	app, err := app.NewApp()
	if err != nil {
		logrus.Fatal(err)
	}

	app.Run()
}
