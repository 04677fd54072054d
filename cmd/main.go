package main

import (
	"clinic-booking-api/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to start clinic booking API: %v", err)
	}

	app.Run()
}
