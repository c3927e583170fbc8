package main

import (
	"flag"

	"go-clinic-access/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", ".env", "path to the .env configuration file")
	flag.Parse()

	// Initialize application with all dependencies
	app, err := bootstrap.New(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	// Run the application
	app.Run()
}
