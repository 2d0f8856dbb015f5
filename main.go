package main

import (
	"github.com/TanmaySingh007/StayFinder/startup"
	"github.com/TanmaySingh007/StayFinder/startup/config"
)

func main() {
	cfg := config.NewConfig()
	server := startup.NewServer(cfg)
	server.Start()
}
