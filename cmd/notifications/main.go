package main

import (
	"log"

	"github.com/glimpsesocial/glimpse/cmd/notifications/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
