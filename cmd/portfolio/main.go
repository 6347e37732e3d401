// Command portfolio serves the portfolio shell and contact endpoint. Settings
// come from the environment, optionally loaded from a .env file.
package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"

	"github.com/briancoit/starfield/server"
)

func main() {
	s, err := server.New(server.ConfigFromEnv())
	if err != nil {
		log.Fatal(err)
	}
	if err := s.Run(); err != nil {
		log.Fatal(err)
	}
}
