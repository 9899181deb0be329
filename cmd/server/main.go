// cmd/server is the plain server entry point. It runs migrations on boot and
// serves HTTP; use the supplyco CLI for finer-grained control.
package main

import (
	"log"

	"github.com/shashiranjanraj/supplyco/internal/server"
	"github.com/shashiranjanraj/supplyco/pkg/database"
	"github.com/shashiranjanraj/supplyco/pkg/migration"

	_ "github.com/shashiranjanraj/supplyco/database/migrations"
)

func main() {
	hub, err := server.Boot()
	if err != nil {
		log.Fatal(err)
	}

	if err := migration.New(database.DB).Run(); err != nil {
		log.Fatal(err)
	}
	if err := server.Serve(hub); err != nil {
		log.Fatal(err)
	}
}
