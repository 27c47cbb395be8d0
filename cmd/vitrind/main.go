package main

import (
	"io"
	"log"
	"os"

	"vitrin/internal/config"
	"vitrin/internal/devserver"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := devserver.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := devserver.New(db)
	log.Printf("[vitrind] listening on :%s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
