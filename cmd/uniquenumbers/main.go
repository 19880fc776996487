package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fanatic/uniquenumbers/numbers"
	"github.com/fanatic/uniquenumbers/sink"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("uniquenumbers at=config err=%q\n", err)
	}

	cfg, err := numbers.ConfigFromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("uniquenumbers at=config err=%q\n", err)
	}
	ctx := context.Background()

	out, err := sink.Open(ctx, os.Getenv("LOG_SINK"))
	if err != nil {
		log.Fatalf("uniquenumbers at=sink err=%q\n", err)
	}

	s, err := numbers.NewServer(ctx, cfg, out)
	if err != nil {
		out.Close()
		log.Fatalf("uniquenumbers at=server err=%q\n", err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		for sig := range c {
			log.Printf("uniquenumbers at=server.exiting sig=%q\n", sig.String())
			s.Close()
		}
	}()

	<-s.Done()
	log.Printf("uniquenumbers at=server.finish\n")
}
