package main

import (
	"bufio"
	"fmt"
	"log"
	"math/rand"
	"net"
	"os"
	"strconv"

	"golang.org/x/sync/errgroup"
)

func main() {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "localhost:4000"
	}
	clients := intEnv("CLIENTS", 5)
	count := intEnv("COUNT", 250000)
	terminate, _ := strconv.ParseBool(os.Getenv("TERMINATE"))

	var g errgroup.Group
	for i := 0; i < clients; i++ {
		g.Go(func() error {
			return send(addr, count)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("numbergen at=send err=%q\n", err)
	}
	log.Printf("numbergen at=send.finish clients=%d count=%d\n", clients, count)

	if terminate {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			log.Fatalf("numbergen at=terminate err=%q\n", err)
		}
		defer conn.Close()
		if _, err := fmt.Fprint(conn, "terminate\n"); err != nil {
			log.Fatalf("numbergen at=terminate err=%q\n", err)
		}
		log.Printf("numbergen at=terminate.sent\n")
	}
}

func send(addr string, count int) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	w := bufio.NewWriter(conn)
	for i := 0; i < count; i++ {
		if _, err := fmt.Fprintf(w, "%09d\n", rand.Intn(1_000_000_000)); err != nil {
			return err
		}
	}
	return w.Flush()
}

func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Fatalf("numbergen at=config key=%s err=%q\n", key, v)
	}
	return n
}
