// Command gigboard-fake serves the demo marketplace over HTTP so the client
// can be pointed at it with -url
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gigboard/internal/fakeapi"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8000", "Address to listen on")
	flag.Parse()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           fakeapi.New().Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	log.Printf("Demo marketplace on http://%s (users %s and %s, password %q)",
		*addr, fakeapi.DemoBuyer, fakeapi.DemoSeller, fakeapi.DemoPassword)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
}
