// cmd/metermon/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maxuser74/EnergyMeters/internal/api"
	"github.com/maxuser74/EnergyMeters/internal/config"
	"github.com/maxuser74/EnergyMeters/internal/poller"
	"github.com/maxuser74/EnergyMeters/internal/readings"
	"github.com/maxuser74/EnergyMeters/internal/registry"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: metermon <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)
	em := cfg.EnergyMeters

	if len(em.Meters) == 0 {
		log.Fatal("no usable meters after normalization")
	}

	// --------------------
	// Register table + shared state
	// --------------------

	table, err := registry.Load(em.RegistersFile)
	if err != nil {
		log.Fatalf("register table load failed: %v", err)
	}

	tables := registry.NewHolder(table)
	store := readings.NewStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Per-meter poll loops
	// --------------------

	runners := make([]*poller.Runner, 0, len(em.Meters))
	for _, m := range em.Meters {
		r := poller.Build(m, em.Poll, tables, store)
		runners = append(runners, r)
		go r.Run(ctx)
	}

	// --------------------
	// HTTP API
	// --------------------

	handler := &api.Handler{
		Store:  store,
		Tables: tables,
		Refresh: func() {
			for _, r := range runners {
				store.Put(r.PollOnce())
			}
		},
		RefreshMeter: func(id string) (readings.MeterReading, bool) {
			for _, r := range runners {
				if r.MeterID() != id {
					continue
				}
				rec := r.PollOnce()
				store.Put(rec)
				return rec, true
			}
			return readings.MeterReading{}, false
		},
		Reload: func() (int, error) {
			t, err := registry.Load(em.RegistersFile)
			if err != nil {
				return 0, err
			}
			tables.Swap(t)
			return t.Len(), nil
		},
	}

	srv := &http.Server{Addr: em.Listen, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("metermon: %d meters, %d registers, serving on %s",
		len(em.Meters), table.Len(), em.Listen)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server failed: %v", err)
	}
}
