package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/civicledger/govledger/src/api/analysis"
	"github.com/civicledger/govledger/src/api/config"
	"github.com/civicledger/govledger/src/api/realtime"
	"github.com/civicledger/govledger/src/api/store"
	"github.com/civicledger/govledger/src/api/webserver"
)

// snapshots wires topic names to the store's serialized collections for the
// subscribe-time push.
func snapshots(st *store.Store) realtime.SnapshotFunc {
	return func(topic string) (any, bool) {
		switch topic {
		case realtime.TopicPolicies:
			return st.ListPolicies(), true
		case realtime.TopicComplaints:
			return st.ListComplaints(), true
		case realtime.TopicProposals:
			return st.ListProposals(), true
		case realtime.TopicTransactions:
			return st.AllTransactions(), true
		default:
			return nil, false
		}
	}
}

func main() {
	cfg := config.Load()

	st := store.New(analysis.NewKeywordAnalyzer())
	if cfg.SeedData {
		store.Seed(st)
	}

	hub := realtime.NewHub(cfg.AllowedOrigin, snapshots(st))
	router := webserver.New(cfg, st, hub)

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("CivicLedger API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
