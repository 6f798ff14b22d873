// Command server exposes the solver over HTTP and WebSocket: a synchronous
// solve endpoint backed by a background job queue, a render endpoint for
// a human-readable board, and a progress feed for in-flight solves.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/aandres44/c04s/config"
	"github.com/aandres44/c04s/internal/searchqueue"
	"github.com/aandres44/c04s/position"
	"github.com/aandres44/c04s/render"
)

type solveRequest struct {
	Moves string `json:"moves"`
	Weak  bool   `json:"weak,omitempty"`
}

type solveResponse struct {
	Moves        string `json:"moves"`
	Score        int    `json:"score"`
	Nodes        int64  `json:"nodes"`
	Microseconds int64  `json:"microseconds"`
	Error        string `json:"error,omitempty"`
}

func main() {
	cfg := config.Get()
	hub := NewHub()
	queue := searchqueue.New(cfg, hub)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Post("/api/solve", func(w http.ResponseWriter, r *http.Request) {
		var req solveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		job := queue.Enqueue(req.Moves)
		if err := job.Wait(); err != nil {
			writeJSON(w, http.StatusBadRequest, solveResponse{Moves: req.Moves, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, solveResponse{
			Moves:        req.Moves,
			Score:        job.Score,
			Nodes:        job.NodesSeen,
			Microseconds: job.ElapsedTime.Microseconds(),
		})
	})

	r.Get("/api/render/{moves}", func(w http.ResponseWriter, r *http.Request) {
		moves := chi.URLParam(r, "moves")
		pos := position.New()
		consumed := pos.PlaySequence(moves)
		if consumed != len(moves) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid move sequence"})
			return
		}
		history := make([]int, len(moves))
		for i, c := range moves {
			history[i] = int(c-'1')
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(render.Render(&pos, history)))
	})

	r.Get("/ws/solve", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, w, r)
	})

	server := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Println("solver server listening on :8080")
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Printf("[server] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("[server] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[server] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[server] forced close failed: %v", closeErr)
		}
	}

	if runErr != nil {
		log.Printf("[server] exiting after server error: %v", runErr)
	}
}

func serveWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{send: make(chan []byte, 16)}
	hub.Register(client)

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(client)
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
