// Package http serves the two-tab household book: entry form, calendar
// and list views, and the delete action. Rendering is server-side with
// HTMX-style partial swaps.
package http

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/beom0515/beom-jyeon-book/internal/ledger"
	applog "github.com/beom0515/beom-jyeon-book/internal/log"
	"github.com/beom0515/beom-jyeon-book/web"
)

type Server struct {
	http.Server
	templates *template.Template
	ledgers   *ledger.Store

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

func NewServer(addr string, ledgers *ledger.Store, logger *applog.Logger) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"amount": formatAmount,
	}).ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		templates:   tmpl,
		ledgers:     ledgers,
		rateLimiter: newRateLimiter(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ledger/", s.handleLedger)
	mux.HandleFunc("/calendar/", s.handleCalendar)
	mux.HandleFunc("/summary/household", s.handleHouseholdSummary)
	mux.HandleFunc("/summary/", s.handleSummary)
	mux.HandleFunc("/entries", s.handleCreateEntry)
	mux.HandleFunc("/entries/delete", s.handleDeleteEntry)
	mux.Handle("/static/", http.FileServer(http.FS(web.StaticFS)))

	s.Server = http.Server{
		Addr:    addr,
		Handler: applog.Middleware(logger.WithComponent(applog.ComponentHTTP))(s.withRateLimit(mux)),

		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
	return s, nil
}

// Shutdown stops the rate limiter cleanup and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// Simple in-memory rate limiter, per client IP.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

const (
	rateWindow      = time.Minute
	requestsPerMin  = 120
	cleanupInterval = 5 * time.Minute
)

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := time.Now().Add(-2 * rateWindow)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, ok := rl.clients[clientIP]
	if !ok || now.Sub(client.lastRequest) > rateWindow {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}
	client.requests++
	client.lastRequest = now
	return client.requests <= requestsPerMin
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !s.rateLimiter.allow(ip) {
			slog.WarnContext(r.Context(), "Rate limit exceeded", "client_ip", ip)
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
