// Package server exposes the ledger reports over HTTP. One route per report,
// each taking the account path from the URL and an optional convert flag;
// rows are serialized as JSON objects with amounts as exact decimal strings.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"ledgerview"
)

// Server serves read-only report queries against a shared ledger model.
type Server struct {
	addr  string
	model *ledgerview.Model
	log   *slog.Logger
}

// New creates a server for the given listen address and model.
func New(addr string, model *ledgerview.Model, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{addr: addr, model: model, log: logger}
}

// Handler builds the route table. Account paths are slash-delimited, so every
// report route captures the remainder of the URL.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", s.handlePing)
	mux.HandleFunc("GET /print", s.handlePrint)
	mux.HandleFunc("GET /monthly/{account...}", s.handleMonthly)
	mux.HandleFunc("GET /cashflow/{account...}", s.handleCashflow)
	mux.HandleFunc("GET /balance/{account...}", s.handleBalance)
	mux.HandleFunc("GET /split/{account...}", s.handleSplit)
	return s.logRequests(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("server started", "addr", s.addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Pong"))
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	text, err := s.model.Print()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	rows, err := s.model.Monthly(r.PathValue("account"), convertFlag(r))
	s.writeRows(w, rows, err)
}

func (s *Server) handleCashflow(w http.ResponseWriter, r *http.Request) {
	rows, err := s.model.Cashflow(r.PathValue("account"), convertFlag(r))
	s.writeRows(w, rows, err)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	row, err := s.model.Balance(r.PathValue("account"), convertFlag(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeRows(w, []ledgerview.Row{row}, nil)
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	rows, err := s.model.Split(r.PathValue("account"), convertFlag(r))
	s.writeRows(w, rows, err)
}

// convertFlag reads the optional convert query parameter; reports convert to
// the native currency unless it is explicitly disabled.
func convertFlag(r *http.Request) bool {
	value := r.URL.Query().Get("convert")
	if value == "" {
		return true
	}
	convert, err := strconv.ParseBool(value)
	if err != nil {
		return true
	}
	return convert
}

func (s *Server) writeRows(w http.ResponseWriter, rows []ledgerview.Row, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	if rows == nil {
		rows = []ledgerview.Row{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rows); err != nil {
		s.log.Error("response encoding failed", "err", err)
	}
}

// writeError turns a model error into a JSON error response. All errors are
// recovered here; none terminates the process.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var accountErr *ledgerview.NoSuchAccountError
	var commodityErr *ledgerview.NoSuchCommodityError
	if errors.As(err, &accountErr) || errors.As(err, &commodityErr) {
		status = http.StatusNotFound
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// logRequests logs one line per request with the response status and timing.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
