// Package health serves a liveness endpoint for process supervisors.
package health

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"overwatch-tracker/internal/config"
	"overwatch-tracker/internal/constants"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type status struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

type Server struct {
	addr    string
	db      Pinger
	started time.Time
	srv     *fasthttp.Server
	logger  zerolog.Logger
}

func NewServer(cfg *config.Config, db Pinger, logger zerolog.Logger) *Server {
	s := &Server{
		addr:    cfg.HealthAddr,
		db:      db,
		started: time.Now(),
		logger:  logger,
	}
	s.srv = &fasthttp.Server{
		Handler:      s.handle,
		Name:         "overwatch-tracker",
		ReadTimeout:  constants.HealthTimeout,
		WriteTimeout: constants.HealthTimeout,
	}
	return s
}

// Enabled reports whether an address was configured.
func (s *Server) Enabled() bool { return s.addr != "" }

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

func (s *Server) Serve(ln net.Listener) error {
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("health server starting")
		if err := s.srv.Serve(ln); err != nil {
			s.logger.Error().Err(err).Msg("health server failed")
		}
	}()
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.ShutdownWithContext(ctx)
}

func (s *Server) handle(ctx *fasthttp.RequestCtx) {
	if string(ctx.Path()) != "/healthz" {
		ctx.Error("not found", fasthttp.StatusNotFound)
		return
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), constants.HealthTimeout)
	defer cancel()

	st := status{Status: "ok", Database: "ok", Uptime: time.Since(s.started).Round(time.Second).String()}
	code := fasthttp.StatusOK
	if err := s.db.PingContext(pingCtx); err != nil {
		s.logger.Warn().Err(err).Msg("health check database ping failed")
		st.Status = "degraded"
		st.Database = err.Error()
		code = fasthttp.StatusServiceUnavailable
	}

	body, _ := json.Marshal(st)
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(code)
	ctx.SetBody(body)
}
