package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type Server struct {
	options Options
	srv     *http.Server
	logger  *zap.Logger
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("address", s.options.Address))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("http server stopping")
	return s.srv.Shutdown(ctx)
}

func NewServer(h *Handler, logger *zap.Logger, opts ...Option) *Server {
	options := NewOptions(opts...)

	var handler http.Handler = h.Routes()
	for i := len(options.Middleware) - 1; i >= 0; i-- {
		handler = options.Middleware[i](handler)
	}

	return &Server{
		options: options,
		logger:  logger,
		srv: &http.Server{
			Addr:              options.Address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}
