package gql

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/employeeboard/internal/logging"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

const maxQueryDepth = 8

// panicLogger routes resolver panics to our logger.
type panicLogger struct {
	l logging.Logger
}

func (p panicLogger) LogPanic(ctx context.Context, value interface{}) {
	p.l.Error(ctx, "graphql: panic occurred", "panic", fmt.Sprint(value))
}

// NewHandler parses the schema against r and returns the HTTP handler
// serving POST /graphql.
func NewHandler(r *Resolver, l logging.Logger) http.Handler {
	schema := graphql.MustParseSchema(Schema, r,
		graphql.MaxDepth(maxQueryDepth),
		graphql.Logger(panicLogger{l: l}),
	)

	mux := http.NewServeMux()
	mux.Handle("/graphql", postOnly(&relay.Handler{Schema: schema}))
	return withRequestLog(l, mux)
}

type Server struct {
	address         string
	handler         http.Handler
	logger          logging.Logger
	shutdownTimeout time.Duration
}

func NewServer(address string, h http.Handler, l logging.Logger, shutdownTimeout time.Duration) *Server {
	return &Server{
		address:         address,
		handler:         h,
		logger:          l.With("module", "graphql_server"),
		shutdownTimeout: shutdownTimeout,
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping GraphQL server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting GraphQL server", "address", listen.Addr().String())

	if err := srv.Serve(listen); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-stopped
}
