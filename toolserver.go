package toolserver

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/habiliai/toolserver/config"
	"github.com/habiliai/toolserver/errors"
	"github.com/habiliai/toolserver/internal/fetch"
	"github.com/habiliai/toolserver/internal/mylog"
	"github.com/habiliai/toolserver/knowledge"
	"github.com/habiliai/toolserver/server"
	"github.com/habiliai/toolserver/tool"
)

const readHeaderTimeout = 10 * time.Second

type (
	ToolServer struct {
		config           *config.Config
		logger           *slog.Logger
		httpClient       *http.Client
		knowledgeService knowledge.Service
		extraTools       []tool.Entry

		registry *tool.Registry
		handler  *server.Handler
	}
	Option func(*ToolServer)
)

func WithConfig(cfg *config.Config) Option {
	return func(s *ToolServer) {
		s.config = cfg
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *ToolServer) {
		s.logger = logger
	}
}

// WithHTTPClient sets the client used for every outbound request tools make.
func WithHTTPClient(client *http.Client) Option {
	return func(s *ToolServer) {
		s.httpClient = client
	}
}

func WithKnowledgeService(svc knowledge.Service) Option {
	return func(s *ToolServer) {
		s.knowledgeService = svc
	}
}

// WithTool registers an extra tool after the built-in ones. A built-in name
// is replaced in place.
func WithTool(name string, fn tool.Func, usage string) Option {
	return func(s *ToolServer) {
		s.extraTools = append(s.extraTools, tool.Entry{Name: name, Func: fn, Usage: usage})
	}
}

func New(optionFuncs ...Option) (*ToolServer, error) {
	s := &ToolServer{
		config: config.NewConfig(),
	}
	for _, f := range optionFuncs {
		f(s)
	}

	if s.config == nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "config is required")
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if s.logger == nil {
		s.logger = mylog.NewLogger(s.config.Log.LogLevel, s.config.Log.LogHandler)
	}

	client := fetch.NewClient(s.httpClient, s.config.Web.UserAgent, s.config.Web.FetchTimeout)
	s.registry = tool.NewDefaultRegistry(tool.Defaults{
		Config:    s.config,
		Client:    client,
		Knowledge: s.knowledgeService,
		Logger:    s.logger,
	})
	for _, e := range s.extraTools {
		s.registry.Register(e.Name, e.Func, e.Usage)
	}

	s.handler = server.NewHandler(s.registry,
		server.WithLogger(s.logger),
		server.WithStaticDir(s.config.Server.StaticDir),
		server.WithMaxBodyBytes(s.config.Server.MaxBodyBytes),
	)

	return s, nil
}

func (s *ToolServer) Config() *config.Config {
	return s.config
}

func (s *ToolServer) Logger() *slog.Logger {
	return s.logger
}

func (s *ToolServer) Registry() *tool.Registry {
	return s.registry
}

func (s *ToolServer) Handler() http.Handler {
	return s.handler
}

func (s *ToolServer) Addr() string {
	return net.JoinHostPort(s.config.Server.Host, strconv.Itoa(s.config.Server.Port))
}

// ListenAndServe listens on the configured address and serves until ctx is
// done, then shuts down gracefully.
func (s *ToolServer) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.Addr())
	}

	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done. In-flight requests get
// config.Server.ShutdownTimeout to finish.
func (s *ToolServer) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("tool server started",
		slog.String("url", "http://"+ln.Addr().String()+"/"),
		slog.Any("tools", s.registry.List()),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "server stopped")
	case <-ctx.Done():
	}

	s.logger.Info("shutting down tool server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrapf(err, "failed to shut down server")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrapf(err, "server stopped")
	}

	return nil
}
