package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/habiliai/toolserver/entity"
	"github.com/habiliai/toolserver/errors"
	"github.com/habiliai/toolserver/internal/mylog"
	"github.com/habiliai/toolserver/tool"
)

const defaultMaxBodyBytes = 8 << 20

type (
	// Handler serves the tool registry over HTTP: GET /tools lists the tool
	// names and POST /tool/{name} runs one tool. Every other request falls
	// through to the static file handler.
	Handler struct {
		registry     *tool.Registry
		logger       *slog.Logger
		staticDir    string
		maxBodyBytes int64

		handler http.Handler
	}
	Option func(*Handler)
)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithStaticDir(dir string) Option {
	return func(h *Handler) {
		h.staticDir = dir
	}
}

func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		h.maxBodyBytes = n
	}
}

func NewHandler(registry *tool.Registry, opts ...Option) *Handler {
	h := &Handler{
		registry:     registry,
		staticDir:    ".",
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = mylog.NewDiscardLogger()
	}

	static := newStaticHandler(h.staticDir, h.logger)

	router := mux.NewRouter()
	router.HandleFunc("/tools", h.listTools).Methods(http.MethodGet)
	router.HandleFunc("/tool/{name:.*}", h.callTool).Methods(http.MethodPost)
	router.NotFoundHandler = static
	router.MethodNotAllowedHandler = static

	h.handler = withRequestID(
		noCache(
			newLoggingHandler(h.logger)(
				newRecoveryHandler(h.logger)(router),
			),
		),
	)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

func (h *Handler) listTools(w http.ResponseWriter, r *http.Request) {
	payload, err := json.Marshal(h.registry.List())
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	h.write(w, r, http.StatusOK, contentTypeJSON, payload)
}

func (h *Handler) callTool(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	entry, ok := h.registry.Lookup(name)
	if !ok {
		h.writeError(w, r, http.StatusNotFound, fmt.Sprintf("<b>@%s</b> not found - such as tool does not exist", name))
		return
	}

	req, err := h.decodeRequest(w, r)
	if err != nil {
		h.writeError(w, r, errors.StatusCode(err), err.Error())
		return
	}

	logger := h.logger.With(slog.String("tool", name), slog.String("requestId", RequestID(r.Context())))

	result, err := entry.Func(r.Context(), req.Messages, req.Arg)
	if err != nil {
		err = errors.Mark(err, errors.ErrToolExecution)
		logger.Warn("tool failed", mylog.Err(err))
		h.writeError(w, r, errors.StatusCode(err), fmt.Sprintf("<b>@%s</b> error - %v", name, err))
		return
	}

	logger.Debug("tool succeeded", slog.Int("size", len(result)))
	h.write(w, r, http.StatusOK, contentTypeText, []byte(result))
}

// decodeRequest reads the body into a ToolRequest. Every failure is an
// errors.ErrInvalidParams carrying the message sent back to the caller.
func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (entity.ToolRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		return entity.ToolRequest{}, errors.Invalidf("Invalid JSON: %v", err)
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return entity.ToolRequest{}, errors.Invalidf("Invalid JSON: %v", err)
	}

	obj, ok := data.(map[string]any)
	if !ok {
		return entity.ToolRequest{}, errors.Invalidf("JSON must be an object containing 'messages' and 'arg'")
	}

	_, hasMessages := obj["messages"]
	_, hasArg := obj["arg"]
	if !hasMessages || !hasArg {
		return entity.ToolRequest{}, errors.Invalidf("JSON must contain both 'messages' and 'arg'")
	}

	req, err := entity.DecodeToolRequest(obj)
	if err != nil {
		return entity.ToolRequest{}, errors.Invalidf("Invalid request: %v", err)
	}

	return req, nil
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, status int, contentType string, body []byte) {
	if err := writeBody(w, status, contentType, body); err != nil {
		h.logger.Warn("failed to write response",
			slog.String("requestId", RequestID(r.Context())),
			mylog.Err(err),
		)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, description string) {
	if err := writeHTMLError(w, status, description); err != nil {
		h.logger.Warn("failed to write error response",
			slog.String("requestId", RequestID(r.Context())),
			mylog.Err(err),
		)
	}
}
