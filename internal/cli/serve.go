package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/ytcrawl/ytcrawl/pkg/buildinfo"
	"github.com/ytcrawl/ytcrawl/pkg/crawl"
	"github.com/ytcrawl/ytcrawl/pkg/errors"
	"github.com/ytcrawl/ytcrawl/pkg/pipeline"
	"github.com/ytcrawl/ytcrawl/pkg/youtube"
)

const (
	serveReadHeaderTimeout = 5 * time.Second
	serveShutdownTimeout   = 10 * time.Second
	serveCrawlTimeout      = 5 * time.Minute
)

// serveCommand creates the serve command exposing crawls over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		apiKey  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the crawl API over HTTP",
		Long: `Serve crawls over HTTP.

Endpoints:
  GET  /healthz    liveness probe
  POST /api/crawl  run a crawl; the JSON body mirrors the search flags`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, _, err := loadConfig()
			if err != nil {
				return err
			}
			if apiKey == "" {
				apiKey = stored.APIKey
			}
			client, err := c.newClient(apiKey, noCache, false)
			if err != nil {
				return err
			}
			srv := &server{
				runner: pipeline.NewRunner(client, c.Logger),
				logger: c.Logger,
			}
			return srv.listen(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "YouTube Data API v3 key")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the API response cache")

	return cmd
}

// server runs crawls on behalf of HTTP clients.
type server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// listen serves until ctx is cancelled, then shuts down gracefully.
func (s *server) listen(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: serveReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info("listening", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return ctx.Err()
}

// routes builds the HTTP router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(serveCrawlTimeout))
	r.Use(s.attachLogger)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/crawl", s.handleCrawl)

	return r
}

// attachLogger puts a request-scoped logger on the context.
func (s *server) attachLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.With("request_id", middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(withLogger(r.Context(), logger)))
	})
}

// crawlRequest mirrors the search command's options.
type crawlRequest struct {
	Mode       string `json:"mode"`
	Query      string `json:"query"`
	Number     []int  `json:"number"`
	MaxDepth   int    `json:"maxDepth"`
	RegionCode string `json:"regionCode"`
	LangCode   string `json:"langCode"`
	SafeSearch string `json:"safeSearch"`
	Encoding   string `json:"encoding"`
}

type crawlResponse struct {
	RunID   string        `json:"runId"`
	Query   string        `json:"query"`
	Visited int           `json:"visited"`
	Items   []*crawl.Item `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"build":  buildinfo.String(),
	})
}

func (s *server) handleCrawl(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r.Context())

	var req crawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Mode:     pipeline.Mode(req.Mode),
		Query:    req.Query,
		Number:   req.Number,
		MaxDepth: req.MaxDepth,
		Search: youtube.SearchOptions{
			RegionCode:        req.RegionCode,
			RelevanceLanguage: req.LangCode,
			SafeSearch:        req.SafeSearch,
		},
		Encoding: req.Encoding,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("crawl failed", "query", req.Query, "err", err)
		if seconds := errors.RetryAfter(err); seconds > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
		}
		writeJSON(w, statusForError(err), errorResponse{
			Error: errors.UserMessage(err),
			Code:  string(errors.GetCode(err)),
		})
		return
	}

	writeJSON(w, http.StatusOK, crawlResponse{
		RunID:   result.RunID,
		Query:   result.Query,
		Visited: result.Stats.Visited,
		Items:   result.Items,
	})
}

// statusForError maps the error taxonomy to HTTP status codes.
func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidOption, errors.ErrCodeInvalidEncoding:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeVideoNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeNetwork, errors.ErrCodeAPI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
