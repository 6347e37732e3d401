// Package server is the development server for the portfolio: it renders the
// HTML shell, serves static assets and stands in for the hosted contact form
// endpoint.
package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/briancoit/starfield/contact"
	"github.com/briancoit/starfield/site"
)

// Config holds server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// StaticDir is served under /static when set.
	StaticDir string
	// Mode is the gin mode: debug, release or test.
	Mode string
}

// ConfigFromEnv reads PORT, STATIC_DIR and GIN_MODE.
func ConfigFromEnv() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return Config{
		Addr:      ":" + port,
		StaticDir: os.Getenv("STATIC_DIR"),
		Mode:      os.Getenv("GIN_MODE"),
	}
}

// Submission is an accepted contact form post.
type Submission struct {
	Name     string
	Email    string
	Message  string
	Received time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithSink sets the function accepted submissions are handed to. The default
// logs them.
func WithSink(fn func(Submission)) Option {
	return func(s *Server) { s.sink = fn }
}

// WithPage overrides the rendered page.
func WithPage(p site.Page) Option {
	return func(s *Server) { s.page = p }
}

// Server is the portfolio's HTTP server.
type Server struct {
	cfg    Config
	engine *gin.Engine
	page   site.Page
	sink   func(Submission)
}

// New builds the router.
func New(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	s := &Server{
		cfg:  cfg,
		page: site.DefaultPage(),
		sink: logSubmission,
	}
	for _, opt := range opts {
		opt(s)
	}

	tmpl, err := site.Templates()
	if err != nil {
		return nil, fmt.Errorf("new server: %w", err)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)

	if cfg.StaticDir != "" {
		if _, err := os.Stat(cfg.StaticDir); err != nil {
			return nil, fmt.Errorf("new server: static dir: %w", err)
		}
		r.Static("/static", cfg.StaticDir)
	}

	r.GET("/", s.handleIndex)
	r.POST("/", s.handleContact)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.engine = r
	return s, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until the server fails.
func (s *Server) Run() error {
	log.Printf("portfolio: listening on %s", s.cfg.Addr)
	if err := s.engine.Run(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("run server: %w", err)
	}
	return nil
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, site.ShellTemplate, s.page)
}

// handleContact accepts the contact form. Posts that fill the honeypot are
// answered as if accepted and dropped.
func (s *Server) handleContact(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed form"})
		return
	}
	if c.PostForm(contact.FieldFormName) != contact.FormName {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown form"})
		return
	}

	fields := contact.FieldsFromValues(c.Request.PostForm)
	if strings.TrimSpace(fields.BotField) != "" {
		log.Printf("portfolio: dropped honeypot submission from %s", c.ClientIP())
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	if err := fields.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.sink(Submission{
		Name:     fields.Name,
		Email:    fields.Email,
		Message:  fields.Message,
		Received: time.Now(),
	})
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func logSubmission(sub Submission) {
	log.Printf("portfolio: contact from %s <%s>: %d bytes", sub.Name, sub.Email, len(sub.Message))
}
