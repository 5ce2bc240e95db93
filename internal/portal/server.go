// Package portal serves the public-facing customer form: a visitor enters
// name, email, and a question; the portal upserts the customer on the backend
// and files the text as an inbound web-channel message.
package portal

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inboxkit/inboxkit/internal/api"
)

//go:embed web/index.html
var webFS embed.FS

// Server is the portal HTTP server.
type Server struct {
	Port    int
	Client  *api.Client
	httpSrv *http.Server
	startAt time.Time
}

func NewServer(port int, client *api.Client) *Server {
	return &Server{Port: port, Client: client, startAt: time.Now()}
}

// Start begins listening and blocks until ctx is cancelled or the listener
// fails.
func (s *Server) Start(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health", s.health)
	engine.GET("/", s.index)
	engine.POST("/submit", s.submit)

	addr := fmt.Sprintf(":%d", s.Port)
	s.httpSrv = &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	slog.Info("portal starting", "port", s.Port)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.httpSrv.Shutdown(shutdownCtx)
	}()

	if err := s.httpSrv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Routes builds the gin engine without binding a listener. Used by tests.
func (s *Server) Routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/health", s.health)
	engine.GET("/", s.index)
	engine.POST("/submit", s.submit)
	return engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startAt).String(),
	})
}

func (s *Server) index(c *gin.Context) {
	data, err := webFS.ReadFile("web/index.html")
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

type submitRequest struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
	Phone string `json:"phone" form:"phone"`
	Text  string `json:"text" form:"text"`
}

func (s *Server) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and text are required"})
		return
	}

	ctx := c.Request.Context()
	cust, err := s.Client.UpsertCustomer(ctx, api.UpsertCustomerRequest{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		slog.Error("portal customer upsert failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to submit"})
		return
	}

	msg, err := s.Client.SendMessage(ctx, api.SendMessageRequest{
		CustomerID: cust.ID,
		Text:       req.Text,
		Channel:    api.ChannelWeb,
		Direction:  api.DirectionInbound,
	})
	if err != nil {
		slog.Error("portal message send failed", "customer", cust.ID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to submit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"customer_id": cust.ID,
		"message_id":  msg.ID,
	})
}
