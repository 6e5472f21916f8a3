package routes

import (
	"context"
	"log"
	"net/http"
	"time"

	"polls-backend/api"
	"polls-backend/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server wraps the HTTP server so main can shut it down gracefully.
type Server struct {
	*http.Server
}

// SetupRouter builds the gin engine: CORS, the request-context
// middleware, the health endpoint and the controllers' routes.
func SetupRouter(pollCtl *api.PollController, answerCtl *api.AnswerController) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // restrict to the frontend origin in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-User-ID", "X-Admin", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(api.RequestContext())

	root := router.Group("/api")
	{
		root.GET("/health", api.HealthCheck)

		pollCtl.RegisterRoutes(root)
		answerCtl.RegisterRoutes(root)
	}

	return router
}

// StartServer starts the HTTP server on the configured port in its
// own goroutine and returns the handle.
func StartServer(router *gin.Engine, cfg *config.Config) *Server {
	addr := ":" + cfg.ServerPort

	srv := &Server{
		&http.Server{
			Addr:    addr,
			Handler: router,
		},
	}

	go func() {
		log.Printf("Server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	return srv
}

// Shutdown stops the server, waiting up to timeout for in-flight
// requests to finish.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Server.Shutdown(ctx)
}
