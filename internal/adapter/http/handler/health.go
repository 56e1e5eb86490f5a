package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"marketplace-sync/internal/core/ports"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const healthCheckTimeout = 3 * time.Second

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthCheck handles GET /health. Every dependency is pinged in parallel
// and any failure degrades the whole report to 503.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		var (
			mu   sync.Mutex
			deps = make(map[string]dependencyStatus, len(checkers))
			g    errgroup.Group
		)
		for _, checker := range checkers {
			g.Go(func() error {
				st := dependencyStatus{Status: "healthy"}
				if err := checker.Ping(ctx); err != nil {
					st = dependencyStatus{Status: "unhealthy", Error: err.Error()}
				}
				mu.Lock()
				deps[checker.Name()] = st
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		status, code := "healthy", http.StatusOK
		for _, st := range deps {
			if st.Status != "healthy" {
				status, code = "degraded", http.StatusServiceUnavailable
				break
			}
		}

		c.JSON(code, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
