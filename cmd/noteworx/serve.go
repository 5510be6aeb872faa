package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/noteworx/noteworx/internal/config"
	"github.com/noteworx/noteworx/internal/database"
	"github.com/noteworx/noteworx/internal/note/handler"
	"github.com/noteworx/noteworx/internal/note/service"
	"github.com/noteworx/noteworx/pkg/logger"
	"github.com/noteworx/noteworx/pkg/metrics"
	"github.com/noteworx/noteworx/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var startTime = time.Now()

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the note API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := a.openStore(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer st.close()

			if a.cfg.Log.Level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			limiterRedis := st.redis
			if a.cfg.RateLimit.Enabled && a.cfg.RateLimit.UseRedis && limiterRedis == nil {
				c, err := database.ConnectRedis(ctx, a.cfg.Redis.Addr(), a.cfg.Redis.Password, a.cfg.Redis.DB, redisDialTimeout)
				if err != nil {
					logger.Warnf("rate limiter: redis unavailable (%v), using in-memory limiter", err)
				} else {
					defer c.Close()
					limiterRedis = c
				}
			}

			srv := &http.Server{
				Addr:         net.JoinHostPort(a.cfg.Server.Host, a.cfg.Server.Port),
				Handler:      newRouter(a.cfg, st, limiterRedis),
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
			}
			errCh := make(chan error, 1)
			go func() {
				logger.Infof("noteworx API listening on %s (store=%s)", srv.Addr, a.cfg.Store.Driver)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			logger.Infof("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(sctx)
		},
	}
	cmd.Flags().String("host", "", "Listen host (env SERVER_HOST)")
	cmd.Flags().String("port", "", "Listen port (env SERVER_PORT)")
	return cmd
}

// newRouter wires middleware, health, metrics and the note routes.
func newRouter(cfg *config.Config, st *store, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "store": cfg.Store.Driver, "uptime": time.Since(startTime).String()})
	})

	// readiness: 200 only when the note store (and the limiter's Redis, if
	// requested) can be reached
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		deps := map[string]bool{"store": st.ping == nil || st.ping(ctx) == nil}
		if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
			deps["redis"] = rdb != nil && rdb.Ping(ctx).Err() == nil
		}
		status, code := "ready", http.StatusOK
		for _, ok := range deps {
			if !ok {
				status, code = "not_ready", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterCollectors(reg)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handler.RegisterDocs(r)
	handler.RegisterNoteRoutes(r, service.New(st.repo))
	return r
}
