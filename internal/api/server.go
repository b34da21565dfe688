package api

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"

	"hubflow/internal/config"
	"hubflow/internal/predict"
	"hubflow/internal/store"
)

type Server struct {
	Store  store.Store
	Broker EventBroker
	Cfg    config.Config

	mu         sync.Mutex
	predictors map[string]*predict.TablePredictor // tenant -> trained model
}

// NewServer creates a Server. If DATABASE_URL is unset, uses in-memory store.
func NewServer() (*Server, error) {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return nil, err
	}
	dsn := os.Getenv("DATABASE_URL")
	var s store.Store
	if strings.TrimSpace(dsn) == "" {
		s = store.NewMemory()
	} else {
		sp, err := store.NewPostgres(dsn)
		if err != nil {
			return nil, err
		}
		s = sp
	}
	// Broker selection
	var broker EventBroker
	if os.Getenv("REDIS_URL") != "" {
		if rb, err := NewRedisBroker(); err == nil {
			broker = rb
		} else {
			broker = NewBroker()
		}
	} else {
		broker = NewBroker()
	}
	return &Server{Store: s, Broker: broker, Cfg: cfg, predictors: map[string]*predict.TablePredictor{}}, nil
}

func (s *Server) withTenant(r *http.Request) (context.Context, string) {
	// Tenant from header; in production decode from an auth token.
	tenant := r.Header.Get("X-Tenant-Id")
	if tenant == "" {
		tenant = "t_demo"
	}
	ctx := context.WithValue(r.Context(), ctxKeyTenant{}, tenant)
	return ctx, tenant
}

type ctxKeyTenant struct{}
