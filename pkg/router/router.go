package router

import (
	"context"
	"net/http"

	"github.com/Steemhunt/hunt-town-sub000/config"
	"github.com/Steemhunt/hunt-town-sub000/internal/model"
	"github.com/Steemhunt/hunt-town-sub000/pkg/authenticator"
	"github.com/Steemhunt/hunt-town-sub000/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can derive a new context (for
// example, attaching the authenticated user id) or reject the request by
// returning an error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is decided, with the error the handler
// or middleware chain produced (nil on success).
type CloserFunc func(ctx context.Context, err error)

type Router struct {
	engine *gin.Engine
	inner  gin.IRouter

	cfg    config.Configs
	db     *gorm.DB
	logger logger.Logger

	accessTokenEngine authenticator.TokenEngine[model.AccessToken]

	befores []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	engine := gin.New()
	return &Router{
		engine: engine,
		inner:  engine,
		cfg:    cfg,
		db:     db,
		logger: logger,
		accessTokenEngine: authenticator.NewTokenEngine[model.AccessToken](
			cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration),
	}
}

// Branch returns a copy of the router with its own middleware chain. Routes
// registered on the branch still share the parent's underlying engine.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Static(relativePath, root string) {
	r.inner.Static(relativePath, root)
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}
