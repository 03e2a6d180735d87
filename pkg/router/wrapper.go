package router

import (
	"context"

	"github.com/Steemhunt/hunt-town-sub000/pkg/errorx"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		ctx := r.setupContext(gctx)

		resp, err := func() (*Response, error) {
			var req Request
			var bindErr error
			switch method {
			case "GET":
				bindErr = gctx.ShouldBindQuery(&req)
			case "POST":
				bindErr = gctx.ShouldBindJSON(&req)
			}

			if bindErr != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", bindErr)
				return nil, errorx.New(errorx.BadRequest, "Cannot bind the request")
			}

			for _, middleware := range r.befores {
				var mErr error
				ctx, mErr = middleware(ctx)
				if mErr != nil {
					return nil, mErr
				}
			}

			return handler(ctx, &req)
		}()

		if err != nil {
			writeJSON(gctx, newErrorResponse(err))
		} else {
			writeJSON(gctx, newResponse(resp))
		}

		for _, closer := range r.closers {
			closer(ctx, err)
		}
	}
}

func (r *Router) setupContext(gctx *gin.Context) context.Context {
	ctx := gctx.Request.Context()
	ctx = xcontext.WithHTTPRequest(ctx, gctx.Request)
	ctx = xcontext.WithHTTPWriter(ctx, gctx.Writer)
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithTokenEngine(ctx, r.accessTokenEngine)
	return ctx
}
