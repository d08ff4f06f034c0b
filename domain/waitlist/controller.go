package waitlist

import (
	"github.com/akeren/creatorchain/config/router"
	"github.com/akeren/creatorchain/pkg/constants"
	apperrors "github.com/akeren/creatorchain/pkg/errors"
	"github.com/akeren/creatorchain/pkg/ratelimit"
	"github.com/gin-gonic/gin"
)

func NewWaitlistController(service WaitlistService, submitLimiter ratelimit.RateLimiter) *router.RESTController {
	return router.NewVersionedRESTController(
		"WaitlistController",
		"v1",
		"/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPostHandler(c, submitLimiter, "", submitHandler(service))
			rs.AddGetHandler(c, nil, "/validate", validateHandler())
			rs.AddGetHandler(c, nil, "/options", optionsHandler())
			rs.AddGetHandler(c, nil, "/views/:id", viewHandler(service))
			rs.AddGetHandler(c, nil, "/stats", statsHandler(service))
		},
	)
}

func submitHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req SubmitRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind waitlist request", "error", err)

			cue := service.EmitError(ctx.Request.Context())
			if fields := apperrors.FormatValidationErrors(err, &req); len(fields) > 0 {
				return router.BadRequestResult("Invalid request payload", gin.H{"errors": fields, "feedback": cue})
			}
			return router.BadRequestResult("Invalid request body", gin.H{"feedback": cue})
		}

		response, err := service.Submit(ctx.Request.Context(), &req)
		if err != nil {
			if response == nil {
				return router.AppErrorResult(err, gin.H{"feedback": service.EmitError(ctx.Request.Context())})
			}
			return router.AppErrorResult(err, response)
		}

		if response.AlreadySubmitted {
			return router.OKResult(response, "You're already on the list")
		}
		return router.OKResult(response, "You're in! Welcome to the early access program")
	}
}

func validateHandler() router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		return router.OKResult(ValidateResponse{
			Valid:     ValidateEmail(ctx.Query("email")),
			MinLength: MinEmailLength,
		}, "Email checked")
	}
}

func optionsHandler() router.HandlerFunction {
	return func(_ *router.RequestContext) *router.ServiceResult {
		return router.OKResult(SelectOptions(), "Waitlist options retrieved successfully")
	}
}

func viewHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		view, err := service.ResolveView(ctx.Request.Context(), ctx.Param("id"))
		if err != nil {
			return router.AppErrorResult(err, nil)
		}
		return router.OKResult(ViewResponse{
			ViewID:    view.ID,
			State:     view.State,
			ExpiresAt: view.ExpiresAt.UTC().Format(constants.RFC3339DateTimeFormat),
		}, "Page view retrieved successfully")
	}
}

func statsHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		stats, err := service.Stats(ctx.Request.Context())
		if err != nil {
			return router.AppErrorResult(err, nil)
		}
		return router.OKResult(stats, "Waitlist stats retrieved successfully")
	}
}
