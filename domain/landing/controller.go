package landing

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/akeren/creatorchain/config/router"
	"github.com/akeren/creatorchain/domain/waitlist"
	"github.com/akeren/creatorchain/internal/views"
	apperrors "github.com/akeren/creatorchain/pkg/errors"
	"github.com/akeren/creatorchain/pkg/ratelimit"
)

//go:embed static
var staticFiles embed.FS

type LandingController struct {
	copy    *Copy
	service waitlist.WaitlistService
	assets  http.FileSystem
}

// NewLandingController serves the page at "/", the no-script form post at
// "/waitlist" and the page assets under "/static". The form post shares
// submitLimiter with the JSON API.
func NewLandingController(pageCopy *Copy, service waitlist.WaitlistService, submitLimiter ratelimit.RateLimiter) *router.RESTController {
	assets, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	ctrl := &LandingController{
		copy:    pageCopy,
		service: service,
		assets:  http.FS(assets),
	}

	return router.NewRESTController(
		"LandingController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddRawHandler(c, nil, http.MethodGet, "", ctrl.index)
			rs.AddRawHandler(c, submitLimiter, http.MethodPost, "waitlist", ctrl.submit)
			rs.AddRawHandler(c, nil, http.MethodGet, "static/*filepath", ctrl.static)
		},
	)
}

func (ctrl *LandingController) index(ctx *router.RequestContext) {
	form := FormState{}

	view, err := ctrl.service.OpenView(ctx.Request.Context())
	if err != nil {
		// The page still works: a submit without a view opens one.
		router.GetLogger(ctx).Error("Failed to open page view", "error", err)
	} else {
		form.ViewID = view.ID
	}

	ctrl.render(ctx, http.StatusOK, form)
}

func (ctrl *LandingController) submit(ctx *router.RequestContext) {
	logger := router.GetLogger(ctx)

	var req waitlist.SubmitRequest
	if err := ctx.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind waitlist form", "error", err)

		form := FormState{
			Values:   req.Submission(),
			Errors:   apperrors.FormatValidationErrors(err, &req),
			Feedback: ctrl.service.EmitError(ctx.Request.Context()),
		}
		if len(form.Errors) == 0 {
			form.Message = "Invalid request body"
		}
		ctrl.render(ctx, http.StatusBadRequest, form)
		return
	}

	response, err := ctrl.service.Submit(ctx.Request.Context(), &req)

	form := FormState{ViewID: req.ViewID, Values: req.Submission()}
	if response != nil {
		form.ViewID = response.ViewID
		form.Submitted = response.State == views.StateSubmitted
		form.Errors = response.Errors
		form.Feedback = response.Feedback
	}

	status := http.StatusOK
	if err != nil {
		status = apperrors.HTTPStatusCode(err)
		if len(form.Errors) == 0 {
			form.Message = apperrors.GetHumanReadableMessage(err)
		}
		if form.Feedback == nil {
			form.Feedback = ctrl.service.EmitError(ctx.Request.Context())
		}
	}

	ctrl.render(ctx, status, form)
}

func (ctrl *LandingController) static(ctx *router.RequestContext) {
	name := ctx.Param("filepath")
	if name == "" || strings.HasSuffix(name, "/") {
		ctx.JSON(http.StatusNotFound, router.NotFoundResult("Resource not found").ToJSON())
		return
	}

	ctx.Header("Cache-Control", "public, max-age=3600")
	ctx.FileFromFS(name, ctrl.assets)
}

func (ctrl *LandingController) render(ctx *router.RequestContext, status int, form FormState) {
	var buf bytes.Buffer
	if err := Render(&buf, PageData{Copy: ctrl.copy, Form: form}); err != nil {
		router.GetLogger(ctx).Error("Failed to render landing page", "error", err)
		ctx.JSON(http.StatusInternalServerError, router.InternalServerErrorResult("Unable to render page").ToJSON())
		return
	}

	ctx.Header("Cache-Control", "no-store")
	ctx.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
