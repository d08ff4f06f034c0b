package feedback

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"strconv"
	"time"

	"github.com/akeren/creatorchain/config/router"
	"github.com/akeren/creatorchain/internal/log"
	"github.com/akeren/creatorchain/pkg/ratelimit"
)

const audioCacheTTL = 24 * time.Hour

// Cache is the subset of the application cache used for rendered audio.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type FeedbackController struct {
	logger *log.Logger
	cache  Cache
}

// NewFeedbackController serves the cue table and rendered audio. limiter, when
// set, applies to every route of the controller.
func NewFeedbackController(logger *log.Logger, cache Cache, limiter ratelimit.RateLimiter) *router.RESTController {
	ctrl := &FeedbackController{logger: logger, cache: cache}

	return router.NewVersionedRESTController(
		"FeedbackController",
		"v1",
		"/feedback",
		func(rs *router.RouterService, c *router.RESTController) {
			c.RateLimitWith(rs, limiter)
			rs.AddGetHandler(c, nil, "", ctrl.listCues)
			rs.AddGetHandler(c, nil, "/:kind", ctrl.getCue)
			rs.AddRawHandler(c, nil, http.MethodGet, "/:kind/audio", ctrl.serveAudio)
		},
	)
}

func (ctrl *FeedbackController) listCues(_ *router.RequestContext) *router.ServiceResult {
	cues := make([]Cue, 0, len(Kinds()))
	for _, k := range Kinds() {
		cues = append(cues, CueFor(k))
	}
	return router.OKResult(cues, "Feedback cues retrieved successfully")
}

func (ctrl *FeedbackController) getCue(ctx *router.RequestContext) *router.ServiceResult {
	kind, ok := ParseKind(ctx.Param("kind"))
	if !ok {
		return router.NotFoundResult("Unknown feedback kind")
	}
	return router.OKResult(CueFor(kind), "Feedback cue retrieved successfully")
}

func (ctrl *FeedbackController) serveAudio(ctx *router.RequestContext) {
	kind, ok := ParseKind(ctx.Param("kind"))
	if !ok {
		ctx.JSON(http.StatusNotFound, router.NotFoundResult("Unknown feedback kind").ToJSON())
		return
	}

	wav, err := ctrl.renderAudio(ctx.Request.Context(), kind)
	if err != nil {
		router.GetLogger(ctx).Error("Failed to render feedback audio", "kind", kind, "error", err)
		ctx.JSON(http.StatusInternalServerError, router.InternalServerErrorResult("Unable to render audio").ToJSON())
		return
	}

	ctx.Header("Cache-Control", "public, max-age=86400")
	ctx.Header("Content-Length", strconv.Itoa(len(wav)))
	ctx.Data(http.StatusOK, "audio/wav", wav)
}

func (ctrl *FeedbackController) renderAudio(ctx context.Context, kind Kind) ([]byte, error) {
	key := "feedback:wav:" + string(kind)
	logger := log.GetLoggerInstanceFromContext(ctx, ctrl.logger)

	if ctrl.cache != nil {
		if cached, err := ctrl.cache.Get(ctx, key); err != nil {
			logger.Warn("Feedback audio cache read failed", "key", key, "error", err)
		} else if cached != "" {
			if wav, err := base64.StdEncoding.DecodeString(cached); err == nil {
				return wav, nil
			}
		}
	}

	var buf bytes.Buffer
	out := NewWAVOutput(&buf)
	p := ProfileFor(kind)
	if err := out.PlayTones(WithKind(ctx, kind), p.Tones()); err != nil {
		return nil, err
	}
	wav := buf.Bytes()

	if ctrl.cache != nil {
		if err := ctrl.cache.Set(ctx, key, base64.StdEncoding.EncodeToString(wav), audioCacheTTL); err != nil {
			logger.Warn("Feedback audio cache write failed", "key", key, "error", err)
		}
	}

	return wav, nil
}
