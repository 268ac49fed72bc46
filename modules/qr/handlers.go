package qr

import (
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/qrkit/handler"
	"github.com/dmitrymomot/qrkit/pkg/cache"
	"github.com/dmitrymomot/qrkit/pkg/file"
	"github.com/dmitrymomot/qrkit/pkg/history"
	"github.com/dmitrymomot/qrkit/pkg/validator"
	qrsvc "github.com/dmitrymomot/qrkit/svc/qr"
)

type handlers struct {
	svc          *qrsvc.Service
	log          *slog.Logger
	sessions     *cache.LRU[string, *qrsvc.Session]
	errorHandler handler.ErrorHandler
}

type classifyRequest struct {
	Content string `json:"content"`
}

func (h *handlers) classify(ctx handler.Context, req classifyRequest) handler.Response {
	return handler.JSON(h.svc.Classify(req.Content))
}

func (h *handlers) format(ctx handler.Context, req qrsvc.GenerateRequest) handler.Response {
	res, err := h.svc.Format(req)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(res)
}

type generateRequest struct {
	qrsvc.GenerateRequest
	Raw bool `json:"-" query:"raw"`
}

func (h *handlers) generate(ctx handler.Context, req generateRequest) handler.Response {
	res, err := h.svc.Generate(ctx, req.GenerateRequest)
	if err != nil {
		return handler.Error(err)
	}
	if req.Raw {
		return handler.Blob(res.Image.Data, res.MIMEType, "qr-"+res.ID.String()+res.Image.Format.Extension())
	}
	return handler.JSON(res, handler.WithStatus(http.StatusCreated))
}

// preview renders without recording history. Requests sharing an
// X-Session-ID supersede each other; without the header every request gets
// a throwaway session.
func (h *handlers) preview(ctx handler.Context, req qrsvc.GenerateRequest) handler.Response {
	id := ctx.Request().Header.Get(SessionHeader)

	var sess *qrsvc.Session
	if id == "" {
		sess = h.svc.NewSession()
		defer sess.Close()
	} else {
		var created bool
		sess, created = h.sessions.GetOrCreate(id, h.svc.NewSession)
		if created {
			h.log.DebugContext(ctx, "preview session opened", slog.String("session_id", id))
		}
	}

	res, err := sess.Preview(ctx, req)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(res)
}

type scanRequest struct {
	Image *multipart.FileHeader `file:"image"`
	Lat   *float64              `form:"lat"`
	Lng   *float64              `form:"lng"`
}

func (r scanRequest) location() (*history.Location, error) {
	if r.Lat == nil && r.Lng == nil {
		return nil, nil
	}
	err := validator.Apply(
		validator.Custom("lat", "must be between -90 and 90", func() bool {
			return r.Lat != nil && *r.Lat >= -90 && *r.Lat <= 90
		}),
		validator.Custom("lng", "must be between -180 and 180", func() bool {
			return r.Lng != nil && *r.Lng >= -180 && *r.Lng <= 180
		}),
	)
	if err != nil {
		return nil, err
	}
	return &history.Location{Lat: *r.Lat, Lng: *r.Lng}, nil
}

func (h *handlers) scan(ctx handler.Context, req scanRequest) handler.Response {
	loc, err := req.location()
	if err != nil {
		return handler.Error(err)
	}
	if req.Image == nil {
		return handler.Error(file.ErrNilFileHeader)
	}

	f, err := file.OpenUpload(req.Image, 0, file.ImageMIMETypes...)
	if err != nil {
		return handler.Error(err)
	}
	defer f.Close()

	res, err := h.svc.Scan(ctx, qrsvc.ScanRequest{Image: f, Size: req.Image.Size, Location: loc})
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(res, handler.WithStatus(http.StatusCreated))
}

type historyQuery struct {
	Limit int `query:"limit"`
}

func (h *handlers) listHistory(ctx handler.Context, q historyQuery) handler.Response {
	if q.Limit < 0 {
		return handler.Error(validator.Apply(
			validator.Custom("limit", "must not be negative", func() bool { return false })))
	}
	records, err := h.svc.History(ctx, q.Limit)
	if err != nil {
		return handler.Error(err)
	}
	if records == nil {
		records = []history.Record{}
	}
	return handler.JSON(records, handler.WithMeta(map[string]any{"count": len(records)}))
}

func (h *handlers) clearHistory(ctx handler.Context, _ struct{}) handler.Response {
	if err := h.svc.Clear(ctx); err != nil {
		return handler.Error(err)
	}
	return handler.Empty()
}

func (h *handlers) removeHistory(ctx handler.Context, _ struct{}) handler.Response {
	id, err := uuid.Parse(chi.URLParam(ctx.Request(), "id"))
	if err != nil {
		return handler.Error(handler.ErrBadRequest.WithMessage("invalid record id"))
	}
	if err := h.svc.Remove(ctx, id); err != nil {
		return handler.Error(err)
	}
	return handler.Empty()
}

func (h *handlers) stats(ctx handler.Context, _ struct{}) handler.Response {
	s, err := h.svc.Stats(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(s)
}
