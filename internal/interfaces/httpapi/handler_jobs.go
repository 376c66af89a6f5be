package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gridironpool/firsttd/internal/usecase"
)

type backfillRequest struct {
	Seasons    []int `json:"seasons" validate:"required,min=1,dive,gt=0"`
	MaxWorkers int   `json:"max_workers" validate:"omitempty,gte=0,lte=16"`
	Regrade    bool  `json:"regrade"`
}

func (h *Handler) RunBackfillJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunBackfillJob")
	defer span.End()

	if h.backfillService == nil {
		writeError(ctx, w, fmt.Errorf("%w: backfill service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req backfillRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.backfillService.Run(ctx, usecase.BackfillInput{
		Seasons:    req.Seasons,
		MaxWorkers: req.MaxWorkers,
		Regrade:    req.Regrade,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "backfill job failed", "seasons", req.Seasons, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
