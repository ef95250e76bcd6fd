// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/learnrust/internal/app/system/catalog"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Snapshotter reports the cached curriculum without forcing a reload.
type Snapshotter interface {
	Peek() *catalog.Snapshot
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client  *mongo.Client
	Catalog Snapshotter
	Log     *zap.Logger
}

// NewHandler constructs a health Handler with the Mongo client and logger.
func NewHandler(client *mongo.Client, cat Snapshotter, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Catalog: cat,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status     string            `json:"status"`
	Database   string            `json:"database"`
	Message    string            `json:"message,omitempty"`
	Error      string            `json:"error,omitempty"`
	Curriculum *curriculumStatus `json:"curriculum,omitempty"`
}

type curriculumStatus struct {
	Lessons  int  `json:"lessons"`
	Degraded bool `json:"degraded"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "curriculum":{"lessons":12,"degraded":false} }
//
// On DB failure: 503 and
//
//	{ "status":"error", "message":"Database unavailable", "error":"…"}
//
// The curriculum block is omitted until the catalog has loaded once.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	if h.Catalog != nil {
		if snap := h.Catalog.Peek(); snap != nil {
			resp.Curriculum = &curriculumStatus{
				Lessons:  snap.Curriculum.ContentCount(),
				Degraded: snap.Degraded(),
			}
		}
	}

	_ = json.NewEncoder(w).Encode(resp)
}
