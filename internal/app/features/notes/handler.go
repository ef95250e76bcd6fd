// internal/app/features/notes/handler.go
package notes

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/learnrust/internal/app/features/errors"
	lessonstore "github.com/dalemusser/learnrust/internal/app/store/lessons"
	notestore "github.com/dalemusser/learnrust/internal/app/store/notes"
	"github.com/dalemusser/learnrust/internal/app/system/authz"
	"github.com/dalemusser/learnrust/internal/app/system/htmlsanitize"
	"github.com/dalemusser/learnrust/internal/app/system/httpjson"
	"github.com/dalemusser/learnrust/internal/app/system/limits"
	"github.com/dalemusser/learnrust/internal/app/system/timeouts"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves a learner's lesson notes.
type Handler struct {
	Notes   *notestore.Store
	Lessons *lessonstore.Store
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
}

// NewHandler wires the handler to the stores in db.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Notes:   notestore.New(db),
		Lessons: lessonstore.New(db),
		Log:     logger,
		ErrLog:  errLog,
	}
}

// NoteView is a note with its text rendered as safe HTML. NoteText is kept
// as typed so code samples like Vec<T> survive editing.
type NoteView struct {
	models.LessonNote
	NoteHTML string `json:"note_html"`
}

// ListItem is a note in the notes overview.
type ListItem struct {
	models.NoteWithLesson
	NoteHTML string `json:"note_html"`
}

type upsertInput struct {
	NoteText string `json:"note_text"`
}

func view(n models.LessonNote) NoteView {
	return NoteView{LessonNote: n, NoteHTML: htmlsanitize.PlainTextToHTML(n.NoteText)}
}

func (h *Handler) ids(w http.ResponseWriter, r *http.Request) (uid, lessonID primitive.ObjectID, ok bool) {
	uid, ok = authz.UserID(r)
	if !ok {
		uierrors.Write(w, http.StatusUnauthorized, "Not signed in.")
		return uid, lessonID, false
	}
	lessonID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "lessonID"))
	if err != nil {
		uierrors.NotFound(w, "Lesson not found.")
		return uid, lessonID, false
	}
	return uid, lessonID, true
}

// ServeList handles GET /api/notes.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserID(r)
	if !ok {
		uierrors.Write(w, http.StatusUnauthorized, "Not signed in.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Notes.ListWithLessons(ctx, uid)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "notes: list", err, "Failed to load notes.")
		return
	}
	out := make([]ListItem, 0, len(rows))
	for _, n := range rows {
		out = append(out, ListItem{NoteWithLesson: n, NoteHTML: htmlsanitize.PlainTextToHTML(n.NoteText)})
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"notes": out})
}

// ServeNote handles GET /api/notes/{lessonID}. A lesson without a note
// returns {"note": null}.
func (h *Handler) ServeNote(w http.ResponseWriter, r *http.Request) {
	uid, lessonID, ok := h.ids(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, found, err := h.Notes.Get(ctx, uid, lessonID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "notes: get", err, "Failed to load note.")
		return
	}
	if !found {
		uierrors.WriteJSON(w, http.StatusOK, map[string]any{"note": nil})
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"note": view(n)})
}

// HandleUpsert handles PUT /api/notes/{lessonID}.
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	uid, lessonID, ok := h.ids(w, r)
	if !ok {
		return
	}

	var in upsertInput
	if err := httpjson.Decode(w, r, limits.MaxNoteBodySize, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "notes: decode body", err, "Invalid JSON body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Lessons.GetByID(ctx, lessonID); err != nil {
		if errors.Is(err, lessonstore.ErrNotFound) {
			uierrors.NotFound(w, "Lesson not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "notes: load lesson", err, "Failed to save note.")
		return
	}

	n, err := h.Notes.Upsert(ctx, uid, lessonID, in.NoteText)
	switch {
	case errors.Is(err, notestore.ErrEmpty):
		uierrors.Validation(w, "Note text is required.", map[string]string{"note_text": "Note text is required."})
		return
	case errors.Is(err, notestore.ErrTooLong):
		uierrors.Validation(w, "Note is too long.", map[string]string{"note_text": err.Error()})
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "notes: save", err, "Failed to save note.")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"note": view(n)})
}

// HandleDelete handles DELETE /api/notes/{lessonID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	uid, lessonID, ok := h.ids(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	deleted, err := h.Notes.Delete(ctx, uid, lessonID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "notes: delete", err, "Failed to delete note.")
		return
	}
	if !deleted {
		uierrors.NotFound(w, "Note not found.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
