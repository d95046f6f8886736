package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/mpetrov/lifeline/internal/core/model"
	"github.com/mpetrov/lifeline/internal/core/timeline"
	"github.com/mpetrov/lifeline/internal/presentation/interaction"
	"github.com/mpetrov/lifeline/internal/presentation/layout"
	"github.com/mpetrov/lifeline/internal/presentation/render"
	"github.com/mpetrov/lifeline/internal/util"
)

func (s *Server) handleListChapters(w http.ResponseWriter, r *http.Request) {
	chapters, err := s.store.ListChapters()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if chapters == nil {
		chapters = []model.Chapter{}
	}
	writeJSON(w, http.StatusOK, chapters)
}

func (s *Server) handleCreateChapter(w http.ResponseWriter, r *http.Request) {
	var c model.Chapter
	if err := decodeBody(r, &c); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id, err := s.store.CreateChapter(c)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	created, err := s.store.GetChapter(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetChapter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := s.store.GetChapter(id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, errors.New("chapter not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// chapterPatch carries the updatable chapter fields; nil means unchanged.
// EndDate is raw because an explicit null (clear the end date) must be
// distinguishable from an absent key.
type chapterPatch struct {
	Title     *string         `json:"title"`
	StartDate *string         `json:"start_date"`
	EndDate   json.RawMessage `json:"end_date"`
	Color     *string         `json:"color"`
	XPosition *float64        `json:"x_position"`
	Collapsed *bool           `json:"collapsed"`
	Order     *int            `json:"order"`
}

func (s *Server) handleUpdateChapter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := s.store.GetChapter(id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, errors.New("chapter not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var patch chapterPatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.StartDate != nil {
		c.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		c.EndDate = nil
		if string(patch.EndDate) != "null" {
			var end string
			if err := sonic.Unmarshal(patch.EndDate, &end); err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			c.EndDate = &end
		}
	}
	if patch.Color != nil {
		c.Color = *patch.Color
	}
	if patch.XPosition != nil {
		c.XPosition = *patch.XPosition
	}
	if patch.Collapsed != nil {
		c.Collapsed = *patch.Collapsed
	}
	if patch.Order != nil {
		c.Order = *patch.Order
	}

	if err := s.store.UpdateChapter(c); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	updated, err := s.store.GetChapter(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteChapter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteChapter(id); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.store.ListEvents()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var e model.Event
	if err := decodeBody(r, &e); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id, err := s.store.CreateEvent(e)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	created, err := s.store.GetEvent(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.expandForEvent(created)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := s.store.GetEvent(id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, errors.New("event not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// eventPatch mirrors chapterPatch for event updates. Chapter is raw so an
// explicit null can detach the event from its chapter.
type eventPatch struct {
	Chapter json.RawMessage `json:"chapter"`
	Title   *string         `json:"title"`
	Date    *string         `json:"date"`
	Content *string         `json:"content"`
	Order   *int            `json:"order"`
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := s.store.GetEvent(id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, errors.New("event not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var patch eventPatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if patch.Chapter != nil {
		e.Chapter = nil
		if string(patch.Chapter) != "null" {
			var chapterID int64
			if err := sonic.Unmarshal(patch.Chapter, &chapterID); err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			e.Chapter = &chapterID
		}
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Content != nil {
		e.Content = *patch.Content
	}
	if patch.Order != nil {
		e.Order = *patch.Order
	}

	if err := s.store.UpdateEvent(e); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	updated, err := s.store.GetEvent(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.expandForEvent(updated)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteEvent(id); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// expandForEvent grows the owning chapter's date range when an event lands
// outside it. The write already succeeded, so a failed expansion is logged
// rather than failing the request.
func (s *Server) expandForEvent(e model.Event) {
	if e.Chapter == nil {
		return
	}
	chapter, err := s.store.GetChapter(*e.Chapter)
	if err != nil {
		util.LogWarnf("event %d references missing chapter %d: %v", e.ID, *e.Chapter, err)
		return
	}
	date, err := timeline.ParseLocalDate(e.Date)
	if err != nil {
		return
	}
	start, end, changed := interaction.ExpandedRange(chapter, date)
	if !changed {
		return
	}
	util.LogDebugf("expanding chapter %d range to [%s, %s]", chapter.ID, start, end)
	if err := s.store.UpdateChapterRange(chapter.ID, start, end); err != nil {
		util.LogErrorf("expanding chapter %d range failed: %v", chapter.ID, err)
	}
}

// timelineDataResponse is the combined pre-partitioned payload the frontend
// renders from.
type timelineDataResponse struct {
	MainTimeline []model.TimelinePeriod `json:"main_timeline"`
	Branches     []model.TimelineBranch `json:"branches"`
}

func (s *Server) handleTimelineData(w http.ResponseWriter, r *http.Request) {
	data, ok := s.deriveTimeline(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, timelineDataResponse{
		MainTimeline: data.MainTimeline,
		Branches:     data.Branches,
	})
}

type layoutResponse struct {
	Positions   layout.PositionMap            `json:"positions"`
	TotalHeight float64                       `json:"total_height"`
	Branches    map[string]layout.PositionMap `json:"branches"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	data, ok := s.deriveTimeline(w)
	if !ok {
		return
	}
	engine := s.engine()
	height, _ := s.viewport()
	result := engine.Layout(data.MainTimeline, height)

	branches := make(map[string]layout.PositionMap, len(data.Branches))
	for _, b := range data.Branches {
		branches[strconv.FormatInt(b.ID, 10)] = engine.BranchLayout(b, data.MainTimeline, result.Positions)
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		Positions:   result.Positions,
		TotalHeight: result.TotalHeight,
		Branches:    branches,
	})
}

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	data, ok := s.deriveTimeline(w)
	if !ok {
		return
	}
	engine := s.engine()
	height, width := s.viewport()
	result := engine.Layout(data.MainTimeline, height)
	svg := render.New(engine, width).SVG(&data, result)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(svg)
}

func (s *Server) deriveTimeline(w http.ResponseWriter) (model.TimelineData, bool) {
	chapters, err := s.store.ListChapters()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return model.TimelineData{}, false
	}
	events, err := s.store.ListEvents()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return model.TimelineData{}, false
	}
	return timeline.Derive(chapters, events, util.Now()), true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid id"))
		return 0, false
	}
	return id, true
}

func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(body, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	out, err := sonic.Marshal(v)
	if err != nil {
		util.LogErrorf("encoding response: %v", err)
		http.Error(w, `{"error":"encoding failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(out)
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		util.LogErrorf("request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
