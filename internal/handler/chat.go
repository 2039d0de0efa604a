package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"store-insights-go/internal/assistant"
	"store-insights-go/internal/export"
	"store-insights-go/pkg/response"
)

// Chat runs one assistant completion grounded on the current snapshot.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	log := h.log.WithRequest(r).WithField("handler", "chat")

	var body struct {
		Messages []assistant.Message `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.Messages) == 0 {
		response.Error(w, http.StatusBadRequest, "missing messages")
		return
	}

	answer, err := h.assistant.Chat(r.Context(), body.Messages, h.snapshot())
	if err != nil {
		log.WithField("error", err.Error()).Warn("assistant call failed")
		response.Error(w, http.StatusBadGateway, "assistant unavailable")
		return
	}
	response.OK(w, map[string]string{"answer": answer})
}

// Export streams the report workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	log := h.log.WithRequest(r).WithField("handler", "export")

	f, err := export.BuildReport(h.snapshot(), time.Now())
	if err != nil {
		log.WithField("error", err.Error()).Error("report build failed")
		response.Error(w, http.StatusInternalServerError, "report build failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="store-report.xlsx"`)
	if err := f.Write(w); err != nil {
		log.WithField("error", err.Error()).Error("report write failed")
	}
}
