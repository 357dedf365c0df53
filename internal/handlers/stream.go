package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/financas-app/backend/internal/middleware"
	"github.com/financas-app/backend/pkg/logger"
)

// StreamLedger pushes the month's effective ledger over server-sent events.
// The first event is the full snapshot; a new event follows every data
// change, each one a fresh projection merge. The listener is torn down when
// the client disconnects.
func (h *transactionHandlers) StreamLedger(w http.ResponseWriter, r *http.Request) {
	year, month, err := monthYear(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	uid := middleware.UID(r.Context())
	events, cancel := h.TransactionSvc.WatchLedger(r.Context(), uid, year, month)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	log := logger.FromContext(r.Context())
	for {
		select {
		case ledger, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(ledger)
			if err != nil {
				log.Error("failed to encode ledger event", "error", err)
				return
			}
			fmt.Fprintf(w, "event: ledger\ndata: %s\n\n", payload)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
