package handler

import (
	"fmt"
	"net/http"

	"echotrace-api/common"
	"echotrace-api/service"
)

type ReminderHandler struct {
	reminderService *service.ReminderService
}

func NewReminderHandler(reminderService *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// Subscribe godoc
// @Summary      Stream reminder notifications
// @Description  Server-sent event stream of reminder messages; public handshake, no token required
// @Tags         reminders
// @Produce      text/event-stream
// @Success      200
// @Router       /reminders/subscribe [get]
func (h *ReminderHandler) Subscribe(w http.ResponseWriter, r *http.Request) *common.AppError {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return common.NewAppError(http.StatusInternalServerError, "Streaming not supported", nil)
	}

	pubsub := h.reminderService.Subscribe(r.Context())
	defer pubsub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := pubsub.Channel()
	for {
		select {
		case <-r.Context().Done():
			return nil
		case msg, open := <-ch:
			if !open {
				return nil
			}
			fmt.Fprintf(w, "data: %s\n\n", msg.Payload)
			flusher.Flush()
		}
	}
}
