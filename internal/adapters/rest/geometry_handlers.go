package rest

import (
	"accomodate-service/internal/adapters/notifier"
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"accomodate-service/internal/core/port/usecases_port"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const keepAliveInterval = 15 * time.Second

// EventSubscriber - источник SSE-событий для одного подключения.
type EventSubscriber interface {
	AddClient(sessionID string) notifier.ClientChannel
	RemoveClient(sessionID string, ch notifier.ClientChannel)
}

type GeometryHandlers struct {
	geometry  usecases_port.GeometryCachePort
	events    EventSubscriber
	keepAlive time.Duration
}

func NewGeometryHandlers(geometry usecases_port.GeometryCachePort, events EventSubscriber) *GeometryHandlers {
	return &GeometryHandlers{geometry: geometry, events: events, keepAlive: keepAliveInterval}
}

// GetGeometry обрабатывает GET /geometry
func (h *GeometryHandlers) GetGeometry(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, h.geometry.State())
}

// LoadGeometry обрабатывает POST /geometry/load[?wait=true].
// Без wait отвечает сразу: 202, если загрузка идет, иначе 200 с текущим состоянием.
func (h *GeometryHandlers) LoadGeometry(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "LoadGeometry"})

	state := h.geometry.Load(r.Context())
	if r.URL.Query().Get("wait") == "true" {
		var err error
		state, err = h.geometry.Wait(r.Context())
		if err != nil {
			logger.Warn("Client gave up waiting for geometry", port.Fields{"error": err.Error()})
			return
		}
	}

	status := http.StatusOK
	if state.Status == domain.GeometryLoading {
		status = http.StatusAccepted
	}
	RespondWithJSON(w, status, state)
}

// Subscribe обрабатывает GET /events: поток SSE с изменениями геометрии и объявлений.
func (h *GeometryHandlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Subscribe"})
	current, _ := CurrentUserFromContext(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteJSONError(w, http.StatusInternalServerError, "Streaming is not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := h.events.AddClient(current.SessionID.String())
	defer h.events.RemoveClient(current.SessionID.String(), clientChan)

	handlerLogger.Info("New client subscribed to events", nil)

	if _, err := fmt.Fprint(w, "event: connected\ndata: {}\n\n"); err != nil {
		return
	}
	// первым событием отдаем текущее состояние геометрии
	sent, err := writeGeometryState(w, h.geometry.State())
	if err != nil {
		handlerLogger.Error("Failed to write initial geometry state", err, nil)
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case msg := <-clientChan:
			if _, err := w.Write(msg); err != nil {
				handlerLogger.Error("Error writing to client, closing SSE connection", err, nil)
				return
			}
			if status, ok := geometryStatusOf(msg); ok {
				sent = status
			}
			flusher.Flush()
		case <-ticker.C:
			// событие геометрии могло потеряться в переполненной очереди: досылаем, если статус сменился
			if current := h.geometry.State(); current.Status != sent {
				if sent, err = writeGeometryState(w, current); err != nil {
					return
				}
				handlerLogger.Debug("Geometry state resent on keep-alive", port.Fields{"status": string(sent)})
			} else if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				// строки с двоеточия - комментарии SSE, клиент их игнорирует
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			handlerLogger.Info("SSE client disconnected", nil)
			return
		}
	}
}

func writeGeometryState(w http.ResponseWriter, state domain.GeometryLoadState) (domain.GeometryStatus, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", port.EventGeometryState, payload); err != nil {
		return "", err
	}
	return state.Status, nil
}

var geometryEventPrefix = []byte("event: " + port.EventGeometryState + "\ndata: ")

// geometryStatusOf достает статус из готового SSE-сообщения geometry_state.
func geometryStatusOf(msg []byte) (domain.GeometryStatus, bool) {
	if !bytes.HasPrefix(msg, geometryEventPrefix) {
		return "", false
	}
	var state struct {
		Status domain.GeometryStatus `json:"status"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(msg[len(geometryEventPrefix):]), &state); err != nil {
		return "", false
	}
	return state.Status, true
}

// Health обрабатывает GET /health
func (h *GeometryHandlers) Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok", GeometryStatus: string(h.geometry.State().Status)})
}
