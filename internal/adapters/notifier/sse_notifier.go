package notifier

import (
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/port"
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// ClientChannel - канал событий одного SSE-подключения (одной вкладки).
type ClientChannel chan []byte

type eventWithContext struct {
	ctx   context.Context
	event port.Event
}

const (
	eventBufferSize  = 100
	clientBufferSize = 32
)

// SSENotifier - реализация NotifierPort. События рассылаются всем подключенным клиентам:
// геометрия и объявления общие для всех сессий.
type SSENotifier struct {
	// ключ - id сессии, значение - открытые подключения этой сессии
	clients map[string][]ClientChannel
	mu      sync.RWMutex

	eventChan chan eventWithContext
	stop      chan struct{}
	done      chan struct{}
	stopOnce  sync.Once

	logger port.LoggerPort
}

// NewSSENotifier создает нотификатор и запускает диспетчер.
func NewSSENotifier(baseLogger port.LoggerPort) *SSENotifier {
	n := &SSENotifier{
		clients:   make(map[string][]ClientChannel),
		eventChan: make(chan eventWithContext, eventBufferSize),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		logger:    baseLogger.WithFields(port.Fields{"component": "SSENotifier"}),
	}
	go n.dispatcher()
	return n
}

func (n *SSENotifier) dispatcher() {
	defer close(n.done)
	n.logger.Debug("Notifier dispatcher started.", nil)
	for {
		select {
		case <-n.stop:
			n.logger.Debug("Notifier dispatcher stopped.", nil)
			return
		case pkg := <-n.eventChan:
			n.dispatch(pkg.ctx, pkg.event)
		}
	}
}

func (n *SSENotifier) dispatch(ctx context.Context, event port.Event) {
	eventLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "SSENotifier.dispatcher",
		"event_type": event.Type,
	})

	payload, err := json.Marshal(event.Data)
	if err != nil {
		eventLogger.Error("Failed to marshal event", err, nil)
		return
	}
	message := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, payload))

	n.mu.RLock()
	defer n.mu.RUnlock()

	delivered := 0
	for sessionID, channels := range n.clients {
		for _, ch := range channels {
			select {
			case ch <- message:
				delivered++
			default:
				eventLogger.Warn("Client channel is full, skipping.", port.Fields{"session_id": sessionID})
			}
		}
	}
	eventLogger.Debug("Event dispatched", port.Fields{"delivered": delivered})
}

// Notify ставит событие в очередь диспетчера. Не блокирует: при переполненной очереди событие отбрасывается.
func (n *SSENotifier) Notify(ctx context.Context, event port.Event) {
	select {
	case <-n.stop:
		return
	default:
	}

	select {
	case n.eventChan <- eventWithContext{ctx: ctx, event: event}:
	default:
		contextkeys.LoggerFromContext(ctx).Warn("Notifier queue is full, event dropped.", port.Fields{"event_type": event.Type})
	}
}

// AddClient регистрирует новое SSE-подключение сессии.
func (n *SSENotifier) AddClient(sessionID string) ClientChannel {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(ClientChannel, clientBufferSize)
	n.clients[sessionID] = append(n.clients[sessionID], ch)

	n.logger.Info("Client connected", port.Fields{
		"session_id":  sessionID,
		"connections": len(n.clients[sessionID]),
	})
	return ch
}

// RemoveClient удаляет подключение, когда клиент закрыл соединение.
func (n *SSENotifier) RemoveClient(sessionID string, ch ClientChannel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	channels, found := n.clients[sessionID]
	if !found {
		return
	}
	remaining := make([]ClientChannel, 0, len(channels))
	for _, c := range channels {
		if c != ch {
			remaining = append(remaining, c)
		}
	}

	if len(remaining) == 0 {
		delete(n.clients, sessionID)
		n.logger.Debug("Last client disconnected for session.", port.Fields{"session_id": sessionID})
		return
	}
	n.clients[sessionID] = remaining
	n.logger.Info("Client disconnected", port.Fields{
		"session_id":            sessionID,
		"remaining_connections": len(remaining),
	})
}

// ClientCount - число открытых подключений.
func (n *SSENotifier) ClientCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	total := 0
	for _, channels := range n.clients {
		total += len(channels)
	}
	return total
}

// Stop останавливает диспетчер. Повторный вызов безопасен.
func (n *SSENotifier) Stop() {
	n.stopOnce.Do(func() { close(n.stop) })
	<-n.done
}
