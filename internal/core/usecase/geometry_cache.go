package usecase

import (
	"accomodate-service/internal/constants"
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"context"
	"sync"
)

// GeometryCache хранит геометрию улиц на время жизни процесса.
// Одновременно выполняется не больше одной загрузки; ready не сбрасывается.
type GeometryCache struct {
	mu       sync.Mutex
	provider port.GeometryProviderPort
	streets  []string
	notifier port.NotifierPort
	logger   port.LoggerPort

	state  domain.GeometryLoadState
	done   chan struct{}
	closed bool

	baseCtx context.Context
	cancel  context.CancelFunc
}

func NewGeometryCache(provider port.GeometryProviderPort, streets []string, notifier port.NotifierPort, baseLogger port.LoggerPort) *GeometryCache {
	ctx, cancel := context.WithCancel(context.Background())
	return &GeometryCache{
		provider: provider,
		streets:  append([]string(nil), streets...),
		notifier: notifier,
		logger:   baseLogger.WithFields(port.Fields{"component": "GeometryCache"}),
		state:    domain.IdleGeometry(),
		baseCtx:  ctx,
		cancel:   cancel,
	}
}

func (c *GeometryCache) State() domain.GeometryLoadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load переводит кэш в loading и запускает запрос в фоне.
// Из loading и ready вызов ничего не меняет.
func (c *GeometryCache) Load(ctx context.Context) domain.GeometryLoadState {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "LoadGeometry",
		"streets":  len(c.streets),
	})

	c.mu.Lock()
	if c.closed || !c.state.CanLoad() {
		state, closed := c.state, c.closed
		c.mu.Unlock()
		logger.Debug("Geometry load skipped", port.Fields{"status": string(state.Status), "closed": closed})
		return state
	}
	c.state = domain.LoadingGeometry()
	c.done = make(chan struct{})
	state, done := c.state, c.done
	c.mu.Unlock()

	logger.Info("Geometry load started", nil)
	c.publish(ctx, state)

	// Запрос живет столько же, сколько кэш, а не входящий HTTP-запрос.
	fetchCtx := contextkeys.ContextWithLogger(c.baseCtx, logger)
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		fetchCtx = contextkeys.ContextWithTraceID(fetchCtx, traceID)
	}
	go c.fetch(fetchCtx, done)

	return state
}

func (c *GeometryCache) fetch(ctx context.Context, done chan struct{}) {
	logger := contextkeys.LoggerFromContext(ctx)

	data, err := c.provider.FetchGeometry(ctx, c.streets)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(done)
		logger.Debug("Geometry result discarded after close", nil)
		return
	}
	if err != nil {
		c.state = domain.FailedGeometry(constants.GeometryLoadFailedMessage)
	} else {
		c.state = domain.ReadyGeometry(data)
	}
	state := c.state
	c.mu.Unlock()
	defer close(done)

	if err != nil {
		logger.Error("Geometry load failed", err, nil)
	} else {
		logger.Info("Geometry load finished", port.Fields{"streets_loaded": len(data)})
	}
	c.publish(ctx, state)
}

// Wait блокируется, пока идет загрузка, и возвращает итоговое состояние.
func (c *GeometryCache) Wait(ctx context.Context) (domain.GeometryLoadState, error) {
	c.mu.Lock()
	done := c.done
	loading := c.state.Status == domain.GeometryLoading
	c.mu.Unlock()

	if loading && done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return c.State(), ctx.Err()
		}
	}
	return c.State(), nil
}

// Close завершает работу кэша. Результаты, пришедшие позже, отбрасываются.
func (c *GeometryCache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()
	c.cancel()
	c.logger.Debug("Geometry cache closed", nil)
}

func (c *GeometryCache) publish(ctx context.Context, state domain.GeometryLoadState) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(ctx, port.Event{Type: port.EventGeometryState, Data: state})
}
