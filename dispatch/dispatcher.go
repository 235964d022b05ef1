package dispatch

import (
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/vitalvas/actionroute/routes"
)

// Dispatcher resolves requests to actions and invokes the handler
// registered for each action. It implements http.Handler.
type Dispatcher struct {
	// NotFoundHandler answers requests without a route or without a
	// handler for their action. If nil, http.NotFound is used.
	NotFoundHandler http.Handler

	manager   *routes.Manager
	logger    *zap.Logger
	metrics   *Metrics
	requestID RequestIDConfig
	skipClean bool

	mu       sync.RWMutex
	handlers map[routes.Action]http.Handler
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMetrics records dispatch outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithRequestID configures request ID assignment.
func WithRequestID(cfg RequestIDConfig) Option {
	return func(d *Dispatcher) {
		d.requestID = cfg
	}
}

// SkipClean disables path normalization before matching.
func SkipClean() Option {
	return func(d *Dispatcher) {
		d.skipClean = true
	}
}

// New returns a dispatcher resolving requests with manager.
func New(manager *routes.Manager, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		manager:  manager,
		logger:   zap.NewNop(),
		handlers: make(map[routes.Action]http.Handler),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Handle registers handler for action, replacing any previous one.
func (d *Dispatcher) Handle(action routes.Action, handler http.Handler) {
	d.mu.Lock()
	d.handlers[action] = handler
	d.mu.Unlock()
}

// HandleFunc registers f for the action in its "Controller->method" form.
func (d *Dispatcher) HandleFunc(action string, f func(http.ResponseWriter, *http.Request)) {
	d.Handle(routes.ParseAction(action), http.HandlerFunc(f))
}

// Handler returns the handler registered for action.
func (d *Dispatcher) Handler(action routes.Action) (http.Handler, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	h, ok := d.handlers[action]
	return h, ok
}

// ServeHTTP assigns a request ID, resolves the request path and dispatches
// to the action's handler. Panics in handlers are answered with 500.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	req = d.requestID.assign(w, req)

	defer func() {
		if err := recover(); err != nil {
			d.metrics.observe(req.Method, resultPanic)
			d.logger.Error("handler panic",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("request_id", RequestIDFromContext(req.Context())),
				zap.Any("panic", err),
			)

			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}()

	p := req.URL.Path
	if !d.skipClean {
		p = cleanPath(p)
	}

	sink := &requestSink{method: req.Method}
	action, ok := d.manager.GetRoute(sink, p)
	if !ok {
		d.metrics.observe(req.Method, resultUnmatched)
		d.logger.Debug("route lookup failed",
			zap.String("method", req.Method),
			zap.String("path", p),
			zap.Error(routes.ErrNoMatch),
		)
		d.notFound(w, req)
		return
	}

	handler, ok := d.Handler(action)
	if !ok {
		d.metrics.observe(req.Method, resultUnhandled)
		d.logger.Warn("no handler for action",
			zap.String("action", action.String()),
			zap.String("path", p),
		)
		d.notFound(w, req)
		return
	}

	d.metrics.observeAction(action.String())

	handler.ServeHTTP(w, WithRoute(req, action, sink.params))

	// Not reached when the handler panics; the recover above records it.
	d.metrics.observe(req.Method, resultMatched)
}

func (d *Dispatcher) notFound(w http.ResponseWriter, req *http.Request) {
	if d.NotFoundHandler != nil {
		d.NotFoundHandler.ServeHTTP(w, req)
		return
	}
	http.NotFound(w, req)
}
