package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"bugbash/internal/game"
)

// ConnContext carries per-connection identity into handlers.
type ConnContext struct {
	ConnID string
	Room   *game.Room
}

// internal (untyped) handler signature.
type rawHandler func(c *ConnContext, payload json.RawMessage)

// Router keeps a map[type]handler for inbound frames, à-la gin.Engine.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]rawHandler
}

func NewRouter() *Router { return &Router{handlers: make(map[string]rawHandler)} }

// Register binds a message type to a strongly-typed handler. Frames whose
// payload does not decode into P are dropped without a reply or state change.
func Register[P any](r *Router, msgType string, h func(c *ConnContext, p P)) {
	if msgType == "" {
		panic("ws router: empty message type")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[msgType] = func(c *ConnContext, payload json.RawMessage) {
		var p P
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &p); err != nil {
				zap.L().Debug("ws.drop_malformed",
					zap.String("type", msgType), zap.Error(err))
				return
			}
		}
		h(c, p)
	}
}

// dispatch is called by the server's reader loop; unknown types are ignored.
func (r *Router) dispatch(c *ConnContext, env Envelope) {
	r.mu.RLock()
	h, ok := r.handlers[env.Type]
	r.mu.RUnlock()
	if !ok {
		return
	}
	h(c, env.Payload)
}
