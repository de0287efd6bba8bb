package transport

// EventUnauthorized names the event published when the API answers 401.
const EventUnauthorized = "api:unauthorized"

// UnauthorizedEvent tells a navigation layer that the session is gone. Path is where the user was.
type UnauthorizedEvent struct {
	Name   string
	Path   string
	Method string
	URL    string
}

type observer struct {
	id int
	fn func(UnauthorizedEvent)
}

// OnUnauthorized registers fn for 401 responses and returns a function that removes it. Observers run
// synchronously before the failing call returns.
func (c *Client) OnUnauthorized(fn func(UnauthorizedEvent)) (unsubscribe func()) {
	c.observersMu.Lock()
	defer c.observersMu.Unlock()

	c.nextObserver++
	id := c.nextObserver
	c.observers = append(c.observers, observer{id: id, fn: fn})

	return func() {
		c.observersMu.Lock()
		defer c.observersMu.Unlock()
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// Unauthorized returns the event channel enabled by WithEventBuffer, or nil. Events are dropped when the buffer
// is full.
func (c *Client) Unauthorized() <-chan UnauthorizedEvent {
	return c.events
}

func (c *Client) notifyUnauthorized(req *pendingRequest) {
	path := req.path
	if c.currentPath != nil {
		path = c.currentPath()
	}
	ev := UnauthorizedEvent{
		Name:   EventUnauthorized,
		Path:   path,
		Method: req.method,
		URL:    req.path,
	}
	c.logger.Info().Str("path", path).Str("url", req.path).Msg("api answered unauthenticated")

	c.observersMu.RLock()
	observers := make([]observer, len(c.observers))
	copy(observers, c.observers)
	c.observersMu.RUnlock()

	for _, o := range observers {
		o.fn(ev)
	}

	if c.events != nil {
		select {
		case c.events <- ev:
		default:
			c.logger.Warn().Str("event", EventUnauthorized).Msg("event buffer full, dropping")
		}
	}
}
