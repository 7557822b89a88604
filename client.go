package pranthora

// Client is the top-level entry point for the REST API. It groups the
// resource services behind one validated configuration.
type Client struct {
	Agents *AgentService
	Calls  *CallService

	cfg Config
}

// New creates a REST client. The configuration is validated eagerly so
// misconfiguration surfaces at construction rather than on first call.
func New(cfg Config) (*Client, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	r := newRequestor(cfg)
	return &Client{
		Agents: &AgentService{r: r},
		Calls:  &CallService{r: r},
		cfg:    cfg,
	}, nil
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config { return c.cfg }
