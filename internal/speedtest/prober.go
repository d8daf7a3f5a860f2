package speedtest

import (
	"context"

	st "github.com/showwin/speedtest-go/speedtest"
)

// ServerProber issues latency round-trips against one selected server. It
// satisfies the stability sampler's Prober interface.
type ServerProber struct {
	server *st.Server
}

// NewProber selects the best available server and returns a prober bound to
// it. Selection cost is paid once; every Probe afterwards is a single ping.
func (c *Client) NewProber(ctx context.Context) (*ServerProber, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	stc := st.New()
	defer func() {
		stc.Snapshots().Clean()
		stc.Reset()
	}()

	server, err := c.selectServer(ctx, stc)
	if err != nil {
		return nil, err
	}
	return &ServerProber{server: server}, nil
}

// Probe performs one latency round-trip.
func (p *ServerProber) Probe(ctx context.Context) error {
	if err := p.server.PingTestContext(ctx, nil); err != nil {
		return stageErr("latency probe", err)
	}
	return nil
}
