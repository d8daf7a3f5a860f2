// Package speedtest wraps the speedtest.net measurement capability: server
// selection, one download/upload/ping run, and the latency prober used for
// stability sampling.
package speedtest

import (
	"context"
	"fmt"
	"sort"
	"time"

	st "github.com/showwin/speedtest-go/speedtest"

	"netpulse/pkg/logx"
)

// Config controls how a measurement run is executed.
type Config struct {
	// ServerCount is how many distance-sorted candidates are pinged before
	// picking the lowest-latency server.
	ServerCount int
	// Timeout bounds one whole measurement run.
	Timeout time.Duration
}

// Measurement is the outcome of one run.
type Measurement struct {
	DownloadMbps  float64
	UploadMbps    float64
	PingMs        float64
	ServerName    string
	ServerCountry string
	ISP           string
}

// Error is a measurement fault, tagged with the stage that produced it.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string { return fmt.Sprintf("speedtest %s: %v", e.Stage, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

func stageErr(stage string, err error) *Error { return &Error{Stage: stage, Err: err} }

// Client performs speedtest runs. Runs are strictly sequential; the client
// holds no cross-run state.
type Client struct {
	cfg Config
	log logx.Logger
}

func New(cfg Config, log logx.Logger) *Client {
	if cfg.ServerCount <= 0 {
		cfg.ServerCount = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &Client{cfg: cfg, log: log}
}

// Measure selects the best available server and performs one download and
// one upload probe against it. Any fault aborts the run; no partial result
// is returned.
func (c *Client) Measure(ctx context.Context) (*Measurement, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	// IMPORTANT: avoid package-level speedtest helpers; speedtest-go keeps a
	// package-level default client that can retain large snapshots across runs.
	stc := st.New()
	defer func() {
		stc.Snapshots().Clean()
		stc.Reset()
	}()

	user, err := stc.FetchUserInfoContext(ctx)
	if err != nil {
		return nil, stageErr("user info", err)
	}

	server, err := c.selectServer(ctx, stc)
	if err != nil {
		return nil, err
	}

	c.log.Debug("server selected",
		logx.String("name", server.Sponsor),
		logx.String("country", server.Country),
		logx.Float64("distance_km", server.Distance),
		logx.Duration("latency", server.Latency),
	)

	if err := server.DownloadTestContext(ctx); err != nil {
		return nil, stageErr("download", err)
	}
	dl := server.DLSpeed.Mbps()

	if err := server.UploadTestContext(ctx); err != nil {
		return nil, stageErr("upload", err)
	}
	ul := server.ULSpeed.Mbps()

	m := &Measurement{
		DownloadMbps:  dl,
		UploadMbps:    ul,
		PingMs:        float64(server.Latency) / float64(time.Millisecond),
		ServerName:    server.Sponsor,
		ServerCountry: server.Country,
		ISP:           user.Isp,
	}

	c.log.Info("measurement completed",
		logx.Float64("download_mbps", m.DownloadMbps),
		logx.Float64("upload_mbps", m.UploadMbps),
		logx.Float64("ping_ms", m.PingMs),
		logx.String("server", m.ServerName),
	)
	return m, nil
}

// selectServer picks the lowest-latency server among the nearest candidates.
// Candidates are pinged one at a time: a single run owns the network.
func (c *Client) selectServer(ctx context.Context, stc *st.Speedtest) (*st.Server, error) {
	servers, err := stc.FetchServerListContext(ctx)
	if err != nil {
		return nil, stageErr("server list", err)
	}
	if a := servers.Available(); a != nil {
		servers = *a
	}
	if len(servers) == 0 {
		return nil, stageErr("server list", fmt.Errorf("no servers available"))
	}

	candidates := nearestCandidates(servers, c.cfg.ServerCount)

	pinged := make([]*st.Server, 0, len(candidates))
	for _, s := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, stageErr("ping", err)
		}
		if err := s.PingTestContext(ctx, nil); err != nil {
			c.log.Warn("candidate ping failed",
				logx.String("server", s.Sponsor),
				logx.String("host", s.Host),
				logx.Err(err),
			)
			continue
		}
		pinged = append(pinged, s)
	}

	chosen := lowestLatency(pinged)
	if chosen == nil {
		return nil, stageErr("ping", fmt.Errorf("all latency tests failed"))
	}
	return chosen, nil
}

// nearestCandidates returns up to n servers sorted by distance.
func nearestCandidates(servers st.Servers, n int) st.Servers {
	sorted := make(st.Servers, len(servers))
	copy(sorted, servers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Distance < sorted[j].Distance })

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// lowestLatency returns the server with the smallest measured latency,
// ignoring servers without a positive latency reading.
func lowestLatency(servers []*st.Server) *st.Server {
	var best *st.Server
	for _, s := range servers {
		if s == nil || s.Latency <= 0 {
			continue
		}
		if best == nil || s.Latency < best.Latency {
			best = s
		}
	}
	return best
}
