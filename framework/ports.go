package framework

import (
	"context"
	"math/rand"
	"net"
	"strconv"
	"sync"
	"time"
)

const (
	defaultFirstPort = 32768
	defaultEndPort   = 65536
)

// PortAllocator hands out TCP ports that are free at the time of the call.
//
// All candidates in the range are shuffled once, when the allocator is created. Calls to
// Allocate share a cursor into that permutation, so a second call continues where the
// previous one stopped instead of retrying the same candidates in the same order. When
// the cursor reaches the end it wraps around to the start of the same permutation.
//
// There is an unavoidable window between Allocate returning a port and the caller
// binding it, during which another process could take the port. The random candidate
// order only makes that unlikely.
type PortAllocator struct {
	candidates []int
	next       int
	logger     Logger
	lock       sync.Mutex
}

type PortAllocatorOption func(*portAllocatorConfig)

type portAllocatorConfig struct {
	first, end int
	source     rand.Source
	logger     Logger
}

// WithPortRange restricts candidates to [first, end).
func WithPortRange(first, end int) PortAllocatorOption {
	return func(c *portAllocatorConfig) {
		c.first, c.end = first, end
	}
}

// WithRandSource sets the source used for the one-time shuffle.
func WithRandSource(source rand.Source) PortAllocatorOption {
	return func(c *portAllocatorConfig) {
		c.source = source
	}
}

func WithPortLogger(logger Logger) PortAllocatorOption {
	return func(c *portAllocatorConfig) {
		c.logger = logger
	}
}

func NewPortAllocator(options ...PortAllocatorOption) *PortAllocator {
	cfg := portAllocatorConfig{first: defaultFirstPort, end: defaultEndPort}
	for _, o := range options {
		o(&cfg)
	}
	if cfg.source == nil {
		cfg.source = rand.NewSource(time.Now().UnixNano())
	}
	if cfg.logger == nil {
		cfg.logger = NullLogger()
	}
	if cfg.end < cfg.first {
		cfg.end = cfg.first
	}

	candidates := make([]int, 0, cfg.end-cfg.first)
	for p := cfg.first; p < cfg.end; p++ {
		candidates = append(candidates, p)
	}
	rand.New(cfg.source).Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	return &PortAllocator{candidates: candidates, logger: cfg.logger}
}

// Allocate returns a port on host that could be bound exclusively at the time of the
// call. A candidate that cannot be bound is skipped; ErrNoFreePort is returned only
// after every candidate has been tried once.
func (a *PortAllocator) Allocate(ctx context.Context, host string) (int, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	for i := 0; i < len(a.candidates); i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		port := a.nextCandidate()
		if err := probePort(ctx, host, port); err != nil {
			a.logger.Printf("Port %d on %s is not available: %s", port, host, err)
			continue
		}
		return port, nil
	}
	return 0, ErrNoFreePort
}

func (a *PortAllocator) nextCandidate() int {
	if a.next >= len(a.candidates) {
		a.next = 0
	}
	port := a.candidates[a.next]
	a.next++
	return port
}

// probePort binds and immediately closes a listener. Address reuse is turned off so
// that a port held by a reusable listening socket counts as taken.
func probePort(ctx context.Context, host string, port int) error {
	lc := net.ListenConfig{Control: disableAddressReuse}
	ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return err
	}
	return ln.Close()
}
