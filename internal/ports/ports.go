// Package ports finds free local TCP ports by ascending scan over a
// bounded range. A port is probed by dialing it: a refused or timed-out
// connection means free, an accepted connection means in use. The window
// between probing and the caller claiming the port is accepted, not
// mitigated; callers claim ports by writing them into the worktree's
// environment file immediately after discovery.
package ports

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/logger"
)

// probeTimeout bounds a single liveness probe.
const probeTimeout = 250 * time.Millisecond

// DialFunc probes one address. Tests inject scripted occupancy.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Pair is an adjacent-port allocation. First is the numerically higher
// port and Second the lower; which role each plays is the caller's policy,
// not the allocator's.
type Pair struct {
	First  int
	Second int
}

// Allocator scans for free ports.
type Allocator struct {
	dial DialFunc
}

// NewAllocator returns an Allocator probing real local TCP ports.
func NewAllocator() *Allocator {
	dialer := &net.Dialer{Timeout: probeTimeout}
	return &Allocator{dial: dialer.DialContext}
}

// NewAllocatorWithDial returns an Allocator using the given probe.
func NewAllocatorWithDial(dial DialFunc) *Allocator {
	return &Allocator{dial: dial}
}

// inUse reports whether something accepts connections on the port.
func (a *Allocator) inUse(ctx context.Context, port int) bool {
	conn, err := a.dial(ctx, "tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Find returns the first free port in [low, high), scanning ascending.
func (a *Allocator) Find(ctx context.Context, low, high int) (int, error) {
	logger.Debug("Ports: scanning for a free port in [%d, %d)", low, high)
	for p := low; p < high; p++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if !a.inUse(ctx, p) {
			logger.Debug("Ports: found free port %d", p)
			return p, nil
		}
	}
	logger.Warn("Ports: range [%d, %d) exhausted", low, high)
	return 0, errors.NoPortAvailable(low, high)
}

// FindPair returns the first pair of numerically adjacent free ports in
// [low, high), scanning ascending. The higher port is reported first.
func (a *Allocator) FindPair(ctx context.Context, low, high int) (Pair, error) {
	logger.Debug("Ports: scanning for an adjacent free pair in [%d, %d)", low, high)
	for p := low; p+1 < high; p++ {
		if err := ctx.Err(); err != nil {
			return Pair{}, err
		}
		if a.inUse(ctx, p) {
			continue
		}
		if a.inUse(ctx, p+1) {
			// p+1 is occupied, so it cannot open a pair either.
			p++
			continue
		}
		logger.Debug("Ports: found free pair %d/%d", p+1, p)
		return Pair{First: p + 1, Second: p}, nil
	}
	logger.Warn("Ports: no adjacent pair in [%d, %d)", low, high)
	return Pair{}, errors.NoPortPairAvailable(low, high)
}
