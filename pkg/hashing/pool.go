package hashing

import (
	"context"
	"runtime"

	"golang.org/x/crypto/bcrypt"
)

// Hasher runs bcrypt behind a bounded worker slot pool. Bcrypt is CPU-bound
// by design, so an unbounded burst of logins can starve every other request;
// capping concurrent hashes keeps latency predictable under load.
type Hasher struct {
	slots chan struct{}
	cost  int
}

// NewHasher creates a Hasher allowing up to concurrency simultaneous
// bcrypt operations. Zero or negative concurrency falls back to GOMAXPROCS.
func NewHasher(concurrency, cost int) *Hasher {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{
		slots: make(chan struct{}, concurrency),
		cost:  cost,
	}
}

// Hash derives the bcrypt hash of password, waiting for a free slot or
// until ctx is done.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.acquire(ctx); err != nil {
		return "", err
	}
	defer h.release()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare checks password against a stored bcrypt hash. It returns
// bcrypt.ErrMismatchedHashAndPassword when they do not match.
func (h *Hasher) Compare(ctx context.Context, hashed, password string) error {
	if err := h.acquire(ctx); err != nil {
		return err
	}
	defer h.release()

	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}

func (h *Hasher) acquire(ctx context.Context) error {
	select {
	case h.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hasher) release() {
	<-h.slots
}
