package password

import "context"

// Pool bounds the number of concurrent derivations so a burst of logins
// cannot starve the rest of the process of CPU.
type Pool struct {
	hasher Hasher
	sem    chan struct{}
}

// NewPool wraps h with a semaphore of the given size (minimum 1).
func NewPool(h Hasher, size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{hasher: h, sem: make(chan struct{}, size)}
}

func (p *Pool) acquire(ctx context.Context) error {
	select {
	case p.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) release() { <-p.sem }

// Hash derives a credential once a slot is free.
func (p *Pool) Hash(ctx context.Context, password, salt string) (Credential, error) {
	if err := p.acquire(ctx); err != nil {
		return Credential{}, err
	}
	defer p.release()
	return p.hasher.Hash(password, salt)
}

// Verify checks password against cred once a slot is free.
func (p *Pool) Verify(ctx context.Context, password string, cred Credential) error {
	if err := p.acquire(ctx); err != nil {
		return err
	}
	defer p.release()
	return p.hasher.Verify(password, cred)
}
