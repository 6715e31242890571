// Package cache define el puerto de caché clave-valor con TTL.
package cache

import (
	"context"
	"time"
)

// Store caché de bytes con expiración. Get devuelve (nil, nil) en miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Noop implementación nula para entornos sin Redis.
type Noop struct{}

// NewNoop devuelve un Store que nunca acierta.
func NewNoop() *Noop { return &Noop{} }

func (n *Noop) Get(ctx context.Context, key string) ([]byte, error) { return nil, nil }

func (n *Noop) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (n *Noop) Delete(ctx context.Context, key string) error { return nil }
