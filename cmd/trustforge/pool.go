package main

import (
	"context"

	trustforge "github.com/alnah/go-trustforge"
)

// policyRenderer is the part of trustforge.Renderer the batch uses.
type policyRenderer interface {
	RenderPDF(ctx context.Context, in trustforge.Input) (*trustforge.Result, error)
	RenderHTML(ctx context.Context, in trustforge.Input) (*trustforge.Result, error)
	RenderLaTeX(ctx context.Context, in trustforge.Input) (*trustforge.Result, error)
}

// Compile-time interface implementation check.
var _ policyRenderer = (*trustforge.Renderer)(nil)

// Pool abstracts renderer pool operations for testability.
type Pool interface {
	Acquire() (policyRenderer, error)
	Release(policyRenderer)
	Size() int
	Close() error
}

// rendererPool adapts trustforge.RendererPool to Pool.
type rendererPool struct {
	pool *trustforge.RendererPool
}

// newRendererPool creates a pool of n renderers built with opts.
func newRendererPool(n int, opts ...trustforge.Option) *rendererPool {
	return &rendererPool{pool: trustforge.NewRendererPool(n, opts...)}
}

func (p *rendererPool) Acquire() (policyRenderer, error) {
	r, err := p.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (p *rendererPool) Release(r policyRenderer) {
	if tr, ok := r.(*trustforge.Renderer); ok {
		p.pool.Release(tr)
	}
}

func (p *rendererPool) Size() int {
	return p.pool.Size()
}

func (p *rendererPool) Close() error {
	return p.pool.Close()
}
