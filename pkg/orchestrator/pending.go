package orchestrator

import (
	"context"

	"github.com/goliatone/go-regform/pkg/submit"
)

// Pending tracks one dispatched submission.
type Pending struct {
	values submit.Payload
	done   chan struct{}
	result submit.Result
}

func newPending(values submit.Payload) *Pending {
	return &Pending{
		values: append(submit.Payload(nil), values...),
		done:   make(chan struct{}),
	}
}

func (p *Pending) finish(res submit.Result) {
	p.result = res
	close(p.done)
}

// Values returns the payload that was sent.
func (p *Pending) Values() submit.Payload {
	return append(submit.Payload(nil), p.values...)
}

// Done is closed once the result has been presented.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the submission completes or ctx ends.
func (p *Pending) Wait(ctx context.Context) (submit.Result, error) {
	select {
	case <-p.done:
		return p.result, nil
	case <-ctx.Done():
		return submit.Result{}, ctx.Err()
	}
}
