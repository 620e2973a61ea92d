package flavor

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultTimeout bounds one flavor request
const DefaultTimeout = 8 * time.Second

type result struct {
	name  string
	text  string
	apply func(string)
}

// Dispatcher runs flavor requests in the background and hands their results
// back to the game goroutine. Requests never block the caller; results are
// applied only inside Drain.
type Dispatcher struct {
	Timeout time.Duration

	ctx     context.Context
	cancel  context.CancelFunc
	results chan result
	wg      sync.WaitGroup
}

func NewDispatcher(timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		Timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
		results: make(chan result, 64),
	}
}

// Go starts fetch in the background. Its text, or fallback if it fails or
// returns nothing, is passed to apply during a later Drain.
func (d *Dispatcher) Go(name string, fetch func(ctx context.Context) (string, error), fallback string, apply func(string)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(d.ctx, d.Timeout)
		defer cancel()

		text, err := fetch(ctx)
		if err == nil && text == "" {
			err = ErrEmptyResponse
		}
		if err != nil {
			log.Printf("[flavor] %s failed, using fallback: %v", name, err)
			text = fallback
		}
		select {
		case d.results <- result{name: name, text: text, apply: apply}:
		case <-d.ctx.Done():
		}
	}()
}

// Drain applies every result that has arrived so far and returns how many.
// Call it from the goroutine that owns the session.
func (d *Dispatcher) Drain() int {
	n := 0
	for {
		select {
		case r := <-d.results:
			r.apply(r.text)
			n++
		default:
			return n
		}
	}
}

// Wait blocks until every started request has posted its result
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Close cancels in-flight requests and waits for their goroutines to exit.
// Results not yet drained are dropped.
func (d *Dispatcher) Close() {
	d.cancel()
	d.wg.Wait()
}
