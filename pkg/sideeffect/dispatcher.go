package sideeffect

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Dispatcher runs best-effort side effects (notifications, emails, activity
// log writes) decoupled from the primary state transition. Failures are
// logged and swallowed; they never surface to the caller.
type Dispatcher interface {
	Dispatch(name string, task func(ctx context.Context) error)
	Close()
}

type asyncDispatcher struct {
	tasks   chan namedTask
	wg      sync.WaitGroup
	timeout time.Duration
	once    sync.Once
}

type namedTask struct {
	name string
	run  func(ctx context.Context) error
}

// NewAsync starts workers consuming a buffered task queue. Each task gets its
// own context with the given timeout so a stuck SMTP server cannot hold a
// worker forever.
func NewAsync(workers, buffer int, timeout time.Duration) Dispatcher {
	if workers < 1 {
		workers = 1
	}
	d := &asyncDispatcher{
		tasks:   make(chan namedTask, buffer),
		timeout: timeout,
	}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}
	return d
}

func (d *asyncDispatcher) worker() {
	defer d.wg.Done()
	for t := range d.tasks {
		d.runOne(t)
	}
}

func (d *asyncDispatcher) runOne(t namedTask) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("side effect %s panicked: %v", t.name, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := t.run(ctx); err != nil {
		log.Errorf("side effect %s failed (non-fatal): %v", t.name, err)
	}
}

func (d *asyncDispatcher) Dispatch(name string, task func(ctx context.Context) error) {
	select {
	case d.tasks <- namedTask{name: name, run: task}:
	default:
		// Queue full: drop rather than block the request path.
		log.Warnf("side effect %s dropped: queue full", name)
	}
}

func (d *asyncDispatcher) Close() {
	d.once.Do(func() {
		close(d.tasks)
	})
	d.wg.Wait()
}

type syncDispatcher struct{}

// NewSynchronous runs tasks inline. Used in tests where side effects must be
// observable immediately after the operation returns.
func NewSynchronous() Dispatcher {
	return syncDispatcher{}
}

func (syncDispatcher) Dispatch(name string, task func(ctx context.Context) error) {
	if err := task(context.Background()); err != nil {
		log.Errorf("side effect %s failed (non-fatal): %v", name, err)
	}
}

func (syncDispatcher) Close() {}
