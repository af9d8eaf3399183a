package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// IdleEvictor removes entries last used before a cutoff and reports how many
// were removed.
type IdleEvictor interface {
	DeleteIdle(before time.Time) int
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// sessionSweeper periodically evicts idle sessions.
type sessionSweeper struct {
	evictor  IdleEvictor
	ttl      time.Duration
	interval time.Duration
	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewSessionSweeper(evictor IdleEvictor, ttl, interval time.Duration) Worker {
	return &sessionSweeper{
		evictor:  evictor,
		ttl:      ttl,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start implements Worker.
func (w *sessionSweeper) Start(ctx context.Context) {
	if w.ttl <= 0 || w.interval <= 0 {
		log.Println("⚠️  Session sweeper disabled")
		return
	}

	w.wg.Add(1)
	go w.sweep(ctx)

	log.Printf("🧹 Session sweeper started (ttl %s, every %s)\n", w.ttl, w.interval)
}

// Stop implements Worker.
func (w *sessionSweeper) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping session sweeper...")
		close(w.stopChan)
	})
	w.wg.Wait()
}

func (w *sessionSweeper) sweep(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Println("🧹 Session sweeper stopped")
			return
		case <-ctx.Done():
			log.Println("🧹 Session sweeper stopped")
			return
		case now := <-ticker.C:
			if removed := w.evictor.DeleteIdle(now.Add(-w.ttl)); removed > 0 {
				log.Printf("🧹 Evicted %d idle sessions\n", removed)
			}
		}
	}
}
