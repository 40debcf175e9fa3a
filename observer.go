package localesync

// Observer receives notifications about flushes and reloads. Calls happen on a dedicated
// goroutine; a panicking observer is recovered and a full queue drops events.
type Observer interface {
	OnFlush(lang string, namespace string, added int)
	OnFlushFailure(lang string, namespace string, err error)
	OnReload(lang string, err error)
	OnWatchUnavailable(lang string)
}

type observerEventType int

const (
	observerEventFlush observerEventType = iota
	observerEventFlushFailure
	observerEventReload
	observerEventWatchUnavailable
)

type observerEvent struct {
	kind      observerEventType
	lang      string
	namespace string
	added     int
	err       error
}

type observerQueue struct {
	observer Observer
	stats    *syncStats
	ch       chan observerEvent
	done     chan struct{}
}

func newObserverQueue(observer Observer, buffer int, stats *syncStats) *observerQueue {
	q := &observerQueue{observer: observer, stats: stats}
	if observer == nil {
		return q
	}
	q.ch = make(chan observerEvent, buffer)
	q.done = make(chan struct{})
	go func() {
		defer close(q.done)
		for evt := range q.ch {
			q.dispatch(evt)
		}
	}()
	return q
}

func safeObserverCall(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}

func (q *observerQueue) dispatch(evt observerEvent) {
	switch evt.kind {
	case observerEventFlush:
		safeObserverCall(func() {
			q.observer.OnFlush(evt.lang, evt.namespace, evt.added)
		})
	case observerEventFlushFailure:
		safeObserverCall(func() {
			q.observer.OnFlushFailure(evt.lang, evt.namespace, evt.err)
		})
	case observerEventReload:
		safeObserverCall(func() {
			q.observer.OnReload(evt.lang, evt.err)
		})
	case observerEventWatchUnavailable:
		safeObserverCall(func() {
			q.observer.OnWatchUnavailable(evt.lang)
		})
	}
}

func (q *observerQueue) publish(evt observerEvent) {
	if q == nil || q.ch == nil {
		return
	}
	defer func() {
		if recover() != nil {
			q.stats.incrementDroppedEvent("observer_closed")
		}
	}()
	select {
	case q.ch <- evt:
	default:
		q.stats.incrementDroppedEvent("observer_queue_full")
	}
}

func (q *observerQueue) close() {
	if q == nil || q.ch == nil {
		return
	}
	close(q.ch)
	<-q.done
}
