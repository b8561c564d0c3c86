package worker_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/okian/placement/internal/adapters/mq/queue"
	"github.com/okian/placement/internal/adapters/mq/worker"
	"github.com/okian/placement/internal/domain/model"
	logging "github.com/okian/placement/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

type recordingHandler struct {
	mu        sync.Mutex
	delivered []string
	fail      map[string]error
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{fail: make(map[string]error)}
}

func (h *recordingHandler) Deliver(_ context.Context, d model.Delivery) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err, ok := h.fail[d.MessageID]; ok {
		return err
	}
	h.delivered = append(h.delivered, d.MessageID)
	return nil
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.delivered)
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a worker reading a delivery queue", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue[model.Delivery](queue.WithCapacity(10))
		h := newRecordingHandler()
		h.fail["msg-bad"] = errors.New("remote down")
		w := worker.NewInMemoryWorker(q, h, worker.WithName("test-worker"))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Run(ctx)

		convey.Convey("When deliveries succeed and fail", func() {
			convey.So(q.Enqueue(ctx, model.Delivery{MessageID: "msg-1"}), convey.ShouldBeNil)
			convey.So(q.Enqueue(ctx, model.Delivery{MessageID: "msg-bad"}), convey.ShouldBeNil)
			convey.So(q.Enqueue(ctx, model.Delivery{MessageID: "msg-2"}), convey.ShouldBeNil)

			convey.Convey("Then every delivery is attempted and outcomes are counted", func() {
				convey.So(eventually(func() bool {
					ok, failed := w.Processed()
					return ok == 2 && failed == 1
				}), convey.ShouldBeTrue)
				convey.So(h.count(), convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When shut down", func() {
			err := w.Shutdown(context.Background())

			convey.Convey("Then it stops cleanly", func() {
				convey.So(err, convey.ShouldBeNil)
			})
		})
	})
}

func TestWorkerPool(t *testing.T) {
	convey.Convey("Given a worker pool", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue[model.Delivery](queue.WithCapacity(50))
		h := newRecordingHandler()

		convey.Convey("When created with a non-positive count", func() {
			pool := worker.NewPool(0, q, h)

			convey.Convey("Then the default size is used and shutdown before start returns", func() {
				convey.So(pool.Size(), convey.ShouldEqual, 2)
				convey.So(pool.Shutdown(context.Background()), convey.ShouldBeNil)
			})
		})

		convey.Convey("When started and fed deliveries", func() {
			pool := worker.NewPool(3, q, worker.HandlerFunc(h.Deliver))
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			pool.Start(ctx)

			for i := 0; i < 20; i++ {
				convey.So(q.Enqueue(ctx, model.Delivery{MessageID: "msg-" + string(rune('a'+i))}), convey.ShouldBeNil)
			}

			convey.Convey("Then all are delivered and shutdown drains the pool", func() {
				convey.So(eventually(func() bool { return h.count() == 20 }), convey.ShouldBeTrue)
				convey.So(pool.Shutdown(context.Background()), convey.ShouldBeNil)
				ok, failed := pool.Stats()
				convey.So(ok, convey.ShouldEqual, 20)
				convey.So(failed, convey.ShouldEqual, 0)
				convey.So(q.IsClosed(), convey.ShouldBeTrue)
			})
		})
	})
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestInMemoryWorker_LogFields(t *testing.T) {
	convey.Convey("Given a named worker logging to a buffer", t, func() {
		out := &syncBuffer{}
		convey.So(logging.Init(logging.WithOutput(out)), convey.ShouldBeNil)
		defer func() { _ = logging.Init() }()

		q := queue.NewInMemoryQueue[model.Delivery](queue.WithCapacity(4))
		h := newRecordingHandler()
		h.fail["msg-bad"] = errors.New("remote down")
		w := worker.NewInMemoryWorker(q, h, worker.WithName("worker-1"))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Run(ctx)

		convey.Convey("When a delivery fails", func() {
			convey.So(q.Enqueue(ctx, model.Delivery{MessageID: "msg-bad"}), convey.ShouldBeNil)
			convey.So(eventually(func() bool { return strings.Contains(out.String(), "delivery failed") }), convey.ShouldBeTrue)

			convey.Convey("Then the worker name is a field under a single group", func() {
				line := out.String()
				convey.So(line, convey.ShouldContainSubstring, "worker.name=worker-1")
				convey.So(line, convey.ShouldContainSubstring, "worker.message_id=msg-bad")
				convey.So(line, convey.ShouldNotContainSubstring, "worker.worker-1.")
			})
		})
	})
}
