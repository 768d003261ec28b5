package events

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestEvents(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Events Module Suite")
}

var _ = ginkgo.Describe("Bus", func() {
	var bus *Bus

	ginkgo.BeforeEach(func() {
		bus = NewBus(slog.Default())
	})

	ginkgo.Describe("PublishSync", func() {
		ginkgo.It("delivers inline before returning", func() {
			var got Event
			bus.Subscribe(TypeProjectDeleted, func(ctx context.Context, event Event) error {
				got = event
				return nil
			})

			event := New(TypeProjectDeleted, map[string]interface{}{"project_id": int64(7)})
			gomega.Expect(bus.PublishSync(context.Background(), event)).To(gomega.Succeed())
			gomega.Expect(got).NotTo(gomega.BeNil())
			gomega.Expect(got.EventID()).To(gomega.Equal(event.EventID()))
		})

		ginkgo.It("propagates the first handler failure", func() {
			bus.Subscribe(TypeProjectDeleted, func(ctx context.Context, event Event) error {
				return errors.New("sink unavailable")
			})

			err := bus.PublishSync(context.Background(), New(TypeProjectDeleted, nil))
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("sink unavailable"))
		})

		ginkgo.It("is a no-op with no subscribers", func() {
			gomega.Expect(bus.PublishSync(context.Background(), New(TypeTaskCreated, nil))).To(gomega.Succeed())
		})
	})

	ginkgo.Describe("Publish", func() {
		ginkgo.It("delivers asynchronously without blocking the caller", func() {
			delivered := make(chan Event, 1)
			bus.Subscribe(TypeTaskCreated, func(ctx context.Context, event Event) error {
				delivered <- event
				return nil
			})

			bus.Publish(context.Background(), New(TypeTaskCreated, map[string]interface{}{"task_id": "NET-001"}))

			var got Event
			gomega.Eventually(delivered, time.Second).Should(gomega.Receive(&got))
			gomega.Expect(got.EventType()).To(gomega.Equal(TypeTaskCreated))
		})

		ginkgo.It("only notifies subscribers of the published type", func() {
			wrong := make(chan struct{}, 1)
			bus.Subscribe(TypeTaskDeleted, func(ctx context.Context, event Event) error {
				wrong <- struct{}{}
				return nil
			})

			bus.Publish(context.Background(), New(TypeTaskCreated, nil))
			gomega.Consistently(wrong, 100*time.Millisecond).ShouldNot(gomega.Receive())
		})
	})
})
