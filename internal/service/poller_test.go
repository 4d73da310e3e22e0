package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/transcription-service/internal/client"
	"github.com/kubev2v/transcription-service/internal/service"
)

var _ = Describe("poller", func() {
	var processor *fakeProcessor

	BeforeEach(func() {
		processor = &fakeProcessor{}
	})

	It("queries the status immediately", func() {
		processor.statuses = []client.JobStatus{{Status: client.JobStatusCompleted, Text: "fast"}}
		poller := service.NewPoller(processor, service.PollerOptions{Interval: time.Hour})

		text, err := poller.AwaitCompletion(context.TODO(), "job-1")

		Expect(err).To(BeNil())
		Expect(text).To(Equal("fast"))
		Expect(processor.StatusCalls()).To(Equal(1))
	})

	It("returns promptly when the caller cancels", func() {
		poller := service.NewPoller(processor, service.PollerOptions{Interval: time.Hour})
		ctx, cancel := context.WithCancel(context.TODO())
		time.AfterFunc(20*time.Millisecond, cancel)

		start := time.Now()
		_, err := poller.AwaitCompletion(ctx, "job-1")

		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(time.Since(start)).To(BeNumerically("<", time.Second))
		Expect(processor.StatusCalls()).To(Equal(1))
	})

	It("fails the job on timeout and keeps it terminal", func() {
		poller := service.NewPoller(processor, service.PollerOptions{Interval: time.Millisecond, MaxAttempts: 2})
		job := service.NewTranscriptionJob("https://blob/a.wav", "a.wav", "job-1")

		err := poller.Await(context.TODO(), job)

		var timeout *service.ErrPollingTimeout
		Expect(errors.As(err, &timeout)).To(BeTrue())
		Expect(job.Status()).To(Equal(service.JobStatusFailed))
		Expect(job.FailureReason).To(Equal(service.TimeoutReason))
	})

	It("leaves a cancelled job in polling", func() {
		poller := service.NewPoller(processor, service.PollerOptions{Interval: time.Hour})
		job := service.NewTranscriptionJob("https://blob/a.wav", "a.wav", "job-1")
		ctx, cancel := context.WithCancel(context.TODO())
		cancel()

		err := poller.Await(ctx, job)

		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(job.Status()).To(Equal(service.JobStatusPolling))
	})

	It("stays bounded when no limits are configured", func() {
		poller := service.NewPoller(processor, service.PollerOptions{Interval: time.Millisecond, Jitter: time.Microsecond})

		_, err := poller.AwaitCompletion(context.TODO(), "job-1")

		var timeout *service.ErrPollingTimeout
		Expect(errors.As(err, &timeout)).To(BeTrue())
		Expect(timeout.Attempts).To(Equal(120))
		Expect(processor.StatusCalls()).To(Equal(120))
	})

	It("records the bare timeout reason when status queries keep failing", func() {
		processor.statusErrs = []error{errConnectionReset}
		poller := service.NewPoller(processor, service.PollerOptions{Interval: time.Millisecond})
		job := service.NewTranscriptionJob("https://blob/a.wav", "a.wav", "job-1")

		err := poller.Await(context.TODO(), job)

		Expect(errors.Is(err, errConnectionReset)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring(errConnectionReset.Error()))
		Expect(job.FailureReason).To(Equal(service.TimeoutReason))
	})

	DescribeTable("validating options",
		func(opts service.PollerOptions, valid bool) {
			err := opts.Validate()
			if valid {
				Expect(err).To(BeNil())
				return
			}
			var invalid *service.ErrInvalidInput
			Expect(errors.As(err, &invalid)).To(BeTrue())
		},
		Entry("zero values", service.PollerOptions{}, true),
		Entry("configured values", service.PollerOptions{Interval: time.Second, Jitter: time.Millisecond, MaxAttempts: 3, MaxWait: time.Minute}, true),
		Entry("negative interval", service.PollerOptions{Interval: -time.Second}, false),
		Entry("negative jitter", service.PollerOptions{Jitter: -time.Millisecond}, false),
		Entry("negative max attempts", service.PollerOptions{MaxAttempts: -1}, false),
		Entry("negative max wait", service.PollerOptions{MaxWait: -time.Second}, false),
		Entry("negative retries", service.PollerOptions{MaxStatusRetries: -1}, false),
		Entry("negative retry delay", service.PollerOptions{RetryDelay: -time.Second}, false),
	)
})
