package service_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/transcription-service/internal/service"
)

var _ = Describe("transcription job", func() {
	It("moves forward to completed", func() {
		job := service.NewTranscriptionJob("https://blob/a.wav", "a.wav", "job-1")
		Expect(job.Status()).To(Equal(service.JobStatusSubmitted))
		Expect(job.ExternalID()).To(Equal("job-1"))

		Expect(job.StartPolling()).To(Succeed())
		Expect(job.Complete("hello")).To(Succeed())
		Expect(job.Status()).To(Equal(service.JobStatusCompleted))
		Expect(job.Text).To(Equal("hello"))
	})

	It("never leaves a terminal state", func() {
		job := service.NewTranscriptionJob("https://blob/a.wav", "a.wav", "job-1")
		Expect(job.StartPolling()).To(Succeed())
		Expect(job.Fail("timeout")).To(Succeed())

		Expect(job.Complete("late text")).NotTo(Succeed())
		Expect(job.StartPolling()).NotTo(Succeed())
		Expect(job.Status()).To(Equal(service.JobStatusFailed))
		Expect(job.Text).To(BeEmpty())
		Expect(job.FailureReason).To(Equal("timeout"))
	})

	It("does not go back to polling", func() {
		job := service.NewTranscriptionJob("https://blob/a.wav", "a.wav", "job-1")
		Expect(job.StartPolling()).To(Succeed())
		Expect(job.StartPolling()).NotTo(Succeed())
	})
})
