package schedule

import (
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestSchedule(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Schedule Module Suite")
}

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 10, hour, minute, 0, 0, time.UTC)
}

var _ = ginkgo.Describe("ShiftFor", func() {
	ginkgo.It("maps the morning window to T1", func() {
		gomega.Expect(ShiftFor(at(8, 0))).To(gomega.Equal(ShiftT1))
		gomega.Expect(ShiftFor(at(12, 30))).To(gomega.Equal(ShiftT1))
		gomega.Expect(ShiftFor(at(15, 59))).To(gomega.Equal(ShiftT1))
	})

	ginkgo.It("maps the evening window to T2", func() {
		gomega.Expect(ShiftFor(at(16, 0))).To(gomega.Equal(ShiftT2))
		gomega.Expect(ShiftFor(at(23, 59))).To(gomega.Equal(ShiftT2))
	})

	ginkgo.It("maps the night window to T3", func() {
		gomega.Expect(ShiftFor(at(0, 0))).To(gomega.Equal(ShiftT3))
		gomega.Expect(ShiftFor(at(7, 59))).To(gomega.Equal(ShiftT3))
	})
})

var _ = ginkgo.Describe("Window", func() {
	day := time.Date(2025, time.March, 10, 14, 22, 0, 0, time.UTC)

	ginkgo.It("computes the T1 interval", func() {
		start, end := Window(day, ShiftT1)
		gomega.Expect(start).To(gomega.Equal(at(8, 0)))
		gomega.Expect(end).To(gomega.Equal(at(16, 0)))
	})

	ginkgo.It("computes the T2 interval", func() {
		start, end := Window(day, ShiftT2)
		gomega.Expect(start).To(gomega.Equal(at(16, 0)))
		gomega.Expect(end).To(gomega.Equal(at(0, 0).Add(24 * time.Hour)))
	})

	ginkgo.It("computes the T3 interval starting at midnight", func() {
		start, end := Window(day, ShiftT3)
		gomega.Expect(start).To(gomega.Equal(at(0, 0)))
		gomega.Expect(end).To(gomega.Equal(at(8, 0)))
	})
})

var _ = ginkgo.Describe("ParseShift", func() {
	ginkgo.It("accepts the three fixed shifts", func() {
		for _, raw := range []string{"T1", "T2", "T3"} {
			s, err := ParseShift(raw)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(s.Valid()).To(gomega.BeTrue())
		}
	})

	ginkgo.It("rejects anything else", func() {
		_, err := ParseShift("T4")
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})
