package tool

import (
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
)

var _ = ginkgo.Describe("Tool transitions", func() {
	var t *Tool

	ginkgo.BeforeEach(func() {
		t = availableTool("HER-100")
	})

	ginkgo.Describe("Borrow", func() {
		ginkgo.It("should set status and custody together", func() {
			now := time.Now()

			err := t.Borrow("EMP-001", now, now.Add(2*time.Hour))

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(t.Status).To(gomega.Equal(StatusBorrowed))
			gomega.Expect(t.Custody.BorrowedAt).To(gomega.Equal(now))
			gomega.Expect(t.CustodyConsistent()).To(gomega.BeTrue())
		})

		ginkgo.It("should refuse a tool in maintenance", func() {
			gomega.Expect(t.SendToMaintenance(time.Now())).To(gomega.Succeed())

			err := t.Borrow("EMP-001", time.Now(), time.Now().Add(time.Hour))

			gomega.Expect(err).To(gomega.Equal(internal.ErrToolNotAvailable))
		})
	})

	ginkgo.Describe("Return", func() {
		ginkgo.It("should release custody and report who held the tool", func() {
			now := time.Now()
			gomega.Expect(t.Borrow("EMP-001", now, now.Add(time.Hour))).To(gomega.Succeed())

			held, err := t.Return(now.Add(30 * time.Minute))

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(held.UserID).To(gomega.Equal("EMP-001"))
			gomega.Expect(t.Status).To(gomega.Equal(StatusAvailable))
			gomega.Expect(t.Custody).To(gomega.BeNil())
		})

		ginkgo.It("should refuse an available tool", func() {
			_, err := t.Return(time.Now())

			gomega.Expect(err).To(gomega.Equal(internal.ErrToolNotBorrowed))
		})
	})

	ginkgo.Describe("SendToMaintenance", func() {
		ginkgo.It("should release custody of a borrowed tool", func() {
			now := time.Now()
			gomega.Expect(t.Borrow("EMP-001", now, now.Add(time.Hour))).To(gomega.Succeed())

			err := t.SendToMaintenance(now.Add(10 * time.Minute))

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(t.Custody).To(gomega.BeNil())
			gomega.Expect(t.CustodyConsistent()).To(gomega.BeTrue())
		})

		ginkgo.It("should refuse a decommissioned tool", func() {
			gomega.Expect(t.Decommission(time.Now())).To(gomega.Succeed())

			err := t.SendToMaintenance(time.Now())

			gomega.Expect(err).To(gomega.Equal(internal.ErrToolDecommissioned))
		})
	})

	ginkgo.Describe("Decommission", func() {
		ginkgo.It("should be terminal and move the tool to the holding warehouse", func() {
			err := t.Decommission(time.Now())

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(t.Status).To(gomega.Equal(StatusDecommissioned))
			gomega.Expect(t.Location).To(gomega.Equal(HoldingLocation))

			gomega.Expect(t.Decommission(time.Now())).To(gomega.Equal(internal.ErrToolDecommissioned))
			gomega.Expect(t.ReturnFromMaintenance(time.Now())).To(gomega.Equal(internal.ErrToolNotInMaintenance))
		})
	})

	ginkgo.Describe("IsOverdue", func() {
		ginkgo.It("should flag a loan past its estimated return", func() {
			now := time.Now()
			gomega.Expect(t.Borrow("EMP-001", now.Add(-2*time.Hour), now.Add(-time.Second))).To(gomega.Succeed())

			gomega.Expect(t.IsOverdue(now)).To(gomega.BeTrue())
		})

		ginkgo.It("should not flag a loan still inside its window", func() {
			now := time.Now()
			gomega.Expect(t.Borrow("EMP-001", now, now.Add(time.Second))).To(gomega.Succeed())

			gomega.Expect(t.IsOverdue(now)).To(gomega.BeFalse())
		})
	})
})

var _ = ginkgo.Describe("ReplacementStatus", func() {
	ginkgo.It("should walk the five stages in order", func() {
		stage := ReplacementGenerated
		var walked []ReplacementStatus
		for {
			next, ok := stage.Next()
			if !ok {
				break
			}
			walked = append(walked, next)
			stage = next
		}

		gomega.Expect(walked).To(gomega.Equal([]ReplacementStatus{
			ReplacementSeen,
			ReplacementInProgress,
			ReplacementDelivered,
			ReplacementReceived,
		}))
	})

	ginkgo.It("should reject an unknown stage", func() {
		rec := &DecommissionRecord{ReplacementStatus: ReplacementGenerated}

		err := rec.AdvanceTo("cancelled")

		gomega.Expect(err).To(gomega.HaveOccurred())
		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
	})
})
