package conversation

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("layoutFor", func() {
	Context("for a new conversation", func() {
		It("pairs the image with the current question and appends nothing", func() {
			l := layoutFor(false)

			Expect(l.captionFromHistory).To(BeFalse())
			Expect(l.replayHistory).To(BeFalse())
			Expect(l.trailingQuestion).To(BeFalse())
			Expect(l.size(0)).To(Equal(2))
		})
	})

	Context("for an ongoing conversation", func() {
		It("pairs the image with the first turn, replays the rest and appends the question", func() {
			l := layoutFor(true)

			Expect(l.captionFromHistory).To(BeTrue())
			Expect(l.replayHistory).To(BeTrue())
			Expect(l.trailingQuestion).To(BeTrue())
		})

		It("sizes the transcript as 2 + (n-1) + 1", func() {
			l := layoutFor(true)

			for n := 1; n <= 7; n++ {
				Expect(l.size(n)).To(Equal(2 + (n - 1) + 1))
			}
		})
	})
})
