package conversation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ubique/stylist/pkg/conversation"
)

var _ = Describe("ParseImage", func() {
	It("splits a data URI into its declared media type and payload", func() {
		img, err := conversation.ParseImage("data:image/png;base64,XXXX", "image/jpeg")
		Expect(err).NotTo(HaveOccurred())

		Expect(img.MediaType).To(Equal("image/png"))
		Expect(img.Data).To(Equal("XXXX"))
	})

	It("applies the default media type to raw base64", func() {
		img, err := conversation.ParseImage("XXXX", "image/jpeg")
		Expect(err).NotTo(HaveOccurred())

		Expect(img.MediaType).To(Equal("image/jpeg"))
		Expect(img.Data).To(Equal("XXXX"))
	})

	It("accepts subtypes with punctuation", func() {
		img, err := conversation.ParseImage("data:image/svg+xml;base64,PHN2Zy8+", "image/jpeg")
		Expect(err).NotTo(HaveOccurred())
		Expect(img.MediaType).To(Equal("image/svg+xml"))
	})

	It("rejects a data URI that is not base64 encoded", func() {
		_, err := conversation.ParseImage("data:image/png,rawbytes", "image/jpeg")
		Expect(err).To(MatchError(conversation.ErrMalformedImage))
	})

	It("rejects a data URI with a non-image media type", func() {
		_, err := conversation.ParseImage("data:text/plain;base64,aGk=", "image/jpeg")
		Expect(err).To(MatchError(conversation.ErrInvalidRequest))
	})

	It("rejects a data URI with an empty payload", func() {
		_, err := conversation.ParseImage("data:image/png;base64,", "image/jpeg")
		Expect(err).To(MatchError(conversation.ErrMalformedImage))
	})

	It("reports a missing image", func() {
		_, err := conversation.ParseImage("", "image/jpeg")
		Expect(err).To(MatchError(conversation.ErrMissingImage))
	})

	It("renders the same data URI back", func() {
		img, err := conversation.ParseImage("data:image/webp;base64,UklGRg==", "image/jpeg")
		Expect(err).NotTo(HaveOccurred())
		Expect(img.DataURI()).To(Equal("data:image/webp;base64,UklGRg=="))
	})
})
