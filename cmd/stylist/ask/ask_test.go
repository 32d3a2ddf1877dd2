package askcmder

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/ubique/stylist/pkg/conversation"
	"github.com/ubique/stylist/pkg/gateway"
	"github.com/ubique/stylist/pkg/llm"
	"github.com/ubique/stylist/pkg/policy"
	"github.com/ubique/stylist/pkg/stylist"
	"github.com/ubique/stylist/server"
)

// scriptedClient answers with the next reply in order and records each
// assembled conversation.
type scriptedClient struct {
	mu      sync.Mutex
	replies []string
	sent    [][]llm.Message
	err     error
}

func (s *scriptedClient) Send(_ context.Context, messages []llm.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, messages)
	if s.err != nil {
		return "", s.err
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func (s *scriptedClient) Sent() [][]llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

var _ = Describe("Ask Command", func() {
	var (
		ctx       context.Context
		tmpDir    string
		imagePath string
		client    *scriptedClient
		addr      string
		cleanup   func()
	)

	startServer := func(c gateway.Client) (string, func()) {
		logger := zap.NewNop()
		svc := stylist.New(conversation.NewAssembler(policy.Default()), c, logger)

		srv, err := server.New(server.Config{ListenAddr: ":0"}, svc, logger)
		Expect(err).NotTo(HaveOccurred())

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).NotTo(HaveOccurred())

		go func() {
			_ = srv.RunWithListener(listener)
		}()

		return "http://" + listener.Addr().String(), func() {
			_ = srv.Shutdown()
		}
	}

	runAsk := func(stdin string, args ...string) (string, error) {
		var out bytes.Buffer
		cmd := NewAskCmd()
		cmd.SetArgs(args)
		cmd.SetIn(strings.NewReader(stdin))
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		err := cmd.ExecuteContext(ctx)
		return out.String(), err
	}

	BeforeEach(func() {
		ctx = context.Background()
		tmpDir = GinkgoT().TempDir()
		imagePath = filepath.Join(tmpDir, "outfit.png")
		Expect(os.WriteFile(imagePath, pngHeader, 0o600)).To(Succeed())

		client = &scriptedClient{replies: []string{"Certified drip.", "White sneakers, trust me."}}
		addr, cleanup = startServer(client)
	})

	AfterEach(func() {
		cleanup()
	})

	It("prints the reply to a single question", func() {
		out, err := runAsk("", imagePath, "-q", "rate my fit", "--server", addr, "--plain")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("Certified drip.\n"))

		sent := client.Sent()
		Expect(sent).To(HaveLen(1))
		Expect(sent[0]).To(HaveLen(2))
		Expect(sent[0][1].Images()[0].URL).To(HavePrefix("data:image/png;base64,"))
	})

	It("carries the history across interactive follow-ups", func() {
		out, err := runAsk("what shoes?\n\n", imagePath, "-q", "rate my fit", "--server", addr, "--plain", "-i")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Certified drip."))
		Expect(out).To(ContainSubstring("White sneakers, trust me."))

		sent := client.Sent()
		Expect(sent).To(HaveLen(2))

		followUp := sent[1]
		Expect(followUp).To(HaveLen(4))
		Expect(followUp[1].Parts[1].Text).To(Equal("rate my fit"))
		Expect(followUp[2].Role).To(Equal(llm.RoleAssistant))
		Expect(followUp[2].Text).To(Equal("Certified drip."))
		Expect(followUp[3].Text).To(Equal("what shoes?"))
	})

	It("sends history loaded from a file", func() {
		historyPath := filepath.Join(tmpDir, "turns.json")
		Expect(os.WriteFile(historyPath, []byte(`[
			{"role": "user", "content": "rate my fit"},
			{"role": "assistant", "content": "7/10"}
		]`), 0o600)).To(Succeed())

		_, err := runAsk("", imagePath, "-q", "and now?", "--server", addr, "--plain", "--history", historyPath)
		Expect(err).NotTo(HaveOccurred())

		sent := client.Sent()
		Expect(sent).To(HaveLen(1))
		Expect(sent[0]).To(HaveLen(4))
		Expect(sent[0][3].Text).To(Equal("and now?"))
	})

	It("styles the reply when asked to", func() {
		out, err := runAsk("", imagePath, "-q", "rate my fit", "--server", addr, "--color", "always")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("stylist"))
		Expect(out).To(ContainSubstring("Certified"))
	})

	It("prints plain text when the output is not a terminal", func() {
		out, err := runAsk("", imagePath, "-q", "rate my fit", "--server", addr)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("Certified drip.\n"))
	})

	It("rejects an unknown color mode before contacting the server", func() {
		_, err := runAsk("", imagePath, "-q", "rate my fit", "--server", addr, "--color", "sometimes")
		Expect(err).To(MatchError(ContainSubstring("invalid --color")))
		Expect(client.Sent()).To(BeEmpty())
	})

	It("surfaces the server's error message", func() {
		cleanup()
		failing := &scriptedClient{err: &gateway.ProviderError{StatusCode: 429, Body: "quota"}}
		addr, cleanup = startServer(failing)

		_, err := runAsk("", imagePath, "-q", "rate my fit", "--server", addr, "--plain")
		Expect(err).To(MatchError(ContainSubstring("AI service error (429)")))
		Expect(err.Error()).NotTo(ContainSubstring("quota"))
	})

	It("refuses files that are not images", func() {
		textPath := filepath.Join(tmpDir, "notes.txt")
		Expect(os.WriteFile(textPath, []byte("just some text"), 0o600)).To(Succeed())

		_, err := runAsk("", textPath, "-q", "rate my fit", "--server", addr, "--plain")
		Expect(err).To(MatchError(ContainSubstring("is not an image")))
		Expect(client.Sent()).To(BeEmpty())
	})
})
