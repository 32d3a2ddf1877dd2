package askcmder

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ubique/stylist/pkg/llm"
)

const askLongDesc string = `Ask the stylist about an outfit photo.

Encodes the photo as a data URI and POSTs it with the question to a
running stylist server. With --interactive, keeps reading follow-up
questions from stdin (an empty line ends the session) and sends the
growing conversation history with each one.

Replies are styled when stdout is a terminal. --color always|never
overrides the detection, and --plain is short for --color never.

Examples:
  stylist ask outfit.jpg -q "does this suit me?"
  stylist ask outfit.png -q "date night ready?" --server http://192.168.1.42:8080
  stylist ask outfit.jpg -q "rate it" -i
  stylist ask outfit.jpg -q "rate it" --color never > reply.txt
  stylist ask outfit.jpg -q "and with a hat?" --history turns.json`

const askShortDesc string = "Ask the stylist about an outfit photo"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type askCommander struct {
	serverURL   string
	question    string
	historyPath string
	interactive bool
	plain       bool
	color       string
	styled      bool
}

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask <image>",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&cmder.serverURL, "server", "http://localhost:8080", "Stylist server URL")
	cmd.Flags().StringVarP(&cmder.question, "question", "q", "", "Question about the outfit")
	cmd.Flags().StringVar(&cmder.historyPath, "history", "", "JSON file with prior turns ([{\"role\",\"content\"}])")
	cmd.Flags().BoolVarP(&cmder.interactive, "interactive", "i", false, "Keep asking follow-up questions from stdin")
	cmd.Flags().BoolVar(&cmder.plain, "plain", false, "Print replies without terminal styling")
	cmd.Flags().StringVar(&cmder.color, "color", "auto", "Style replies: auto, always or never")
	_ = cmd.MarkFlagRequired("question")

	return cmd
}

func (c *askCommander) run(ctx context.Context, cmd *cobra.Command, imagePath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	serverURL := strings.TrimRight(c.serverURL, "/")
	out := cmd.OutOrStdout()

	styled, err := c.useStyle(out)
	if err != nil {
		return err
	}
	c.styled = styled

	image, err := encodeImage(imagePath)
	if err != nil {
		return err
	}

	history, err := loadHistory(c.historyPath)
	if err != nil {
		return err
	}

	question := c.question
	scanner := bufio.NewScanner(cmd.InOrStdin())

	for {
		reply, err := c.postChat(ctx, serverURL, llm.ConversationRequest{
			Image:    image,
			Question: question,
			History:  history,
		})
		if err != nil {
			return err
		}

		if err := c.render(out, reply); err != nil {
			return err
		}

		if !c.interactive {
			return nil
		}

		history = append(history,
			llm.Turn{Role: llm.RoleUser, Content: question},
			llm.Turn{Role: llm.RoleAssistant, Content: reply},
		)

		if c.styled {
			fmt.Fprint(out, promptStyle.Render("> "))
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		question = strings.TrimSpace(scanner.Text())
		if question == "" {
			return nil
		}
	}
}

func (c *askCommander) postChat(ctx context.Context, serverURL string, req llm.ConversationRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, serverURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp llm.ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, errResp.Error)
		}
		return "", fmt.Errorf("server returned %d", resp.StatusCode)
	}

	var result llm.ReplyResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("could not decode response: %w", err)
	}

	return result.Reply, nil
}

func (c *askCommander) render(w io.Writer, reply string) error {
	if !c.styled {
		_, err := fmt.Fprintln(w, reply)
		return err
	}

	rendered, err := glamour.Render(reply, "dark")
	if err != nil {
		return fmt.Errorf("could not render reply: %w", err)
	}
	fmt.Fprintln(w, headerStyle.Render("stylist"))
	_, err = fmt.Fprint(w, rendered)
	return err
}

// useStyle reports whether replies written to w get terminal styling.
func (c *askCommander) useStyle(w io.Writer) (bool, error) {
	if c.plain {
		return false, nil
	}

	switch c.color {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid --color %q: must be auto, always or never", c.color)
	}
}

// encodeImage reads a photo and returns it as a data URI. The media type is
// sniffed from the file contents.
func encodeImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read image: %w", err)
	}

	mediaType := http.DetectContentType(data)
	if !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("%s is not an image (detected %s)", path, mediaType)
	}

	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func loadHistory(path string) ([]llm.Turn, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read history: %w", err)
	}

	var history []llm.Turn
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("could not parse history %s: %w", path, err)
	}
	return history, nil
}
