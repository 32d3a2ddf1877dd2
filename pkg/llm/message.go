package llm

import "encoding/json"

// Roles understood by the chat completions API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Content part types.
const (
	PartText     = "text"
	PartImageURL = "image_url"
)

// Message represents a single outbound message in a conversation.
// A message with Parts is sent as a composite content list, otherwise Text
// is sent as plain string content.
type Message struct {
	Role  string
	Text  string
	Parts []ContentPart
}

// ContentPart is one element of a composite message (text or image).
type ContentPart struct {
	Type     string    `json:"type"`                // "text" or "image_url"
	Text     string    `json:"text,omitempty"`      // Set when Type is "text"
	ImageURL *ImageURL `json:"image_url,omitempty"` // Set when Type is "image_url"
}

// ImageURL carries an image reference and the requested analysis fidelity.
type ImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"` // "low", "high" or "auto"
}

// TextMessage creates a plain text message.
func TextMessage(role, text string) Message {
	return Message{Role: role, Text: text}
}

// IsComposite reports whether the message carries a content part list.
func (m Message) IsComposite() bool {
	return len(m.Parts) > 0
}

// Images returns the image parts of the message.
func (m Message) Images() []ImageURL {
	var images []ImageURL
	for _, p := range m.Parts {
		if p.Type == PartImageURL && p.ImageURL != nil {
			images = append(images, *p.ImageURL)
		}
	}
	return images
}

// MarshalJSON encodes content as a string or as a part list.
func (m Message) MarshalJSON() ([]byte, error) {
	if m.IsComposite() {
		return json.Marshal(struct {
			Role    string        `json:"role"`
			Content []ContentPart `json:"content"`
		}{m.Role, m.Parts})
	}

	return json.Marshal(struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}{m.Role, m.Text})
}
