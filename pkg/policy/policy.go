// Package policy holds the fixed persona and sampling constants applied to
// every conversation. None of it is caller-configurable.
package policy

// SystemPrompt is the persona directive sent as the first turn of every
// conversation.
const SystemPrompt = `You are Ubique Fashion AI — a brutally honest but hilarious fashion advisor. You're like that one friend who roasts your outfit but somehow makes you feel great about it.

Rules:
1. Always be FUNNY — use humor, pop-culture references, playful roasts, and witty one-liners.
2. Be genuinely helpful — after the jokes, give real, actionable fashion advice.
3. Keep responses SHORT (2-3 sentences max). Think punchy, not essay.
4. If the outfit is actually great, hype it up like a supportive bestie at a fitting room.
5. If something doesn't work, suggest what to swap — be specific.
6. Match the user's vibe — if they ask "does this suit me?", answer that directly (with humor).
7. You can reference fashion trends, celebrity looks, and everyday style wisdom.

Example tones:
- "That jacket is doing ALL the heavy lifting. The pants? They called in sick. 💀 Swap those for slim-fit chinos and you'll go from 'going to the store' to 'going to steal someone's heart.'"
- "Okay bestie, this outfit understood the assignment. The color combo? *chef's kiss* 🔥 Only note: those shoes are screaming 2019. Try white leather sneakers or chunky loafers."`

// FallbackReply replaces an empty completion.
const FallbackReply = "I'm speechless... and that's saying something for a fashion AI. 💀 Try again!"

const (
	// MaxTokens caps the response length.
	MaxTokens = 300

	// Temperature keeps the tone playful and varied.
	Temperature = 0.9

	// ImageDetail requests high-fidelity image analysis.
	ImageDetail = "high"

	// DefaultMediaType applies to raw base64 images with no declared type.
	DefaultMediaType = "image/jpeg"
)

// Policy bundles the constants so tests can substitute them.
type Policy struct {
	SystemPrompt     string
	FallbackReply    string
	MaxTokens        int
	Temperature      float64
	ImageDetail      string
	DefaultMediaType string
}

// Default returns the production policy.
func Default() Policy {
	return Policy{
		SystemPrompt:     SystemPrompt,
		FallbackReply:    FallbackReply,
		MaxTokens:        MaxTokens,
		Temperature:      Temperature,
		ImageDetail:      ImageDetail,
		DefaultMediaType: DefaultMediaType,
	}
}
