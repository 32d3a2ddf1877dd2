// Package transcript fingerprints assembled conversations as a hash chain so
// a conversation branch can be followed through the logs without recording
// its content.
package transcript

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"

	"github.com/ubique/stylist/pkg/llm"
)

// Chain returns one hash per message, oldest first. Each hash covers the
// message and the hash before it, so conversations sharing a prefix share
// hashes up to the point where they diverge. Image payloads enter the chain
// only as their digest.
func Chain(messages []llm.Message) []string {
	hashes := make([]string, 0, len(messages))

	parent := ""
	for _, msg := range messages {
		parent = link(parent, msg)
		hashes = append(hashes, parent)
	}
	return hashes
}

// Fingerprint returns the last hash of the chain, or "" for an empty
// conversation.
func Fingerprint(messages []llm.Message) string {
	hashes := Chain(messages)
	if len(hashes) == 0 {
		return ""
	}
	return hashes[len(hashes)-1]
}

// ImageDigest returns the SHA-256 of an image URL or payload.
func ImageDigest(data string) string {
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:])
}

func link(parent string, msg llm.Message) string {
	h := sha256.New()
	writeField(h, parent)
	writeField(h, msg.Role)

	if !msg.IsComposite() {
		writeField(h, "text")
		writeField(h, msg.Text)
		return hex.EncodeToString(h.Sum(nil))
	}

	writeField(h, "parts")
	for _, p := range msg.Parts {
		writeField(h, p.Type)
		if p.Type == llm.PartImageURL && p.ImageURL != nil {
			writeField(h, ImageDigest(p.ImageURL.URL))
			writeField(h, p.ImageURL.Detail)
			continue
		}
		writeField(h, p.Text)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// writeField writes s followed by a NUL so adjacent fields cannot run together.
func writeField(h hash.Hash, s string) {
	h.Write([]byte(s))
	h.Write([]byte{0})
}
