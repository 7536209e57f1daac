package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// MessageLimit is Discord's maximum message length in characters.
const MessageLimit = 2000

// Notifier posts messages to a Discord webhook. Messages over the limit are
// chunked at line boundaries and sent as separate calls.
type Notifier struct {
	webhookURL string
	client     *http.Client
}

func NewNotifier(webhookURL string, timeout time.Duration) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
	}
}

// Send delivers the content, split into limit-sized chunks. Any chunk failing
// with a non-2xx status fails the whole send.
func (n *Notifier) Send(content string) error {
	chunks := SplitMessage(content, MessageLimit)

	for i, chunk := range chunks {
		if err := n.post(chunk); err != nil {
			return fmt.Errorf("failed to send chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}

	log.Printf("Posted %d message chunk(s) to Discord", len(chunks))
	return nil
}

func (n *Notifier) post(content string) error {
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}

// SplitMessage splits text into chunks of at most limit characters,
// preferring the last newline before the limit and falling back to a hard
// cut when a single line exceeds it. Discord counts the limit in characters,
// not bytes, so the cut is computed over runes and never lands inside a
// multi-byte sequence.
func SplitMessage(text string, limit int) []string {
	var chunks []string

	for utf8.RuneCountInString(text) > limit {
		cut := runeOffset(text, limit)
		splitAt := strings.LastIndex(text[:cut], "\n")
		if splitAt == -1 {
			splitAt = cut
		}
		chunks = append(chunks, strings.TrimSpace(text[:splitAt]))
		text = strings.TrimLeft(text[splitAt:], " \t\n")
	}

	if text != "" {
		chunks = append(chunks, text)
	}

	return chunks
}

// runeOffset returns the byte offset of the n-th rune in s, or len(s) when s
// has fewer than n runes.
func runeOffset(s string, n int) int {
	seen := 0
	for i := range s {
		if seen == n {
			return i
		}
		seen++
	}
	return len(s)
}
