package service

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
)

const chatbotSystemPrompt = `You are an Islamic educational assistant for a school Rohis organization.
Explain concepts clearly and respectfully.
Do not issue fatwas or definitive rulings.
If a question requires a scholar, advise consulting a trusted ustadz.
Give concise short answers focused on Islamic teachings and values.
Avoid using table format in your responses.`

const summarizerSystemPrompt = `You are a meeting minutes summarizer for a school Islamic organization (Rohis).

Your task is to create a VERY brief summary of meeting minutes (notulensi).

Rules:
- Maximum 2-3 sentences only
- Focus on KEY decisions, actions, or topics discussed
- Use simple, clear language
- Do NOT add any commentary or opinions
- Do NOT use markdown or formatting
- Output plain text only
- If the content is too short or unclear, output: "Meeting notes available."`

const formatterSystemPrompt = `You are a data formatting engine.

Your task is to convert attendance records into a clean report format.

Rules:
- Do NOT explain anything.
- Do NOT add commentary.
- Do NOT invent data.
- Do NOT remove records.
- Format timestamps as HH:MM (24-hour format, WIB time) without seconds. Preserve names and statuses exactly as provided.
- Output must be plain text.
- Use this exact column order:
  Name | Status | Timestamp | Note
- Leave the Note column empty.
- One record per line.
- No markdown.
- No tables.
- No emojis.
- No headings.
- No extra text before or after the output.

If the input is invalid, output exactly:
INVALID_INPUT`

const (
	// Fallback tetap — klien mengandalkan string ini apa adanya
	ChatbotFallback    = "Maaf, asisten sedang tidak tersedia. Silakan coba lagi nanti."
	SummaryFallback    = "Meeting notes available."
	FormatInvalidInput = "INVALID_INPUT"

	summarizerMaxInput = 2000
)

var htmlTagPattern = regexp.MustCompile(`<[^<]+?>`)

// StripHTML membuang tag dan meng-unescape entity, untuk input AI dan preview.
func StripHTML(content string) string {
	return strings.TrimSpace(html.UnescapeString(htmlTagPattern.ReplaceAllString(content, "")))
}

// PlainPreview: cuplikan teks polos notulen, fallback saat AI tidak tersedia.
func PlainPreview(content string, maxLen int) string {
	text := StripHTML(content)
	if text == "" {
		return SummaryFallback
	}
	if len(text) > maxLen {
		return text[:maxLen] + "..."
	}
	return text
}

type Assistant struct {
	completer Completer
}

func NewAssistant(completer Completer) *Assistant {
	return &Assistant{completer: completer}
}

// Chat menjawab pertanyaan seputar Rohis. Error apapun dari sink AI
// diturunkan jadi string permintaan maaf, tidak pernah dipropagasi.
func (a *Assistant) Chat(ctx context.Context, message string) string {
	message = strings.TrimSpace(message)
	if message == "" || a.completer == nil {
		return ChatbotFallback
	}
	answer, err := a.completer.Complete(ctx, ChatbotModel, chatbotSystemPrompt, message, 0.4, 200)
	if err != nil || strings.TrimSpace(answer) == "" {
		return ChatbotFallback
	}
	return strings.TrimSpace(answer)
}

// Summarize merangkum notulen jadi 2-3 kalimat. Input pendek, output aneh,
// atau kegagalan API semuanya jatuh ke SummaryFallback.
func (a *Assistant) Summarize(ctx context.Context, content string) string {
	clean := StripHTML(content)
	if len(clean) < 50 {
		return SummaryFallback
	}
	if len(clean) > summarizerMaxInput {
		clean = clean[:summarizerMaxInput] + "..."
	}
	if a.completer == nil {
		return SummaryFallback
	}

	summary, err := a.completer.Complete(ctx, SummarizerModel, summarizerSystemPrompt, clean, 0.3, 150)
	if err != nil {
		return SummaryFallback
	}
	summary = strings.TrimSpace(summary)
	if len(summary) < 10 || len(summary) > 500 {
		return SummaryFallback
	}
	return summary
}

// Format menyusun baris absensi jadi laporan kolom tetap.
// Kontrak error lewat isi string: INVALID_INPUT / FORMATTING_ERROR.
func (a *Assistant) Format(ctx context.Context, input string) string {
	if strings.TrimSpace(input) == "" {
		return FormatInvalidInput
	}
	if a.completer == nil {
		return "FORMATTING_ERROR: AI formatter is not configured"
	}
	result, err := a.completer.Complete(ctx, FormatterModel, formatterSystemPrompt, input, 0, 800)
	if err != nil {
		return fmt.Sprintf("FORMATTING_ERROR: %v", err)
	}
	result = strings.TrimSpace(result)
	if result == "" {
		return "FORMATTING_ERROR: Empty response from API"
	}
	return result
}
