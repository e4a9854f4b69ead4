package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeCompleter struct {
	reply string
	err   error

	lastModel  string
	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) Complete(_ context.Context, model, systemPrompt, userMessage string, _ float32, _ int) (string, error) {
	f.lastModel = model
	f.lastSystem = systemPrompt
	f.lastUser = userMessage
	return f.reply, f.err
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Hasil rapat", StripHTML("<p>Hasil <b>rapat</b></p>"))
	assert.Equal(t, "a & b", StripHTML("<p>a &amp; b</p>"))
	assert.Equal(t, "", StripHTML("<p><br></p>"))
}

func TestPlainPreview(t *testing.T) {
	assert.Equal(t, SummaryFallback, PlainPreview("", 150))
	assert.Equal(t, "singkat", PlainPreview("<p>singkat</p>", 150))

	long := strings.Repeat("a", 200)
	preview := PlainPreview(long, 150)
	assert.Len(t, preview, 153)
	assert.True(t, strings.HasSuffix(preview, "..."))
}

func TestChatUsesCompleter(t *testing.T) {
	fake := &fakeCompleter{reply: "Wa'alaikumussalam. Silakan bertanya."}
	a := NewAssistant(fake)

	answer := a.Chat(context.Background(), "Apa itu Rohis?")
	assert.Equal(t, "Wa'alaikumussalam. Silakan bertanya.", answer)
	assert.Equal(t, ChatbotModel, fake.lastModel)
	assert.Contains(t, fake.lastSystem, "Rohis")
}

func TestChatFallsBack(t *testing.T) {
	a := NewAssistant(&fakeCompleter{err: errors.New("timeout")})
	assert.Equal(t, ChatbotFallback, a.Chat(context.Background(), "halo"))

	a = NewAssistant(nil)
	assert.Equal(t, ChatbotFallback, a.Chat(context.Background(), "halo"))

	a = NewAssistant(&fakeCompleter{reply: "jawaban"})
	assert.Equal(t, ChatbotFallback, a.Chat(context.Background(), "   "))
}

func TestSummarizeShortInputFallsBack(t *testing.T) {
	fake := &fakeCompleter{reply: "should not be used"}
	a := NewAssistant(fake)

	got := a.Summarize(context.Background(), "<p>pendek</p>")
	assert.Equal(t, SummaryFallback, got)
	assert.Empty(t, fake.lastUser)
}

func TestSummarizeValidatesOutput(t *testing.T) {
	content := "<p>" + strings.Repeat("Rapat membahas program Ramadan. ", 5) + "</p>"

	a := NewAssistant(&fakeCompleter{reply: "Rapat membahas program Ramadan dan pembagian tugas panitia."})
	got := a.Summarize(context.Background(), content)
	assert.Equal(t, "Rapat membahas program Ramadan dan pembagian tugas panitia.", got)

	// Output terlalu pendek / terlalu panjang / error → fallback
	a = NewAssistant(&fakeCompleter{reply: "ok"})
	assert.Equal(t, SummaryFallback, a.Summarize(context.Background(), content))

	a = NewAssistant(&fakeCompleter{reply: strings.Repeat("x", 600)})
	assert.Equal(t, SummaryFallback, a.Summarize(context.Background(), content))

	a = NewAssistant(&fakeCompleter{err: errors.New("api down")})
	assert.Equal(t, SummaryFallback, a.Summarize(context.Background(), content))
}

func TestSummarizeTruncatesLongInput(t *testing.T) {
	fake := &fakeCompleter{reply: "Ringkasan rapat yang cukup panjang untuk lolos validasi."}
	a := NewAssistant(fake)

	long := strings.Repeat("b", 3000)
	_ = a.Summarize(context.Background(), long)
	assert.Len(t, fake.lastUser, summarizerMaxInput+3)
	assert.Equal(t, SummarizerModel, fake.lastModel)
}

func TestFormatContract(t *testing.T) {
	a := NewAssistant(&fakeCompleter{reply: "Ani | present | 07:15 |"})
	assert.Equal(t, "Ani | present | 07:15 |", a.Format(context.Background(), "Ani,present,07:15:02"))

	assert.Equal(t, FormatInvalidInput, a.Format(context.Background(), "   "))

	a = NewAssistant(&fakeCompleter{err: errors.New("rate limited")})
	got := a.Format(context.Background(), "Ani,present")
	assert.True(t, strings.HasPrefix(got, "FORMATTING_ERROR:"))
	assert.Contains(t, got, "rate limited")

	a = NewAssistant(&fakeCompleter{reply: "   "})
	assert.Equal(t, "FORMATTING_ERROR: Empty response from API", a.Format(context.Background(), "Ani,present"))
}
