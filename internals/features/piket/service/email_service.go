package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"rohisku_backend/internals/configs"
)

// Mailer mengirim satu pesan ke banyak penerima dan melaporkan alamat yang
// gagal. error hanya untuk kegagalan total (mis. API key salah / jaringan).
type Mailer interface {
	Send(subject, textBody string, recipients []string) (failed []string, err error)
}

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
	sendTimeout      = 15 * time.Second
)

// SendgridMailer: implementasi Mailer di atas API v3 SendGrid.
// Kirim per penerima supaya satu alamat rusak tidak menggagalkan sisanya.
type SendgridMailer struct {
	APIKey     string
	SenderName string
	SenderAddr string
}

func NewSendgridMailer() *SendgridMailer {
	return &SendgridMailer{
		APIKey:     configs.SendgridAPIKey,
		SenderName: configs.SenderName,
		SenderAddr: configs.SenderEmail,
	}
}

func (m *SendgridMailer) Send(subject, textBody string, recipients []string) ([]string, error) {
	if m.APIKey == "" {
		return recipients, fmt.Errorf("sendgrid API key is not configured")
	}

	from := sgmail.NewEmail(m.SenderName, m.SenderAddr)
	var failed []string
	for _, addr := range recipients {
		msg := sgmail.NewV3Mail()
		msg.SetFrom(from)

		p := sgmail.NewPersonalization()
		p.Subject = subject
		p.AddTos(sgmail.NewEmail("", addr))
		msg.AddPersonalizations(p)
		msg.AddContent(sgmail.NewContent("text/plain", textBody))

		req := sendgrid.GetRequest(m.APIKey, sendgridEndpoint, sendgridHost)
		req.Method = http.MethodPost
		req.Body = sgmail.GetRequestBody(msg)

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		res, err := sendgrid.MakeRequestWithContext(ctx, req)
		cancel()
		if err != nil {
			log.Printf("[ERROR] Failed to send reminder to %s: %v\n", addr, err)
			failed = append(failed, addr)
			continue
		}
		if res.StatusCode >= http.StatusBadRequest {
			log.Printf("[ERROR] SendGrid rejected reminder to %s: status=%d body=%s\n", addr, res.StatusCode, res.Body)
			failed = append(failed, addr)
		}
	}

	// Semua gagal = kegagalan total, biar pemanggil mencatat status failed
	if len(failed) == len(recipients) && len(recipients) > 0 {
		return failed, fmt.Errorf("all %d reminder emails failed to send", len(recipients))
	}
	return failed, nil
}
