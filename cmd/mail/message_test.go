package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
)

const templatesDir = "../../templates"

func encode(t *testing.T, msg domain.MailMessage) []byte {
	t.Helper()

	body, err := json.Marshal(msg)
	require.NoError(t, err)
	return body
}

func render(t *testing.T, body []byte) string {
	t.Helper()

	m, err := buildMessage("noreply@example.com", templatesDir, body)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestBuildMessage_ResetPassword(t *testing.T) {
	body := encode(t, domain.MailMessage{
		Type: domain.MailTypeResetPassword,
		To:   "alice@example.com",
		Data: domain.ResetPasswordMailData{FullName: "Alice", OTP: "123456", Expiration: 15},
	})

	out := render(t, body)
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "123456")
}

func TestBuildMessage_MonthlySummary(t *testing.T) {
	body := encode(t, domain.MailMessage{
		Type: domain.MailTypeMonthlySummary,
		To:   "bob@example.com",
		Data: domain.MonthlySummaryMailData{
			FullName:     "Bob",
			Month:        "2025-03",
			ProviderName: "Maria",
			Count:        2,
			HoursDay:     "8h00min",
			HoursNight:   "3h36min",
			HoursTotal:   "11h36min",
			TotalValue:   "297.20",
			MealsQty:     1,
			MealCost:     "15.00",
		},
	})

	out := render(t, body)
	assert.Contains(t, out, "2025-03")
	assert.Contains(t, out, "297.20")
}

func TestBuildMessage_Rejects(t *testing.T) {
	tests := map[string][]byte{
		"not json":     []byte("{"),
		"unknown type": encode(t, domain.MailMessage{Type: "change_email", To: "a@example.com"}),
		"bad address":  encode(t, domain.MailMessage{Type: domain.MailTypeWelcome, To: "not-an-address", Data: domain.WelcomeMailData{}}),
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := buildMessage("noreply@example.com", templatesDir, body)
			assert.Error(t, err)
		})
	}
}
