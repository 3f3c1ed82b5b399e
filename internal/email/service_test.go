package email

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skywebdev/server/internal/config"
	"github.com/skywebdev/server/internal/domain/enrollments"
)

func testConfig(enabled bool) config.EmailConfig {
	return config.EmailConfig{
		Enabled:        enabled,
		ResendAPIKey:   "re_test_key",
		From:           "SkyWeb <noreply@skywebdev.in>",
		CompanyName:    "SkyWeb Dev",
		CompanyWebsite: "https://skywebdev.in",
		CompanyEmail:   "hello@skywebdev.in",
	}
}

func TestNewService(t *testing.T) {
	t.Run("disabled service needs no credentials", func(t *testing.T) {
		svc, err := NewService(config.EmailConfig{Enabled: false}, zerolog.Nop())
		require.NoError(t, err)
		assert.Nil(t, svc.client)
	})

	t.Run("enabled service validates sender", func(t *testing.T) {
		cfg := testConfig(true)
		cfg.From = "not an address"
		_, err := NewService(cfg, zerolog.Nop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid sender email")
	})

	t.Run("enabled service builds a client", func(t *testing.T) {
		svc, err := NewService(testConfig(true), zerolog.Nop())
		require.NoError(t, err)
		assert.NotNil(t, svc.client)
	})
}

func TestSendApplicationReceivedDisabled(t *testing.T) {
	svc, err := NewService(testConfig(false), zerolog.Nop())
	require.NoError(t, err)

	// Must not panic or attempt network I/O when disabled.
	svc.SendApplicationReceived(context.Background(), &enrollments.Enrollment{
		ID:        "enr1",
		Name:      "Asha Rao",
		Email:     "asha@example.com",
		AppliedAt: time.Now(),
	}, &enrollments.PostingSummary{Title: "Backend Intern", Duration: "3 months"})
}

func TestApplicationReceivedTemplate(t *testing.T) {
	svc, err := NewService(testConfig(false), zerolog.Nop())
	require.NoError(t, err)

	var buf strings.Builder
	data := applicationReceivedData{
		Name:            "Asha Rao",
		InternshipTitle: "Backend Intern",
		Duration:        "3 months",
		Location:        "Remote",
		Stipend:         "5000 INR/month",
		ResumeLink:      "https://example.com/asha-resume.pdf",
		AppliedAt:       "August 31, 2026",
		CompanyName:     "SkyWeb Dev",
		CompanyWebsite:  "https://skywebdev.in",
		CompanyEmail:    "hello@skywebdev.in",
		CurrentYear:     2026,
	}
	require.NoError(t, svc.tmpl.Execute(&buf, data))

	html := buf.String()
	assert.Contains(t, html, "Asha Rao")
	assert.Contains(t, html, "Backend Intern")
	assert.Contains(t, html, "3 months")
	assert.Contains(t, html, "5000 INR/month")
	assert.Contains(t, html, `href="https://example.com/asha-resume.pdf"`)
	assert.Contains(t, html, "hello@skywebdev.in")
	assert.Contains(t, html, "2026")
}

func TestValidateEmailAddress(t *testing.T) {
	assert.NoError(t, validateEmailAddress("user@example.com"))
	assert.NoError(t, validateEmailAddress("SkyWeb <noreply@skywebdev.in>"))
	assert.Error(t, validateEmailAddress("nonsense"))
	assert.Error(t, validateEmailAddress(""))
}
