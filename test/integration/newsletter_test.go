package integration_test

import (
	"sync"
	"testing"
	"time"

	"hwreview_backend/internal/models"
	"hwreview_backend/internal/services"
	"hwreview_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingMailer captures recipients instead of delivering.
type recordingMailer struct {
	mu         sync.Mutex
	recipients []string
}

func (m *recordingMailer) Send(to, subject, htmlBody, textBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipients = append(m.recipients, to)
	return nil
}

func (m *recordingMailer) sentTo() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.recipients...)
}

func subscribe(t *testing.T, tx *gorm.DB, emailAddr string) {
	sub := &models.NewsletterSubscription{
		Email:        emailAddr,
		IsActive:     true,
		SubscribedAt: time.Now().UTC(),
	}
	require.NoError(t, tx.Create(sub).Error)
}

func TestNewsletterDispatchSkipsNonAccountSubscribers(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	reader := &models.User{Username: "reader", Email: "reader@example.com", PasswordHash: "Str0ngPassw0rd!"}
	helpers.CreateUser(t, tx, reader)
	optout := &models.User{Username: "optout", Email: "optout@example.com", PasswordHash: "Str0ngPassw0rd!"}
	helpers.CreateUser(t, tx, optout)
	require.NoError(t, tx.Model(optout).Update("email_notifications_enabled", false).Error)

	// All three subscribed, but only reader has an account with
	// notifications on.
	subscribe(t, tx, reader.Email)
	subscribe(t, tx, optout.Email)
	subscribe(t, tx, "lurker@example.com")

	article := helpers.CreateTestArticle(t, tx, reader.ID, "Fan curve tuning", models.ArticleStatusPublished)

	mailer := &recordingMailer{}
	newsletter := services.NewNewsletterService(services.NewSettingsService(nil), mailer)
	newsletter.DispatchArticle(tx, article)

	assert.Equal(t, []string{reader.Email}, mailer.sentTo())
}
