package services

import (
	"context"
	"testing"
	"time"

	"matchly/config"
	"matchly/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNotice() PopularUserNotice {
	return PopularUserNotice{
		Recipient: "admin@example.com",
		UserID:    7,
		Name:      "Ayu <script>",
		Email:     "ayu@example.com",
		Age:       25,
		LikeCount: 51,
		Threshold: PopularityThreshold,
		SentAt:    time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
	}
}

func TestRenderPopularUserEmail(t *testing.T) {
	body, err := RenderPopularUserEmail(testNotice())
	require.NoError(t, err)

	assert.Contains(t, body, "Popular User Alert")
	assert.Contains(t, body, "more than 50 likes")
	assert.Contains(t, body, "ayu@example.com")
	assert.Contains(t, body, "<td>51</td>")
	assert.Contains(t, body, "<td>25</td>")
	assert.Contains(t, body, "2024-01-15 14:30:00 UTC")
	assert.Contains(t, body, "Ayu &lt;script&gt;")
	assert.NotContains(t, body, "<script>")
}

func TestRenderPopularUserEmail_OptionalDetails(t *testing.T) {
	notice := testNotice()

	body, err := RenderPopularUserEmail(notice)
	require.NoError(t, err)
	assert.NotContains(t, body, "Picture")
	assert.NotContains(t, body, "Earlier failed attempts")

	notice.Picture = "pictures/7/1.jpg"
	notice.PreviousFailures = 2

	body, err = RenderPopularUserEmail(notice)
	require.NoError(t, err)
	assert.Contains(t, body, "<td>pictures/7/1.jpg</td>")
	assert.Contains(t, body, "<td>2</td>")
}

func TestPopularUserNotice_Subject(t *testing.T) {
	notice := testNotice()
	notice.Name = "Ayu"
	assert.Equal(t, "Popular User Alert: Ayu", notice.Subject())
}

func TestMailNotifier_TransportErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid recipient", func(t *testing.T) {
		notifier := NewMailNotifier(config.Config{
			SMTPHost: "127.0.0.1",
			SMTPPort: 2525,
			MailFrom: "no-reply@matchly.local",
		})

		notice := testNotice()
		notice.Recipient = "not an address"

		err := notifier.Notify(ctx, notice)
		assert.ErrorIs(t, err, types.ErrTransport)
	})

	t.Run("unreachable server", func(t *testing.T) {
		notifier := NewMailNotifier(config.Config{
			SMTPHost: "127.0.0.1",
			SMTPPort: 1,
			MailFrom: "no-reply@matchly.local",
		})
		notifier.timeout = time.Second

		err := notifier.Notify(ctx, testNotice())
		assert.ErrorIs(t, err, types.ErrTransport)
	})
}

func TestNewNotifier(t *testing.T) {
	assert.IsType(t, &LogNotifier{}, NewNotifier(config.Config{}))
	assert.IsType(t, &MailNotifier{}, NewNotifier(config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587}))
	assert.NoError(t, NewLogNotifier().Notify(context.Background(), testNotice()))
}
