package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"matchly/config"
	"matchly/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/wneessen/go-mail"
)

// PopularUserNotice is everything the admin is told about a user who crossed
// the popularity threshold.
type PopularUserNotice struct {
	Recipient string
	UserID    int
	Name      string
	Email     string
	Age       int
	LikeCount int64
	Threshold int64
	SentAt    time.Time

	Picture          string
	PreviousFailures int
}

func (n PopularUserNotice) Subject() string {
	return "Popular User Alert: " + n.Name
}

// Notifier delivers a notice. Delivery failures wrap types.ErrTransport.
type Notifier interface {
	Notify(ctx context.Context, notice PopularUserNotice) error
}

var popularUserEmailTemplate = template.Must(template.New("popularUser").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>{{.Subject}}</title>
</head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Popular User Alert</h2>
	<p>A user has received more than {{.Threshold}} likes.</p>
	<table cellpadding="6" style="border-collapse: collapse;">
		<tr><td><strong>User ID</strong></td><td>{{.UserID}}</td></tr>
		<tr><td><strong>Name</strong></td><td>{{.Name}}</td></tr>
		<tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
		<tr><td><strong>Age</strong></td><td>{{.Age}}</td></tr>
		<tr><td><strong>Total likes</strong></td><td>{{.LikeCount}}</td></tr>
		{{- if .Picture}}
		<tr><td><strong>Picture</strong></td><td>{{.Picture}}</td></tr>
		{{- end}}
		{{- if .PreviousFailures}}
		<tr><td><strong>Earlier failed attempts</strong></td><td>{{.PreviousFailures}}</td></tr>
		{{- end}}
		<tr><td><strong>Sent at</strong></td><td>{{.SentAt.Format "2006-01-02 15:04:05 MST"}}</td></tr>
	</table>
</body>
</html>
`))

func RenderPopularUserEmail(notice PopularUserNotice) (string, error) {
	var body bytes.Buffer
	if err := popularUserEmailTemplate.Execute(&body, notice); err != nil {
		return "", fmt.Errorf("failed to render popular user email: %w", err)
	}
	return body.String(), nil
}

// MailNotifier sends notices over SMTP.
type MailNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
	timeout  time.Duration
	log      logger.Logger
}

func NewMailNotifier(config config.Config) *MailNotifier {
	return &MailNotifier{
		host:     config.SMTPHost,
		port:     config.SMTPPort,
		username: config.SMTPUsername,
		password: config.SMTPPassword,
		from:     config.MailFrom,
		timeout:  30 * time.Second,
		log:      logger.New("MailNotifier"),
	}
}

func (mn *MailNotifier) Notify(ctx context.Context, notice PopularUserNotice) error {
	log := mn.log.TraceFromContext(ctx).Function("Notify")

	body, err := RenderPopularUserEmail(notice)
	if err != nil {
		return log.Err("failed to render email", err, "userID", notice.UserID)
	}

	msg := mail.NewMsg()
	if err := msg.From(mn.from); err != nil {
		return fmt.Errorf("%w: invalid sender %q: %v", types.ErrTransport, mn.from, err)
	}
	if err := msg.To(notice.Recipient); err != nil {
		return fmt.Errorf("%w: invalid recipient %q: %v", types.ErrTransport, notice.Recipient, err)
	}
	msg.Subject(notice.Subject())
	msg.SetBodyString(mail.TypeTextHTML, body)

	options := []mail.Option{
		mail.WithPort(mn.port),
		mail.WithTimeout(mn.timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if mn.username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(mn.username),
			mail.WithPassword(mn.password),
		)
	}

	client, err := mail.NewClient(mn.host, options...)
	if err != nil {
		return fmt.Errorf("%w: failed to create mail client: %v", types.ErrTransport, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: failed to send email: %v", types.ErrTransport, err)
	}

	log.Info("Popular user email sent", "userID", notice.UserID, "recipient", notice.Recipient)
	return nil
}

// LogNotifier only logs notices. It stands in for mail when no SMTP host is
// configured.
type LogNotifier struct {
	log logger.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.New("LogNotifier")}
}

func (ln *LogNotifier) Notify(ctx context.Context, notice PopularUserNotice) error {
	ln.log.TraceFromContext(ctx).Function("Notify").Info(
		"Popular user notice",
		"recipient", notice.Recipient,
		"subject", notice.Subject(),
		"userID", notice.UserID,
		"likeCount", notice.LikeCount,
	)
	return nil
}

func NewNotifier(config config.Config) Notifier {
	if config.SMTPHost == "" {
		logger.New("services").Function("NewNotifier").
			Warn("SMTP_HOST not set, popular user notices will only be logged")
		return NewLogNotifier()
	}
	return NewMailNotifier(config)
}
