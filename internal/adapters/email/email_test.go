package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"eventdiscovery/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestTemplateRenderer_Welcome(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	subject, html, text, err := r.Render("welcome", &domain.WelcomeMessageEmailData{Email: "a@example.com", Username: "<alice>"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome aboard, <alice>", subject)
	assert.Contains(t, html, "&lt;alice&gt;")
	assert.Contains(t, text, "a@example.com")

	_, _, _, err = r.Render("missing", nil)
	require.Error(t, err)
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, MailerConfig{FromAddress: "noreply@example.com", FromName: "Events"}, nil)
	m.logger = testLogger()

	require.NoError(t, m.Send(context.Background(), "a@example.com", "Hi", "<p>hi</p>", ""))
	assert.Equal(t, "Events <noreply@example.com>", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"a@example.com"}, client.input.Destination.ToAddresses)
	assert.NotNil(t, client.input.Message.Body.Html)
	assert.Nil(t, client.input.Message.Body.Text)

	client.err = errors.New("throttled")
	require.Error(t, m.Send(context.Background(), "a@example.com", "Hi", "", "hi"))
}

func TestNewMailer(t *testing.T) {
	m, err := NewMailer(MailerConfig{Provider: "carrier-pigeon"}, nil)
	require.NoError(t, err)
	require.IsType(t, &noopMailer{}, m)
	require.NoError(t, m.Send(context.Background(), "a@example.com", "s", "", ""))

	_, err = NewMailer(MailerConfig{Provider: ProviderSES}, nil)
	require.Error(t, err)

	m, err = NewMailer(MailerConfig{Provider: ProviderSES, FromAddress: "x@example.com", SES: SESConfig{Region: "eu-west-1"}}, nil)
	require.NoError(t, err)
	require.IsType(t, &sesMailer{}, m)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
