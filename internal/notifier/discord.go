package notifier

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/gdg-garage/registration-api/internal/models"
)

// Notifier delivers a newly created registration to one external sink.
type Notifier interface {
	NotifyRegistration(ctx context.Context, registration models.Registration) error
}

// DiscordNotifier posts registrations either through a bot session to a
// channel or through an incoming webhook.
type DiscordNotifier struct {
	session      *discordgo.Session
	channelID    string
	webhookID    string
	webhookToken string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

// NewDiscordWebhookNotifier accepts a webhook URL of the form
// https://discord.com/api/webhooks/<id>/<token>.
func NewDiscordWebhookNotifier(webhookURL string) (*DiscordNotifier, error) {
	id, token, err := parseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}

	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	return &DiscordNotifier{
		session:      session,
		webhookID:    id,
		webhookToken: token,
	}, nil
}

func (n *DiscordNotifier) NotifyRegistration(ctx context.Context, registration models.Registration) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}

	message := FormatMessage(registration)

	if n.webhookID != "" {
		_, err := n.session.WebhookExecute(n.webhookID, n.webhookToken, false, &discordgo.WebhookParams{
			Content: message,
		}, discordgo.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("discord webhook: %w", err)
		}
		return nil
	}

	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	if _, err := n.session.ChannelMessageSend(n.channelID, message, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord channel message: %w", err)
	}

	return nil
}

func FormatMessage(registration models.Registration) string {
	return fmt.Sprintf("🎉 **New Registration**\n**Name:** %s\n**Email:** %s\n**Phone:** %s\n**Semester:** %s\n**Branch:** %s\n**College:** %s\n**ID:** %s",
		registration.FullName,
		registration.Email,
		registration.PhoneNumber,
		registration.Semester,
		registration.Branch,
		registration.College,
		registration.ID,
	)
}

func parseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse webhook url: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}

	return "", "", fmt.Errorf("webhook url %q has no webhooks/<id>/<token> path", u.Redacted())
}
