package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/vintechs/portal/internal/domain"
	"github.com/vintechs/portal/internal/logging"
	"github.com/vintechs/portal/internal/pubsub"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

func welcomeBody(appName, name, dashboardURL string) cmp.Node {
	return cmp.Group([]cmp.Node{
		g.H1(cmp.Textf("Welcome to %s, %s!", appName, name)),
		g.P(cmp.Text("Your account is ready. Sign in to manage your websites, domains and email.")),
		g.P(g.A(g.Href(dashboardURL), cmp.Text("Open your dashboard"))),
	})
}

// WelcomeSubscriber emails new users once their account exists.
type WelcomeSubscriber struct {
	sender  domain.EmailSender
	appName string
	baseURL string
}

// NewWelcomeSubscriber creates a WelcomeSubscriber.
func NewWelcomeSubscriber(sender domain.EmailSender, appName, baseURL string) *WelcomeSubscriber {
	return &WelcomeSubscriber{sender: sender, appName: appName, baseURL: strings.TrimRight(baseURL, "/")}
}

// Start subscribes to sign-up events.
func (w *WelcomeSubscriber) Start(ctx context.Context, sub pubsub.Subscriber) error {
	return pubsub.Subscribe(ctx, sub, pubsub.UserSignedUp, w.handle)
}

func (w *WelcomeSubscriber) handle(ctx context.Context, ev pubsub.AuthEvent) error {
	if ev.Email == "" {
		return fmt.Errorf("sign-up event for %s has no email", ev.UserID)
	}

	name := strings.TrimSpace(ev.FirstName)
	if name == "" {
		name = "there"
	}

	var body strings.Builder
	if err := welcomeBody(w.appName, name, w.baseURL+"/dashboard").Render(&body); err != nil {
		return fmt.Errorf("render welcome email: %w", err)
	}

	if err := w.sender.Send(ev.Email, "Welcome to "+w.appName, body.String()); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	logging.FromContext(ctx).InfoContext(ctx, "Sent welcome email", "user_id", ev.UserID)
	return nil
}
