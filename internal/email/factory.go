package email

import (
	"errors"
	"fmt"
	"maps"
	"net/mail"
	"slices"
	"strings"

	"github.com/vintechs/portal/internal/config"
	"github.com/vintechs/portal/internal/domain"
)

// Providers accepted in EMAIL_PROVIDER.
const (
	ProviderLog    = "log"
	ProviderResend = "resend"
)

type senderFactory func(from string, cfg config.Provider) (domain.EmailSender, error)

var senderFactories = map[string]senderFactory{
	ProviderLog: func(from string, _ config.Provider) (domain.EmailSender, error) {
		return &LogSender{senderAddress: from}, nil
	},
	ProviderResend: func(from string, cfg config.Provider) (domain.EmailSender, error) {
		if cfg.GetEmailAPIKey() == "" {
			return nil, errors.New("EMAIL_API_KEY is required by the resend provider")
		}
		return NewResendSender(cfg.GetEmailAPIKey(), from), nil
	},
}

// NewSender builds the sender named by EMAIL_PROVIDER. EMAIL_SENDER must
// parse as an address, with or without a display name, so a typo fails at
// startup instead of on the first welcome email.
func NewSender(cfg config.Provider) (domain.EmailSender, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.GetEmailProvider()))
	factory, ok := senderFactories[name]
	if !ok {
		known := slices.Sorted(maps.Keys(senderFactories))
		return nil, fmt.Errorf("unknown email provider %q, want one of %s", name, strings.Join(known, ", "))
	}

	from := strings.TrimSpace(cfg.GetEmailSender())
	if _, err := mail.ParseAddress(from); err != nil {
		return nil, fmt.Errorf("invalid EMAIL_SENDER %q: %w", from, err)
	}
	return factory(from, cfg)
}
