package configs

import "fmt"

const (
	MailerSimulated = "simulated"
	MailerSES       = "ses"
)

// Mailer selects how email campaigns are delivered.
type Mailer struct {
	Provider string `env:"PROVIDER" envDefault:"simulated"`
	// From is the sender address; required for SES.
	From   string `env:"FROM"`
	Region string `env:"REGION" envDefault:"us-east-1"`
}

func (c Mailer) Validate() error {
	switch c.Provider {
	case MailerSimulated:
		return nil
	case MailerSES:
		if c.From == "" {
			return fmt.Errorf("MAILER_FROM is required for provider %q", c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown MAILER_PROVIDER %q", c.Provider)
	}
}
