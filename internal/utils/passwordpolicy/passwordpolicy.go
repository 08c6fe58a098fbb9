// Package passwordpolicy validates candidate passwords with an ordered list
// of independent checks. Each check returns a human-readable failure reason,
// or an empty string when the candidate passes. The breach check talks to the
// Have I Been Pwned range API and is failure tolerant: if the API cannot be
// reached the check is skipped rather than blocking registration.
package passwordpolicy

import (
	"bufio"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"
)

// Check inspects a candidate password and returns a failure reason, or ""
// when the candidate passes.
type Check interface {
	Validate(ctx context.Context, password string) string
}

// CheckFunc adapts a plain function to the Check interface.
type CheckFunc func(ctx context.Context, password string) string

func (f CheckFunc) Validate(ctx context.Context, password string) string {
	return f(ctx, password)
}

// MinLength requires at least n characters.
func MinLength(n int) Check {
	return CheckFunc(func(_ context.Context, password string) string {
		if len(password) >= n {
			return ""
		}
		return fmt.Sprintf("Password must contain at least %d characters.", n)
	})
}

// RequireUpper requires at least one upper-case letter.
func RequireUpper() Check {
	return CheckFunc(func(_ context.Context, password string) string {
		for _, r := range password {
			if unicode.IsUpper(r) {
				return ""
			}
		}
		return "Password must contain at least one capital letter."
	})
}

// RequireLower requires at least one lower-case letter.
func RequireLower() Check {
	return CheckFunc(func(_ context.Context, password string) string {
		for _, r := range password {
			if unicode.IsLower(r) {
				return ""
			}
		}
		return "Password must contain at least one lowercase letter."
	})
}

// RequireDigit requires at least one digit.
func RequireDigit() Check {
	return CheckFunc(func(_ context.Context, password string) string {
		for _, r := range password {
			if unicode.IsDigit(r) {
				return ""
			}
		}
		return "Password must contain at least one digit."
	})
}

// RequireSpecial requires at least one ASCII character that is neither a
// letter nor a digit.
func RequireSpecial() Check {
	return CheckFunc(func(_ context.Context, password string) string {
		for _, r := range password {
			if r < unicode.MaxASCII && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return ""
			}
		}
		return "Password must contain at least one special character."
	})
}

// BreachCheck queries the Have I Been Pwned range API using the k-anonymity
// scheme: only the first five characters of the SHA-1 hash leave the process.
type BreachCheck struct {
	BaseURL string
	Client  *http.Client
}

// NewBreachCheck creates a BreachCheck against the public HIBP API.
func NewBreachCheck() *BreachCheck {
	return &BreachCheck{
		BaseURL: "https://api.pwnedpasswords.com/range",
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (b *BreachCheck) Validate(ctx context.Context, password string) string {
	digest := fmt.Sprintf("%X", sha1.Sum([]byte(password)))
	prefix, suffix := digest[:5], digest[5:]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.BaseURL+"/"+prefix, nil)
	if err != nil {
		return ""
	}
	resp, err := b.Client.Do(req)
	if err != nil {
		// Network failure: skip the check rather than block registration.
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if hash, _, found := strings.Cut(line, ":"); found && hash == suffix {
			return "Password has been found in a known data breach."
		}
	}
	return ""
}

// Policy runs its checks in order and reports the first failure.
type Policy struct {
	checks []Check
}

// New creates a policy from the given ordered checks.
func New(checks ...Check) *Policy {
	return &Policy{checks: checks}
}

// Default returns the registration policy: length, character classes, then
// the breach check last so the network call only happens for otherwise-valid
// passwords.
func Default(withBreachCheck bool) *Policy {
	checks := []Check{
		MinLength(8),
		RequireSpecial(),
		RequireUpper(),
		RequireLower(),
		RequireDigit(),
	}
	if withBreachCheck {
		checks = append(checks, NewBreachCheck())
	}
	return New(checks...)
}

// Validate returns the first failure reason, or "" when the password passes
// every check.
func (p *Policy) Validate(ctx context.Context, password string) string {
	for _, check := range p.checks {
		if reason := check.Validate(ctx, password); reason != "" {
			return reason
		}
	}
	return ""
}
