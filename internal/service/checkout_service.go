package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"strings"

	"github.com/limitless-llc/checkout-relay/internal/dedup"
	"github.com/limitless-llc/checkout-relay/internal/mail"
	"github.com/limitless-llc/checkout-relay/internal/models"
	"github.com/martinlindhe/base36"
)

var (
	ErrMissingSubject = errors.New("subject is required")
	ErrNoItems        = errors.New("order must contain at least one item")
)

// DuplicateDetector flags repeated submissions for logging.
type DuplicateDetector interface {
	Seen(fingerprint string) bool
}

// CheckoutService runs the order submission pipeline: validate, normalize,
// render, send. Validation failures short-circuit before any outbound call.
type CheckoutService struct {
	sender mail.Sender
	dedup  DuplicateDetector
	log    *slog.Logger
}

// NewCheckoutService creates a new checkout service. The duplicate detector
// may be nil, in which case no duplicate tracking happens.
func NewCheckoutService(sender mail.Sender, dup DuplicateDetector, log *slog.Logger) *CheckoutService {
	return &CheckoutService{
		sender: sender,
		dedup:  dup,
		log:    log,
	}
}

// Submit validates and submits an order, returning the generated order ID.
// Errors are either the validation sentinels, a *mail.UpstreamError, or a
// wrapped transport error.
func (s *CheckoutService) Submit(ctx context.Context, sub models.OrderSubmission) (string, error) {
	if strings.TrimSpace(sub.Subject) == "" {
		return "", ErrMissingSubject
	}
	if len(sub.Items) == 0 {
		return "", ErrNoItems
	}

	sub = sub.Normalize()

	if s.dedup != nil {
		if fp := dedup.Fingerprint(sub); s.dedup.Seen(fp) {
			s.log.Warn("probable duplicate submission",
				"fingerprint", fp,
				"subject", sub.Subject,
			)
		}
	}

	rendered := mail.Render(sub)

	if err := s.sender.Send(ctx, sub.Subject, sub.Customer.Email, rendered); err != nil {
		return "", err
	}

	return generateOrderID(), nil
}

// generateOrderID returns a short uppercase base36 token. It is a correlation
// handle for logs and replies, not a globally unique identifier.
func generateOrderID() string {
	var b [8]byte
	_, _ = rand.Read(b[3:]) // 40 random bits, at most 8 base36 chars
	tok := base36.Encode(binary.BigEndian.Uint64(b[:]))
	for len(tok) < 8 {
		tok = "0" + tok
	}
	return tok
}
