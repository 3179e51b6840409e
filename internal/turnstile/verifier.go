package turnstile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redmonkez12/advisory-cms/internal/logging"
)

// Verifier validates Cloudflare Turnstile tokens against the siteverify endpoint
type Verifier struct {
	secret    string
	verifyURL string
	client    *http.Client
	logger    *logging.Logger
}

func NewVerifier(secret, verifyURL string, timeout time.Duration, logger *logging.Logger) *Verifier {
	return &Verifier{
		secret:    secret,
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

type verifyRequest struct {
	Secret   string `json:"secret"`
	Response string `json:"response"`
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify reports whether clientToken passes the bot check. With no secret
// configured every token passes; any transport or decode failure fails.
func (v *Verifier) Verify(ctx context.Context, clientToken string) bool {
	if v.secret == "" {
		v.logger.Warn("turnstile secret not configured, skipping bot verification")
		return true
	}

	if clientToken == "" {
		return false
	}

	ok, err := v.verify(ctx, clientToken)
	if err != nil {
		v.logger.Error("turnstile verification error", "error", err.Error())
		return false
	}
	return ok
}

func (v *Verifier) verify(ctx context.Context, clientToken string) (bool, error) {
	body, err := json.Marshal(verifyRequest{Secret: v.secret, Response: clientToken})
	if err != nil {
		return false, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to call siteverify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("siteverify returned status %d", resp.StatusCode)
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	if !result.Success && len(result.ErrorCodes) > 0 {
		v.logger.Debug("turnstile rejected token", "error_codes", result.ErrorCodes)
	}

	return result.Success, nil
}
