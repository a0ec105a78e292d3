package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"razorpay-integration/internal/core/domain"
	"razorpay-integration/pkg/apperror"
)

// HMACSignatureService implements ports.SignatureService using HMAC-SHA256.
type HMACSignatureService struct{}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

// Sign computes HMAC-SHA256 of payload using secret.
// Returns lowercase hex-encoded signature.
func (s *HMACSignatureService) Sign(secret string, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyCallback checks the callback signature against the canonical
// pipe-delimited message. Uses constant-time comparison to prevent timing
// attacks. The check is pure: no network, no state change. A mismatch
// returns (false, nil), or (false, SignatureMismatchError) in strict mode.
func (s *HMACSignatureService) VerifyCallback(params domain.CallbackParams, secret string, strict bool) (bool, error) {
	expected := s.Sign(secret, params.Message())
	if !hmac.Equal([]byte(expected), []byte(params.Signature)) {
		if strict {
			return false, apperror.ErrSignatureMismatch()
		}
		return false, nil
	}
	return true, nil
}
