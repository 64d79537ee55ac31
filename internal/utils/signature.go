package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// PaymentSignature computes the Razorpay checkout signature:
// hex(HMAC_SHA256(orderID + "|" + paymentID, keySecret)).
func PaymentSignature(orderID, paymentID, keySecret string) string {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature reports whether signature matches the expected
// signature for the order and payment.  The comparison is constant time.
func VerifyPaymentSignature(orderID, paymentID, signature, keySecret string) bool {
	want := PaymentSignature(orderID, paymentID, keySecret)
	return hmac.Equal([]byte(strings.ToLower(signature)), []byte(want))
}
