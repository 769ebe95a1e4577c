package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"dastarkhan/internal/domain/account"
)

var _ account.CodeSender = (*CodeRequests)(nil)

// DefaultCodeTopic receives verification codes for the SMS gateway.
const DefaultCodeTopic = "account.phone-codes"

// CodeRequest is the message an SMS gateway consumes.
type CodeRequest struct {
	PhoneNumber string    `json:"phoneNumber"`
	Code        string    `json:"code"`
	RequestedAt time.Time `json:"requestedAt"`
}

// CodeRequests implements account.CodeSender by handing codes to Kafka.
type CodeRequests struct {
	writer MessageWriter
	now    func() time.Time
}

// NewCodeRequests creates a sender writing to writer.
func NewCodeRequests(writer MessageWriter) *CodeRequests {
	return &CodeRequests{writer: writer, now: time.Now}
}

// SendCode enqueues one code keyed by phone number.
func (s *CodeRequests) SendCode(ctx context.Context, phone, code string) error {
	payload, err := json.Marshal(CodeRequest{PhoneNumber: phone, Code: code, RequestedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal code request: %w", err)
	}
	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(phone),
		Value: payload,
	})
}
