package notification

import (
	"context"
	"fmt"

	"reminder/internal/domain/entity"
	"reminder/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// fcmBatchLimit is the Firebase limit on messages per SendEach request.
const fcmBatchLimit = 500

type firebaseSender struct {
	client *messaging.Client
}

// NewFirebaseSender creates a new Firebase push sender instance
func NewFirebaseSender(ctx context.Context, credentialsPath string) (service.PushSender, error) {
	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &firebaseSender{
		client: client,
	}, nil
}

// SendAll submits the whole batch, chunked at the Firebase per-request limit.
// Per-message failures are counted and invalid tokens collected; they never
// fail the dispatch as a whole.
func (s *firebaseSender) SendAll(ctx context.Context, messages []*entity.ReminderMessage) (*service.BatchResult, error) {
	result := &service.BatchResult{}
	if len(messages) == 0 {
		return result, nil
	}

	for _, chunk := range chunkMessages(messages, fcmBatchLimit) {
		fcmMessages := make([]*messaging.Message, 0, len(chunk))
		for _, msg := range chunk {
			fcmMessages = append(fcmMessages, &messaging.Message{
				Token: msg.Token,
				Notification: &messaging.Notification{
					Title: msg.Title,
					Body:  msg.Body,
				},
			})
		}

		response, err := s.client.SendEach(ctx, fcmMessages)
		if err != nil {
			return nil, fmt.Errorf("failed to send reminder batch: %w", err)
		}

		result.SuccessCount += response.SuccessCount
		result.FailureCount += response.FailureCount

		for idx, sendResponse := range response.Responses {
			if sendResponse.Error == nil {
				continue
			}
			// Only invalid or unregistered tokens are worth reporting back;
			// transient delivery errors are already counted as failures.
			if messaging.IsInvalidArgument(sendResponse.Error) ||
				messaging.IsUnregistered(sendResponse.Error) {
				result.InvalidTokens = append(result.InvalidTokens, chunk[idx].Token)
			}
		}
	}

	return result, nil
}

// chunkMessages splits messages into slices of at most size elements.
func chunkMessages(messages []*entity.ReminderMessage, size int) [][]*entity.ReminderMessage {
	if size <= 0 {
		return [][]*entity.ReminderMessage{messages}
	}

	chunks := make([][]*entity.ReminderMessage, 0, (len(messages)+size-1)/size)
	for idx := 0; idx < len(messages); idx += size {
		end := min(idx+size, len(messages))
		chunks = append(chunks, messages[idx:end])
	}

	return chunks
}
