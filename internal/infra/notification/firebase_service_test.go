package notification

import (
	"testing"

	"reminder/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeMessages(n int) []*entity.ReminderMessage {
	messages := make([]*entity.ReminderMessage, n)
	for i := range messages {
		messages[i] = &entity.ReminderMessage{Token: "token"}
	}

	return messages
}

func TestChunkMessages(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		size      int
		wantSizes []int
	}{
		{name: "empty", total: 0, size: 500, wantSizes: []int{}},
		{name: "under limit", total: 3, size: 500, wantSizes: []int{3}},
		{name: "exact limit", total: 500, size: 500, wantSizes: []int{500}},
		{name: "over limit", total: 501, size: 500, wantSizes: []int{500, 1}},
		{name: "multiple chunks", total: 1200, size: 500, wantSizes: []int{500, 500, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := chunkMessages(makeMessages(tt.total), tt.size)

			require.Len(t, chunks, len(tt.wantSizes))
			for idx, chunk := range chunks {
				assert.Len(t, chunk, tt.wantSizes[idx])
			}
		})
	}
}

func TestChunkMessages_NonPositiveSize(t *testing.T) {
	messages := makeMessages(7)

	chunks := chunkMessages(messages, 0)

	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0], 7)
}
