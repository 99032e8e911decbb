package service

import (
	"context"
	"encoding/json"

	"smartnotes-be/internal/dto"
	"smartnotes-be/internal/pkg/logger"
	"smartnotes-be/internal/repository/unitofwork"
	"smartnotes-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService refreshes embeddings of notes whose text changed after
// they were embedded.
type consumerService struct {
	subscriber        message.Subscriber
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:        subscriber,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks: gochannel redelivers a nacked message
// immediately, which would spin while a provider is down. The next edit of
// the note enqueues a fresh job.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.ReembedNoteMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal re-embed message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	note, err := findOwnedNote(ctx, uow.NoteRepository(), payload.UserId, payload.NoteId)
	if err != nil {
		// Deleted notes land here too.
		cs.logger.Warn("CONSUMER", "Note not available for re-embed", map[string]interface{}{
			"note_id": payload.NoteId,
			"error":   err.Error(),
		})
		return
	}

	vector, err := generateVector(ctx, cs.embeddingProvider, noteDocument(note), embedding.InputDocument)
	if err != nil {
		cs.logger.Error("CONSUMER", "Re-embed failed", map[string]interface{}{
			"note_id": note.Id,
			"error":   err.Error(),
		})
		return
	}

	rows, err := uow.NoteRepository().UpdateEmbedding(ctx, note.Id, vector)
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to store embedding", map[string]interface{}{
			"note_id": note.Id,
			"error":   err.Error(),
		})
		return
	}
	if rows == 0 {
		cs.logger.Warn("CONSUMER", "Note deleted before re-embed finished", map[string]interface{}{
			"note_id": note.Id,
		})
		return
	}

	cs.logger.Info("CONSUMER", "Note re-embedded", map[string]interface{}{
		"note_id": note.Id,
	})
}
