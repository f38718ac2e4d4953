package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-filepilot-be/internal/dto"
	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/repository/specification"
	"ai-filepilot-be/internal/repository/unitofwork"
	"ai-filepilot-be/pkg/embedding"
	"ai-filepilot-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// Chunking geometry for ingestion. 1500 chars keeps each chunk well inside
// the embedding model's context window; 200 chars of overlap preserves
// continuity across boundaries.
const (
	chunkSize    = 1500
	chunkOverlap = 200
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	embeddingDim      int
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	embeddingDim int,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		embeddingDim:      embeddingDim,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
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

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // malformed payloads would retry forever
		return
	}

	log.Printf("[INFO] Processing embedding for document %s", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to get document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}
	if doc == nil {
		// Deleted between publish and consume.
		msg.Ack()
		return
	}
	if doc.Content == "" {
		log.Printf("[INFO] Document %s has no extractable text, skipping", doc.Id)
		msg.Ack()
		return
	}

	chunks := utils.SplitText(doc.Content, chunkSize, chunkOverlap)
	log.Printf("[INFO] Document %s split into %d chunks", doc.Id, len(chunks))

	newChunks := make([]*entity.DocumentChunk, 0, len(chunks))
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of document %s: %v", i, doc.Id, err)
			msg.Nack()
			return
		}
		if cs.embeddingDim > 0 && len(res.Embedding.Values) != cs.embeddingDim {
			// Provider/schema mismatch; retrying will produce the same vector.
			log.Printf("[ERROR] Embedding for chunk %d of document %s has %d dimensions, expected %d; dropping",
				i, doc.Id, len(res.Embedding.Values), cs.embeddingDim)
			msg.Ack()
			return
		}
		newChunks = append(newChunks, &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: doc.Id,
			Content:    chunk,
			ChunkIndex: i,
			Embedding:  res.Embedding.Values,
			CreatedAt:  time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old chunks for document %s: %v", doc.Id, err)
		msg.Nack()
		return
	}
	if err := uow.DocumentChunkRepository().CreateBatch(ctx, newChunks); err != nil {
		log.Printf("[ERROR] Failed to store chunks for document %s: %v", doc.Id, err)
		msg.Nack()
		return
	}
	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit chunks for document %s: %v", doc.Id, err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Stored %d chunks for document %s", len(newChunks), doc.Id)
	msg.Ack()
}
