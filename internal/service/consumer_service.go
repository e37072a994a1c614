package service

import (
	"context"
	"encoding/json"

	"booknest-be/internal/pkg/logger"
	"booknest-be/internal/repository/specification"
	"booknest-be/internal/repository/unitofwork"
	"booknest-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// LibraryNotifier pushes a library-changed notice to connected members. The
// websocket hub implements it; tests plug in a recorder.
type LibraryNotifier interface {
	NotifyMember(memberId uuid.UUID, event events.BaseEvent)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService fans library events out to every member of the affected
// vault so open shelves refresh without polling.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	notifier   LibraryNotifier
	log        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	notifier LibraryNotifier,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		notifier:   notifier,
		log:        log,
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
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.log.Error("consumer", "failed to unmarshal library event", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack malformed messages to prevent infinite retry.
		msg.Ack()
		return
	}

	vaultIdRaw, ok := event.Data["vault_id"].(string)
	if !ok {
		cs.log.Error("consumer", "library event missing vault_id", map[string]interface{}{
			"type": event.Type,
		})
		msg.Ack()
		return
	}
	vaultId, err := uuid.Parse(vaultIdRaw)
	if err != nil {
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	members, err := uow.MemberRepository().FindAll(ctx, specification.ByVaultID{VaultID: vaultId})
	if err != nil {
		cs.log.Error("consumer", "failed to list vault members", map[string]interface{}{
			"vault_id": vaultId,
			"error":    err.Error(),
		})
		msg.Nack()
		return
	}

	for _, member := range members {
		cs.notifier.NotifyMember(member.Id, event)
	}
	msg.Ack()
}
