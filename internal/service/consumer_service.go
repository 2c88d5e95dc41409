// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/pkg/logger"
	"ebook-studio-be/internal/pkg/mailer"
	"ebook-studio-be/internal/repository/specification"
	"ebook-studio-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService mails a receipt for every bill.issued message.
type consumerService struct {
	subscriber   message.Subscriber
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:   subscriber,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
		logger:       logger,
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

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.BillIssuedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("RECEIPT", "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // invalid payloads never become valid
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	bill, err := uow.BillRepository().FindOne(ctx, specification.ByID{ID: payload.BillId})
	if err != nil {
		cs.logger.Error("RECEIPT", "Failed to load bill", map[string]interface{}{
			"bill_id": payload.BillId.String(),
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}
	if bill == nil {
		cs.logger.Warn("RECEIPT", "Bill not found", map[string]interface{}{
			"bill_id": payload.BillId.String(),
		})
		msg.Ack()
		return
	}

	receipt := mailer.Receipt{
		BillId:      bill.Id.String(),
		PlanName:    bill.PlanName,
		Lines:       make([]mailer.ReceiptLine, 0, len(bill.Features)+1),
		Subtotal:    bill.Subtotal.StringFixed(2),
		Tax:         bill.Tax.StringFixed(2),
		Total:       bill.Total.StringFixed(2),
		Currency:    bill.Currency,
		PaymentLink: payload.PaymentLink,
	}
	receipt.Lines = append(receipt.Lines, mailer.ReceiptLine{
		Name:   bill.PlanName + " plan",
		Amount: bill.PlanRate.StringFixed(2),
	})
	for _, f := range bill.Features {
		receipt.Lines = append(receipt.Lines, mailer.ReceiptLine{Name: f.Name, Amount: f.Rate.StringFixed(2)})
	}

	to := payload.Email
	if to == "" {
		to = bill.Email
	}
	if err := cs.emailService.SendReceipt(to, receipt); err != nil {
		// SMTP failures are not retried in-process; the bill stays visible under /bills.
		cs.logger.Error("RECEIPT", "Failed to send receipt", map[string]interface{}{
			"bill_id": bill.Id.String(),
			"error":   err.Error(),
		})
		msg.Ack()
		return
	}

	cs.logger.Info("RECEIPT", "Receipt sent", map[string]interface{}{
		"bill_id": bill.Id.String(),
	})
	msg.Ack()
}
