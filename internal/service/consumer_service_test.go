package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/pkg/logger"
	"ebook-studio-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent chan mailer.Receipt
	to   chan string
	err  error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan mailer.Receipt, 4), to: make(chan string, 4)}
}

func (m *fakeMailer) SendReceipt(toEmail string, receipt mailer.Receipt) error {
	m.to <- toEmail
	m.sent <- receipt
	return m.err
}

func acked(msg *message.Message) bool {
	select {
	case <-msg.Acked():
		return true
	case <-time.After(time.Second):
		return false
	}
}

func seedIssuedBill(store *fakeStore) *entity.AuthorBill {
	bill := &entity.AuthorBill{
		Id:       uuid.New(),
		OwnerId:  newOwner(),
		Email:    "stored@example.com",
		PlanName: "Pro",
		PlanRate: decimal.RequireFromString("29.99"),
		Features: []entity.BilledFeature{
			{FeatureId: uuid.New(), Name: "AI Outline", Rate: decimal.RequireFromString("9.99")},
		},
		Subtotal:  decimal.RequireFromString("39.98"),
		Tax:       decimal.RequireFromString("4.00"),
		Total:     decimal.RequireFromString("43.98"),
		Currency:  "USD",
		Status:    entity.BillStatusPending,
		IsActive:  true,
		CreatedAt: testNow,
	}
	store.addBill(bill)
	return bill
}

func TestReceiptConsumerSendsReceipt(t *testing.T) {
	store := newFakeStore()
	mail := newFakeMailer()
	bill := seedIssuedBill(store)
	cs := &consumerService{uowFactory: store, emailService: mail, logger: logger.NewNopLogger()}

	payload, err := json.Marshal(dto.BillIssuedMessage{BillId: bill.Id, Email: "author@example.com", PaymentLink: "https://pay"})
	require.NoError(t, err)
	msg := message.NewMessage(watermill.NewUUID(), payload)

	cs.processMessage(context.Background(), msg)

	require.True(t, acked(msg))
	assert.Equal(t, "author@example.com", <-mail.to)
	receipt := <-mail.sent
	assert.Equal(t, bill.Id.String(), receipt.BillId)
	assert.Equal(t, "43.98", receipt.Total)
	assert.Equal(t, "https://pay", receipt.PaymentLink)
	require.Len(t, receipt.Lines, 2)
	assert.Equal(t, "AI Outline", receipt.Lines[1].Name)
}

func TestReceiptConsumerAcksUnusableMessages(t *testing.T) {
	store := newFakeStore()
	mail := newFakeMailer()
	cs := &consumerService{uowFactory: store, emailService: mail, logger: logger.NewNopLogger()}

	bad := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	cs.processMessage(context.Background(), bad)
	assert.True(t, acked(bad))

	payload, _ := json.Marshal(dto.BillIssuedMessage{BillId: uuid.New()})
	missing := message.NewMessage(watermill.NewUUID(), payload)
	cs.processMessage(context.Background(), missing)
	assert.True(t, acked(missing))

	assert.Empty(t, mail.sent)
}

func TestReceiptConsumerOverGoChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newFakeStore()
	mail := newFakeMailer()
	bill := seedIssuedBill(store)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	cs := NewConsumerService(pubSub, "bill.issued", store, mail, logger.NewNopLogger())
	require.NoError(t, cs.Consume(ctx))

	publisher := NewPublisherService("bill.issued", pubSub)
	payload, _ := json.Marshal(dto.BillIssuedMessage{BillId: bill.Id})
	require.NoError(t, publisher.Publish(ctx, payload))

	select {
	case to := <-mail.to:
		assert.Equal(t, "stored@example.com", to)
	case <-time.After(2 * time.Second):
		t.Fatal("receipt was not sent")
	}
}
