package repository

import (
	"context"
	"time"

	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultReceiptsTableName = "receipts"
	receiptsPaymentIDIndex   = "payment_id-index"
)

type receiptItem struct {
	ID        string   `dynamodbav:"id"`
	PaymentID string   `dynamodbav:"payment_id"`
	BookingID string   `dynamodbav:"booking_id,omitempty"`
	Strategy  string   `dynamodbav:"strategy"`
	InvoiceID string   `dynamodbav:"invoice_id,omitempty"`
	SentTo    []string `dynamodbav:"sent_to,omitempty"`
	SentAt    string   `dynamodbav:"sent_at"`
}

// ReceiptDynamoRepository persists the receipt dispatch log in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: payment_id-index (PK: payment_id)

type ReceiptDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IReceiptRepository = (*ReceiptDynamoRepository)(nil)

func NewReceiptDynamoRepository(ddb *dynamodb.Client) *ReceiptDynamoRepository {
	return &ReceiptDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("RECEIPTS_TABLE", defaultReceiptsTableName),
	}
}

func (r *ReceiptDynamoRepository) Create(ctx context.Context, rec entities.ReceiptRecord) (entities.ReceiptRecord, error) {
	av, err := attributevalue.MarshalMap(toReceiptItem(rec))
	if err != nil {
		return entities.ReceiptRecord{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.ReceiptRecord{}, err
	}
	return rec, nil
}

func (r *ReceiptDynamoRepository) ListByPaymentID(ctx context.Context, paymentID string) ([]entities.ReceiptRecord, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(receiptsPaymentIDIndex),
		KeyConditionExpression: aws.String("payment_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: paymentID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.ReceiptRecord, 0, len(out.Items))
	for _, raw := range out.Items {
		var it receiptItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromReceiptItem(it))
	}
	return items, nil
}

func toReceiptItem(rec entities.ReceiptRecord) receiptItem {
	return receiptItem{
		ID:        rec.ID,
		PaymentID: rec.PaymentID,
		BookingID: rec.BookingID,
		Strategy:  string(rec.Strategy),
		InvoiceID: rec.InvoiceID,
		SentTo:    rec.SentTo,
		SentAt:    rec.SentAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromReceiptItem(it receiptItem) entities.ReceiptRecord {
	sentAt, _ := time.Parse(time.RFC3339Nano, it.SentAt)
	sentTo := it.SentTo
	if sentTo == nil {
		sentTo = []string{}
	}
	return entities.ReceiptRecord{
		ID:        it.ID,
		PaymentID: it.PaymentID,
		BookingID: it.BookingID,
		Strategy:  entities.ReceiptStrategy(it.Strategy),
		InvoiceID: it.InvoiceID,
		SentTo:    sentTo,
		SentAt:    sentAt,
	}
}
