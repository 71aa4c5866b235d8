package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultBookingsTableName = "bookings"

type bookingItem struct {
	ID                 string `dynamodbav:"id"`
	Amount             string `dynamodbav:"amount"`
	Currency           string `dynamodbav:"currency"`
	Status             string `dynamodbav:"status"`
	PaymentID          string `dynamodbav:"payment_id,omitempty"`
	ProviderEmail      string `dynamodbav:"provider_email"`
	PayerEmail         string `dynamodbav:"payer_email,omitempty"`
	ServiceDescription string `dynamodbav:"service_description,omitempty"`
	ReceiptSent        bool   `dynamodbav:"receipt_sent"`
	ReceiptSentAt      string `dynamodbav:"receipt_sent_at,omitempty"`
	CreatedAt          string `dynamodbav:"created_at"`
	UpdatedAt          string `dynamodbav:"updated_at"`
}

// BookingDynamoRepository persists Booking entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - Stream: NEW_AND_OLD_IMAGES (read by BookingStreamListener)

type BookingDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IBookingRepository = (*BookingDynamoRepository)(nil)

func NewBookingDynamoRepository(ddb *dynamodb.Client) *BookingDynamoRepository {
	return &BookingDynamoRepository{
		ddb:       ddb,
		tableName: BookingsTableName(),
	}
}

// BookingsTableName resolves the bookings table from BOOKINGS_TABLE.
func BookingsTableName() string {
	return getenvDefault("BOOKINGS_TABLE", defaultBookingsTableName)
}

func (r *BookingDynamoRepository) Create(ctx context.Context, b entities.Booking) (entities.Booking, error) {
	av, err := attributevalue.MarshalMap(toBookingItem(b))
	if err != nil {
		return entities.Booking{}, err
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
		return entities.Booking{}, err
	}
	return b, nil
}

func (r *BookingDynamoRepository) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Booking{}, err
	}
	if len(out.Item) == 0 {
		return entities.Booking{}, nil
	}
	return BookingFromItem(out.Item)
}

// UpdateStatus only applies when the stored status still equals from.
func (r *BookingDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to entities.BookingStatus) (entities.Booking, error) {
	return r.update(ctx, id, "#status = :from", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(to)},
			":from":       &types.AttributeValueMemberS{Value: string(from)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *BookingDynamoRepository) AttachPayment(ctx context.Context, id, paymentID string) (entities.Booking, error) {
	return r.update(ctx, id, "", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #payment_id = :payment_id, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":payment_id": &types.AttributeValueMemberS{Value: paymentID},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#payment_id": "payment_id",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *BookingDynamoRepository) MarkReceiptSent(ctx context.Context, id string, sentAt time.Time) (entities.Booking, error) {
	return r.update(ctx, id, "", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #receipt_sent = :receipt_sent, #receipt_sent_at = :receipt_sent_at, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":receipt_sent":    &types.AttributeValueMemberBOOL{Value: true},
			":receipt_sent_at": &types.AttributeValueMemberS{Value: sentAt.UTC().Format(time.RFC3339Nano)},
			":updated_at":      &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#receipt_sent":    "receipt_sent",
			"#receipt_sent_at": "receipt_sent_at",
			"#updated_at":      "updated_at",
		}
		return expr, vals, names
	})
}

// update runs a conditional UpdateItem. A failed condition yields a zero
// Booking and no error.
func (r *BookingDynamoRepository) update(
	ctx context.Context,
	id string,
	extraCondition string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Booking, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	condition := "attribute_exists(#id)"
	if extraCondition != "" {
		condition += " AND " + extraCondition
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(condition),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Booking{}, nil
		}
		return entities.Booking{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Booking{}, nil
	}
	return BookingFromItem(out.Attributes)
}

// BookingFromItem decodes a bookings table item.
func BookingFromItem(item map[string]types.AttributeValue) (entities.Booking, error) {
	var it bookingItem
	if err := attributevalue.UnmarshalMap(item, &it); err != nil {
		return entities.Booking{}, err
	}
	return fromBookingItem(it), nil
}

func toBookingItem(b entities.Booking) bookingItem {
	it := bookingItem{
		ID:                 b.ID,
		Amount:             floatToString(b.Amount),
		Currency:           b.Currency,
		Status:             string(b.Status),
		PaymentID:          b.PaymentID,
		ProviderEmail:      b.ProviderEmail,
		PayerEmail:         b.PayerEmail,
		ServiceDescription: b.ServiceDescription,
		ReceiptSent:        b.ReceiptSent,
		CreatedAt:          b.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:          b.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if b.ReceiptSentAt != nil {
		it.ReceiptSentAt = b.ReceiptSentAt.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromBookingItem(it bookingItem) entities.Booking {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	amount, _ := strconv.ParseFloat(it.Amount, 64)

	b := entities.Booking{
		ID:                 it.ID,
		Amount:             amount,
		Currency:           it.Currency,
		Status:             entities.BookingStatus(it.Status),
		PaymentID:          it.PaymentID,
		ProviderEmail:      it.ProviderEmail,
		PayerEmail:         it.PayerEmail,
		ServiceDescription: it.ServiceDescription,
		ReceiptSent:        it.ReceiptSent,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
	}
	if sentAt, err := time.Parse(time.RFC3339Nano, it.ReceiptSentAt); err == nil {
		b.ReceiptSentAt = &sentAt
	}
	return b
}
