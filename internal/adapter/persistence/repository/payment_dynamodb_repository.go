package repository

import (
	"context"
	"errors"
	"time"

	"marketindex/internal/domain/entities"
	"marketindex/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultPaymentsTableName = "payments"

type paymentItem struct {
	OrderID          string  `dynamodbav:"order_id"`
	Amount           float64 `dynamodbav:"amount"`
	Currency         string  `dynamodbav:"currency"`
	CustomerEmail    string  `dynamodbav:"customer_email"`
	Status           string  `dynamodbav:"status"`
	PaymentSessionID string  `dynamodbav:"payment_session_id,omitempty"`
	CreatedAt        string  `dynamodbav:"created_at"`
	UpdatedAt        string  `dynamodbav:"updated_at"`
}

// PaymentDynamoRepository persists PaymentRecord entities in DynamoDB.
//
// Table requirements:
//   - PK: order_id (string)
//
// Updates are conditional on the record existing; webhook reconciliation relies on
// that to surface RecordNotFound instead of upserting.

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) {
	it := toPaymentItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.PaymentRecord{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#oid)"),
		ExpressionAttributeNames: map[string]string{
			"#oid": "order_id",
		},
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByOrderID(ctx context.Context, orderID string) (entities.PaymentRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentRecord{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) UpdateStatus(ctx context.Context, orderID string, status entities.PaymentStatus, paymentSessionID string, updatedAt time.Time) (entities.PaymentRecord, error) {
	update := "SET #status = :status, #updated = :updated"
	names := map[string]string{
		"#oid":     "order_id",
		"#status":  "status",
		"#updated": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":status":  &types.AttributeValueMemberS{Value: string(status)},
		":updated": &types.AttributeValueMemberS{Value: updatedAt.UTC().Format(time.RFC3339Nano)},
	}
	if paymentSessionID != "" {
		update += ", #psid = :psid"
		names["#psid"] = "payment_session_id"
		values[":psid"] = &types.AttributeValueMemberS{Value: paymentSessionID}
	}

	return r.updateItem(ctx, orderID, update, names, values)
}

func (r *PaymentDynamoRepository) UpdateSessionID(ctx context.Context, orderID, paymentSessionID string, updatedAt time.Time) (entities.PaymentRecord, error) {
	return r.updateItem(ctx, orderID,
		"SET #psid = :psid, #updated = :updated",
		map[string]string{
			"#oid":     "order_id",
			"#psid":    "payment_session_id",
			"#updated": "updated_at",
		},
		map[string]types.AttributeValue{
			":psid":    &types.AttributeValueMemberS{Value: paymentSessionID},
			":updated": &types.AttributeValueMemberS{Value: updatedAt.UTC().Format(time.RFC3339Nano)},
		},
	)
}

func (r *PaymentDynamoRepository) updateItem(ctx context.Context, orderID, update string, names map[string]string, values map[string]types.AttributeValue) (entities.PaymentRecord, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression:          aws.String(update),
		ConditionExpression:       aws.String("attribute_exists(#oid)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return entities.PaymentRecord{}, interfaces.ErrRecordNotFound
		}
		return entities.PaymentRecord{}, err
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentItem(it), nil
}

func toPaymentItem(p entities.PaymentRecord) paymentItem {
	return paymentItem{
		OrderID:          p.OrderID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		CustomerEmail:    p.CustomerEmail,
		Status:           string(p.Status),
		PaymentSessionID: p.PaymentSessionID,
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:        p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentItem(it paymentItem) entities.PaymentRecord {
	created, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updated, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.PaymentRecord{
		OrderID:          it.OrderID,
		Amount:           it.Amount,
		Currency:         it.Currency,
		CustomerEmail:    it.CustomerEmail,
		Status:           entities.PaymentStatus(it.Status),
		PaymentSessionID: it.PaymentSessionID,
		CreatedAt:        created,
		UpdatedAt:        updated,
	}
}
