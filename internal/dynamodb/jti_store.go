package dynamodb

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/flexprice/billing-engine/internal/config"
	"github.com/flexprice/billing-engine/internal/domain/jtiusage"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
)

// JtiStore is an alternative jtiusage.Repository backing: the jti unique
// index is a DynamoDB-shaped problem (conditional write + TTL), so this
// satisfies §4.A step 6 without a Postgres round trip when cfg.DynamoDB.InUse
// is set.
type JtiStore struct {
	client    *Client
	tableName string
	logger    *logger.Logger
}

func NewJtiStore(client *Client, cfg *config.Configuration, logger *logger.Logger) jtiusage.Repository {
	if client == nil {
		return nil
	}
	return &JtiStore{
		client:    client,
		tableName: cfg.DynamoDB.JtiTableName,
		logger:    logger,
	}
}

type jtiItem struct {
	Jti       string `dynamodbav:"jti"`
	ExpiresAt int64  `dynamodbav:"expires_at"`
}

// Insert performs a conditional PutItem guarded by attribute_not_exists(jti),
// the DynamoDB equivalent of a unique-index insert. The ExpiresAt attribute
// is the table's configured TTL key, so spent tokens age out on their own.
func (s *JtiStore) Insert(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	item, err := attributevalue.MarshalMap(jtiItem{Jti: jti, ExpiresAt: expiresAt.Unix()})
	if err != nil {
		return false, ierr.WithError(err).WithMessage("marshal jti item").Mark(ierr.ErrSystem)
	}

	_, err = s.client.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(jti)"),
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return false, nil
		}
		return false, ierr.WithError(err).WithMessage("put jti item").Mark(ierr.ErrSystem)
	}
	return true, nil
}
