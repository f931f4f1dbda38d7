package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	pkgerrors "journeybuilder/pkg/errors"
)

const snapshotSK = "SNAPSHOT"

// API is the subset of the DynamoDB client used for slot snapshots
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// SlotStorage implements ports.StateStorage with one item per slot
type SlotStorage struct {
	client    API
	tableName string
	logger    *zap.Logger
	now       func() time.Time
}

// slotItem represents the DynamoDB item structure for a slot snapshot
type slotItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	Slot       string `dynamodbav:"Slot"`
	Payload    []byte `dynamodbav:"Payload"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
}

// NewSlotStorage creates a new SlotStorage
func NewSlotStorage(client API, tableName string, logger *zap.Logger) *SlotStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotStorage{
		client:    client,
		tableName: tableName,
		logger:    logger,
		now:       time.Now,
	}
}

func slotKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("SLOT#%s", key)},
		"SK": &types.AttributeValueMemberS{Value: snapshotSK},
	}
}

// Load fetches the snapshot stored for key
func (s *SlotStorage) Load(ctx context.Context, key string) ([]byte, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            slotKey(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, false, pkgerrors.NewStorageError("dynamodb", "get", key, err)
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}

	var item slotItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, false, pkgerrors.NewStorageError("dynamodb", "unmarshal", key, err)
	}
	return item.Payload, true, nil
}

// Save overwrites the snapshot stored for key
func (s *SlotStorage) Save(ctx context.Context, key string, data []byte) error {
	item := slotItem{
		PK:         fmt.Sprintf("SLOT#%s", key),
		SK:         snapshotSK,
		EntityType: "SLOT",
		Slot:       key,
		Payload:    data,
		UpdatedAt:  s.now().UTC().Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewStorageError("dynamodb", "marshal", key, err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	}); err != nil {
		return pkgerrors.NewStorageError("dynamodb", "put", key, err)
	}

	s.logger.Debug("Saved slot snapshot",
		zap.String("slot", key),
		zap.Int("bytes", len(data)),
	)
	return nil
}
