package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	items  map[string]map[string]types.AttributeValue
	puts   []*dynamodb.PutItemInput
	getErr error
	putErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: map[string]map[string]types.AttributeValue{}}
}

func itemKey(m map[string]types.AttributeValue) string {
	pk := m["PK"].(*types.AttributeValueMemberS).Value
	sk := m["SK"].(*types.AttributeValueMemberS).Value
	return pk + "|" + sk
}

func (f *fakeClient) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &dynamodb.GetItemOutput{Item: f.items[itemKey(in.Key)]}, nil
}

func (f *fakeClient) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.puts = append(f.puts, in)
	f.items[itemKey(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func TestSlotStorage_SaveLoad(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	s := NewSlotStorage(client, "journeys", nil)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	_, found, err := s.Load(ctx, "journey-store")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Save(ctx, "journey-store", []byte(`{"journeys":[]}`)))
	require.Len(t, client.puts, 1)

	put := client.puts[0]
	assert.Equal(t, "journeys", aws.ToString(put.TableName))
	assert.Equal(t, "SLOT#journey-store", put.Item["PK"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "SNAPSHOT", put.Item["SK"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "2024-05-01T12:00:00Z", put.Item["UpdatedAt"].(*types.AttributeValueMemberS).Value)

	got, found, err := s.Load(ctx, "journey-store")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"journeys":[]}`, string(got))
}

func TestSlotStorage_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("throttled")

	client := newFakeClient()
	client.getErr = boom
	client.putErr = boom
	s := NewSlotStorage(client, "journeys", nil)

	_, _, err := s.Load(ctx, "ui-store")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Save(ctx, "ui-store", []byte("{}")), boom)
}
