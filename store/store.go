package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/vinicius-dias23/roteiro3/item"
)

// PK represents a DynamoDB primary key.
type PK map[string]types.AttributeValue

// Store provides DynamoDB operations on the items table.
type Store struct {
	client DynamoDBAPI
	config Config
}

// New creates a new Store instance.
func New(client DynamoDBAPI, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
	}
}

// TableName returns the table the store operates on.
func (s *Store) TableName() string {
	return s.config.TableName
}

// Key returns the primary key for an item id.
func Key(id string) PK {
	return PK{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

// Get retrieves an item by id, returning ErrNotFound if missing.
func (s *Store) Get(ctx context.Context, id string) (*item.Item, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.config.TableName),
		Key:       Key(id),
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}

	return unmarshalItem(result.Item)
}

// Put stores a new item. It fails with ErrAlreadyExists if the id is taken.
func (s *Store) Put(ctx context.Context, it item.Item) error {
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.config.TableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update applies the fields present in patch plus updatedAt as a single
// atomic SET and returns the item as stored afterwards. Absent fields are
// left untouched. It fails with ErrNotFound if the item doesn't exist.
func (s *Store) Update(ctx context.Context, id string, patch item.Patch, updatedAt string) (*item.Item, error) {
	u := buildUpdate(patch, updatedAt)

	result, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.config.TableName),
		Key:                       Key(id),
		UpdateExpression:          aws.String(u.expr),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  u.names,
		ExpressionAttributeValues: u.values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return unmarshalItem(result.Attributes)
}

// Delete removes an item by id. It fails with ErrNotFound if the item doesn't exist.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.config.TableName),
		Key:                 Key(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Scan returns every item in the table, in the order DynamoDB returns them.
func (s *Store) Scan(ctx context.Context) ([]item.Item, error) {
	items := []item.Item{}

	// Paginate through all results
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.config.TableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			it, err := unmarshalItem(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, *it)
		}
	}

	return items, nil
}

// unmarshalItem converts a DynamoDB item to an item.Item.
func unmarshalItem(raw map[string]types.AttributeValue) (*item.Item, error) {
	var it item.Item
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return &it, nil
}
