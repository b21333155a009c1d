package store_test

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/vinicius-dias23/roteiro3/item"
	"github.com/vinicius-dias23/roteiro3/store"
)

// --- Fake DynamoDB ---

// fakeDynamo is an in-memory table keyed by the "id" string attribute. It
// understands the condition and update expressions the store emits.
type fakeDynamo struct {
	mu       sync.Mutex
	rows     map[string]map[string]types.AttributeValue
	pageSize int
	err      error

	lastUpdate *dynamodb.UpdateItemInput
	scanCalls  int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{rows: map[string]map[string]types.AttributeValue{}, pageSize: 2}
}

func keyID(key map[string]types.AttributeValue) string {
	if v, ok := key["id"].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func copyRow(row map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[keyID(in.Key)]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: copyRow(row)}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	id := keyID(in.Item)
	if _, exists := f.rows[id]; exists && aws.ToString(in.ConditionExpression) == "attribute_not_exists(id)" {
		return nil, conditionFailed()
	}
	f.rows[id] = copyRow(in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUpdate = in
	if f.err != nil {
		return nil, f.err
	}
	id := keyID(in.Key)
	row, exists := f.rows[id]
	if !exists {
		if aws.ToString(in.ConditionExpression) == "attribute_exists(id)" {
			return nil, conditionFailed()
		}
		row = map[string]types.AttributeValue{"id": in.Key["id"]}
	}
	for placeholder, attr := range in.ExpressionAttributeNames {
		row[attr] = in.ExpressionAttributeValues[":"+placeholder[1:]]
	}
	f.rows[id] = row
	return &dynamodb.UpdateItemOutput{Attributes: copyRow(row)}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	id := keyID(in.Key)
	if _, exists := f.rows[id]; !exists && aws.ToString(in.ConditionExpression) == "attribute_exists(id)" {
		return nil, conditionFailed()
	}
	delete(f.rows, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scanCalls++
	if f.err != nil {
		return nil, f.err
	}

	ids := make([]string, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	start := 0
	if in.ExclusiveStartKey != nil {
		after := keyID(in.ExclusiveStartKey)
		start = sort.SearchStrings(ids, after) + 1
	}
	end := start + f.pageSize
	if end > len(ids) {
		end = len(ids)
	}

	out := &dynamodb.ScanOutput{}
	for _, id := range ids[start:end] {
		out.Items = append(out.Items, copyRow(f.rows[id]))
	}
	if end < len(ids) {
		out.LastEvaluatedKey = store.Key(ids[end-1])
	}
	return out, nil
}

func seed(t *testing.T, s *store.Store, items ...item.Item) {
	t.Helper()
	for _, it := range items {
		if err := s.Put(context.Background(), it); err != nil {
			t.Fatalf("seed %s: %v", it.ID, err)
		}
	}
}

func widget(id string) item.Item {
	return item.Item{
		ID:          id,
		Name:        "Widget " + id,
		Description: "desc " + id,
		Price:       9.99,
		CreatedAt:   "2025-01-01T00:00:00.000Z",
		UpdatedAt:   "2025-01-01T00:00:00.000Z",
	}
}

// --- Unit Tests ---

func TestDefaultConfig(t *testing.T) {
	cfg := store.DefaultConfig()

	if cfg.TableName != "items" {
		t.Errorf("expected TableName 'items', got %q", cfg.TableName)
	}
}

func TestNewStore(t *testing.T) {
	s := store.New(newFakeDynamo(), store.Config{})
	if s == nil {
		t.Fatal("expected non-nil Store")
	}
	if s.TableName() != store.DefaultTableName {
		t.Errorf("expected default table name, got %q", s.TableName())
	}
}

func TestKey(t *testing.T) {
	pk := store.Key("abc")
	if v, ok := pk["id"].(*types.AttributeValueMemberS); !ok || v.Value != "abc" {
		t.Errorf("expected id key 'abc', got %v", pk["id"])
	}
	if len(pk) != 1 {
		t.Errorf("expected single-attribute key, got %d attributes", len(pk))
	}
}

func TestPutAndGet(t *testing.T) {
	s := store.New(newFakeDynamo(), store.DefaultConfig())
	ctx := context.Background()
	want := widget("a")

	seed(t, s, want)

	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got != want {
		t.Errorf("expected %+v, got %+v", want, *got)
	}
}

func TestPut_AlreadyExists(t *testing.T) {
	s := store.New(newFakeDynamo(), store.DefaultConfig())
	seed(t, s, widget("a"))

	err := s.Put(context.Background(), widget("a"))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := store.New(newFakeDynamo(), store.DefaultConfig())

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_ClientError(t *testing.T) {
	fake := newFakeDynamo()
	fake.err = errors.New("throttled")
	s := store.New(fake, store.DefaultConfig())

	_, err := s.Get(context.Background(), "a")
	if err == nil || errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected client error, got %v", err)
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	fake := newFakeDynamo()
	s := store.New(fake, store.Config{TableName: "items-dev"})
	seed(t, s, widget("a"))

	price := 4.5
	got, err := s.Update(context.Background(), "a", item.Patch{Price: &price}, "2025-02-01T00:00:00.000Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Price != 4.5 {
		t.Errorf("expected price 4.5, got %v", got.Price)
	}
	if got.Name != "Widget a" || got.Description != "desc a" {
		t.Errorf("omitted fields changed: %+v", got)
	}
	if got.CreatedAt != "2025-01-01T00:00:00.000Z" {
		t.Errorf("createdAt changed: %q", got.CreatedAt)
	}
	if got.UpdatedAt != "2025-02-01T00:00:00.000Z" {
		t.Errorf("expected updatedAt refreshed, got %q", got.UpdatedAt)
	}

	in := fake.lastUpdate
	if aws.ToString(in.TableName) != "items-dev" {
		t.Errorf("expected table items-dev, got %q", aws.ToString(in.TableName))
	}
	if in.ReturnValues != types.ReturnValueAllNew {
		t.Errorf("expected ALL_NEW, got %q", in.ReturnValues)
	}
	if aws.ToString(in.ConditionExpression) != "attribute_exists(id)" {
		t.Errorf("unexpected condition %q", aws.ToString(in.ConditionExpression))
	}
}

func TestUpdate_NotFound(t *testing.T) {
	fake := newFakeDynamo()
	s := store.New(fake, store.DefaultConfig())

	name := "x"
	_, err := s.Update(context.Background(), "missing", item.Patch{Name: &name}, "ts")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, ok := fake.rows["missing"]; ok {
		t.Error("update must not create a row for a missing item")
	}
}

func TestDelete(t *testing.T) {
	s := store.New(newFakeDynamo(), store.DefaultConfig())
	ctx := context.Background()
	seed(t, s, widget("a"))

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Get(ctx, "a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, "a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestScan_FollowsPagination(t *testing.T) {
	fake := newFakeDynamo()
	s := store.New(fake, store.DefaultConfig())
	for i := 0; i < 5; i++ {
		seed(t, s, widget(strconv.Itoa(i)))
	}

	items, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}
	if fake.scanCalls != 3 {
		t.Errorf("expected 3 scan pages, got %d", fake.scanCalls)
	}
	seen := map[string]bool{}
	for _, it := range items {
		seen[it.ID] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 distinct ids, got %d", len(seen))
	}
}

func TestScan_EmptyTable(t *testing.T) {
	s := store.New(newFakeDynamo(), store.DefaultConfig())

	items, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", items)
	}
}

func TestErrors(t *testing.T) {
	errs := []error{store.ErrNotFound, store.ErrAlreadyExists}
	for _, err := range errs {
		if err.Error() == "" {
			t.Errorf("error %v has empty message", err)
		}
	}
	if errors.Is(store.ErrNotFound, store.ErrAlreadyExists) {
		t.Error("errors must be distinct")
	}
}
