// Package store provides the DynamoDB data access layer for items.
//
// The table is a flat collection keyed by the string attribute "id". Every
// operation touches a single key, except [Store.Scan] which reads the whole
// table following DynamoDB pagination.
//
// # Operations
//
//   - [Store.Get] reads one item by id
//   - [Store.Put] creates an item (fails if the id already exists)
//   - [Store.Update] applies a partial SET expression and returns the new item
//   - [Store.Delete] removes an item by id
//   - [Store.Scan] returns every item in the table
//
// # Configuration
//
// The table name comes from [Config]:
//
//	cfg := store.DefaultConfig()
//	cfg.TableName = os.Getenv("ITEMS_TABLE")
//
// # Errors
//
// The package defines domain-specific errors:
//
//   - [ErrNotFound] - item doesn't exist
//   - [ErrAlreadyExists] - item with id already exists
//
// There is no optimistic locking: concurrent updates to the same item are
// resolved by DynamoDB's single-key atomicity, last writer wins.
package store
