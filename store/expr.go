package store

import (
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/vinicius-dias23/roteiro3/item"
)

// updateExpr is a SET expression with its placeholder maps.
type updateExpr struct {
	expr   string
	names  map[string]string
	values map[string]types.AttributeValue
}

// buildUpdate builds the SET expression for a patch. Only fields present in
// the patch are assigned; updatedAt is always assigned.
func buildUpdate(patch item.Patch, updatedAt string) updateExpr {
	var setClauses []string
	u := updateExpr{
		names:  map[string]string{},
		values: map[string]types.AttributeValue{},
	}

	set := func(attr string, v types.AttributeValue) {
		u.names["#"+attr] = attr
		u.values[":"+attr] = v
		setClauses = append(setClauses, "#"+attr+" = :"+attr)
	}

	if patch.Name != nil {
		set("name", &types.AttributeValueMemberS{Value: *patch.Name})
	}
	if patch.Description != nil {
		set("description", &types.AttributeValueMemberS{Value: *patch.Description})
	}
	if patch.Price != nil {
		set("price", &types.AttributeValueMemberN{Value: strconv.FormatFloat(*patch.Price, 'f', -1, 64)})
	}

	// Always refresh updatedAt
	set("updatedAt", &types.AttributeValueMemberS{Value: updatedAt})

	u.expr = "SET " + strings.Join(setClauses, ", ")
	return u
}
