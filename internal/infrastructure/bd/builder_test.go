package db

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/pkg/types"
)

var auditColumns = map[string]string{"action": "action", "resource": "resource", "created_at": "created_at"}

func TestApplyListParams(t *testing.T) {
	filter := types.Filter{
		Filter:         map[string]interface{}{"action": "create,update", "unknown": "x"},
		Sort:           map[string]string{"created_at": "desc", "password": "asc"},
		Limit:          10,
		Offset:         20,
		WithPagination: true,
	}

	b := ApplyListParams(sq.Select("id").From("audit_log").PlaceholderFormat(sq.Dollar), filter, auditColumns)
	query, args, err := b.ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM audit_log WHERE action IN ($1,$2) ORDER BY created_at DESC LIMIT 10 OFFSET 20", query)
	assert.Equal(t, []interface{}{"create", "update"}, args)
}

func TestApplySearch(t *testing.T) {
	b := ApplySearch(sq.Select("id").From("audit_log").PlaceholderFormat(sq.Dollar), "countr", "resource", "user_key")
	query, args, err := b.ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM audit_log WHERE (resource ILIKE $1 OR user_key ILIKE $2)", query)
	assert.Equal(t, []interface{}{"%countr%", "%countr%"}, args)
}

func TestApplySearch_Empty(t *testing.T) {
	query, _, err := ApplySearch(sq.Select("id").From("audit_log"), "", "resource").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM audit_log", query)
}
