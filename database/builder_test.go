package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyWheres(t *testing.T) {
	wheres := []*WhereClause{
		{Column: "category", Operator: "=", Value: "tumblers"},
		{IsRaw: true, RawSQL: "? = ANY (tags)", RawArgs: []any{"gifts"}},
	}

	var args []any
	conds := applyWheres([]string{}, wheres, func(q []string, cond string, a ...any) []string {
		args = append(args, a...)
		return append(q, cond)
	})

	assert.Equal(t, []string{"category = ?", "? = ANY (tags)"}, conds)
	assert.Equal(t, []any{"tumblers", "gifts"}, args)
}

func TestQueryBuilderAccumulatesClauses(t *testing.T) {
	q := Query[struct{}](nil).
		Where("id", 7).
		WhereRaw("name ILIKE ?", "%mug%").
		OrderBy("created_at", DESC).
		Limit(12).
		Offset(24)

	assert.Len(t, q.wheres, 2)
	assert.Equal(t, "created_at", q.orders[0].Column)
	assert.Equal(t, string(DESC), q.orders[0].Direction)
	assert.Equal(t, 12, *q.limitVal)
	assert.Equal(t, 24, *q.offsetVal)
}
