package bunrepo

import (
	"strconv"

	"github.com/goliatone/go-linklist/pkg/query"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

func withID(id int64) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.id = ?", id)
	}
}

func withColumn(column, value string) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.? = ?", bun.Ident(column), value)
	}
}

// withPredicate applies each clause as a placeholder bound membership test so
// values never reach the SQL text unescaped.
func withPredicate(p query.Predicate) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if p.IsEmptyResult() {
			return q.Where("1 = 0")
		}
		for _, clause := range p.Clauses() {
			if clause.Field.Numeric() {
				ids := make([]int64, len(clause.Values))
				for i, value := range clause.Values {
					ids[i], _ = strconv.ParseInt(value, 10, 64)
				}
				q = q.Where("?TableAlias.? IN (?)", bun.Ident(string(clause.Field)), bun.In(ids))
				continue
			}
			q = q.Where("?TableAlias.? IN (?)", bun.Ident(string(clause.Field)), bun.In(clause.Values))
		}
		return q
	}
}

func withSort(s query.Sort) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if s.Random {
			return q.OrderExpr("RANDOM()")
		}
		for _, order := range s.Orders {
			if order.Desc {
				q = q.OrderExpr("?TableAlias.? DESC", bun.Ident(order.Column))
				continue
			}
			q = q.OrderExpr("?TableAlias.? ASC", bun.Ident(order.Column))
		}
		return q.OrderExpr("?TableAlias.id ASC")
	}
}
