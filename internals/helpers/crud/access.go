// Package crud is the generic entity access layer: one function per
// operation, each returning the {data, error, success} envelope and
// invalidating dependent routes after a successful mutation.
package crud

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	helper "ecole_backend/internals/helpers"
)

type Scope = func(*gorm.DB) *gorm.DB

type Invalidator interface {
	Invalidate(entity string) []string
}

type Config[M any] struct {
	Entity   string   // revalidation key (table name)
	Keys     []string // primary key columns, in key order
	KeyOf    func(*M) []any
	Order    any // string or clause.OrderByColumn, see Asc/Desc
	Preloads []string

	// French wording, e.g. NotFound "Élève non trouvé.",
	// Singular "de l'élève", Plural "des élèves".
	NotFound string
	Singular string
	Plural   string
}

type Access[M any] struct {
	db  *gorm.DB
	cfg Config[M]
	inv Invalidator
}

func New[M any](db *gorm.DB, cfg Config[M], inv Invalidator) *Access[M] {
	return &Access[M]{db: db, cfg: cfg, inv: inv}
}

// Asc and Desc order on a column of the queried table, qualified so joins
// cannot make it ambiguous.
func Asc(col string) clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: col}}
}

func Desc(col string) clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: col}, Desc: true}
}

func (a *Access[M]) DB() *gorm.DB { return a.db }

func (a *Access[M]) Entity() string { return a.cfg.Entity }

func (a *Access[M]) base(ctx context.Context) *gorm.DB {
	q := a.db.WithContext(ctx).Model(new(M))
	for _, p := range a.cfg.Preloads {
		q = q.Preload(p)
	}
	return q
}

func (a *Access[M]) whereKey(q *gorm.DB, key []any) (*gorm.DB, error) {
	if len(key) != len(a.cfg.Keys) {
		return nil, fmt.Errorf("clé invalide : %d valeur(s) attendue(s), %d reçue(s)", len(a.cfg.Keys), len(key))
	}
	for i, col := range a.cfg.Keys {
		q = q.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: col},
			Value:  key[i],
		})
	}
	return q, nil
}

func (a *Access[M]) invalidate() {
	if a.inv != nil && a.cfg.Entity != "" {
		a.inv.Invalidate(a.cfg.Entity)
	}
}

/* ============================================
   Reads
============================================ */

func (a *Access[M]) List(ctx context.Context, scopes ...Scope) (res helper.Result[[]M]) {
	op := "la récupération " + a.cfg.Plural
	defer helper.Guard(&res, op)

	rows := make([]M, 0)
	q := a.base(ctx).Scopes(scopes...)
	if a.cfg.Order != nil {
		q = q.Order(a.cfg.Order)
	}
	if err := q.Find(&rows).Error; err != nil {
		return helper.FromError[[]M](op, a.cfg.NotFound, err)
	}
	return helper.Ok(rows)
}

func (a *Access[M]) Get(ctx context.Context, key ...any) (res helper.Result[M]) {
	op := "la récupération " + a.cfg.Singular
	defer helper.Guard(&res, op)

	q, err := a.whereKey(a.base(ctx), key)
	if err != nil {
		return helper.Fail[M](helper.KindValidation, err.Error())
	}
	var m M
	if err := q.Take(&m).Error; err != nil {
		return helper.FromError[M](op, a.cfg.NotFound, err)
	}
	return helper.Ok(m)
}

// First returns the first row matching scopes, or the not-found envelope.
func (a *Access[M]) First(ctx context.Context, scopes ...Scope) (res helper.Result[M]) {
	op := "la récupération " + a.cfg.Singular
	defer helper.Guard(&res, op)

	var m M
	q := a.base(ctx).Scopes(scopes...)
	if a.cfg.Order != nil {
		q = q.Order(a.cfg.Order)
	}
	if err := q.Take(&m).Error; err != nil {
		return helper.FromError[M](op, a.cfg.NotFound, err)
	}
	return helper.Ok(m)
}

func (a *Access[M]) Count(ctx context.Context, scopes ...Scope) (res helper.Result[int64]) {
	op := "le comptage " + a.cfg.Plural
	defer helper.Guard(&res, op)

	var n int64
	if err := a.db.WithContext(ctx).Model(new(M)).Scopes(scopes...).Count(&n).Error; err != nil {
		return helper.FromError[int64](op, a.cfg.NotFound, err)
	}
	return helper.Ok(n)
}

// Sum aggregates column on the database side.
func (a *Access[M]) Sum(ctx context.Context, column string, scopes ...Scope) (res helper.Result[float64]) {
	op := "le calcul du total " + a.cfg.Plural
	defer helper.Guard(&res, op)

	var total float64
	err := a.db.WithContext(ctx).Model(new(M)).Scopes(scopes...).
		Select(fmt.Sprintf("COALESCE(SUM(%s), 0)", column)).
		Scan(&total).Error
	if err != nil {
		return helper.FromError[float64](op, a.cfg.NotFound, err)
	}
	return helper.Ok(total)
}

/* ============================================
   Mutations
============================================ */

func (a *Access[M]) Create(ctx context.Context, m *M) (res helper.Result[M]) {
	op := "l'ajout " + a.cfg.Singular
	defer helper.Guard(&res, op)

	if err := a.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return helper.FromError[M](op, a.cfg.NotFound, err)
	}
	a.invalidate()

	if a.cfg.KeyOf == nil {
		return helper.Ok(*m)
	}
	// re-read so the caller gets generated columns and joined relations
	if fresh := a.Get(ctx, a.cfg.KeyOf(m)...); fresh.Success {
		return fresh
	}
	return helper.Ok(*m)
}

// Update writes only the columns present in patch, then re-reads the row.
// An empty patch is a plain read.
func (a *Access[M]) Update(ctx context.Context, patch map[string]any, key ...any) (res helper.Result[M]) {
	op := "la mise à jour " + a.cfg.Singular
	defer helper.Guard(&res, op)

	if len(patch) > 0 {
		q, err := a.whereKey(a.db.WithContext(ctx).Model(new(M)), key)
		if err != nil {
			return helper.Fail[M](helper.KindValidation, err.Error())
		}
		tx := q.Updates(patch)
		if tx.Error != nil {
			return helper.FromError[M](op, a.cfg.NotFound, tx.Error)
		}
		if tx.RowsAffected == 0 {
			return helper.NotFound[M](a.cfg.NotFound)
		}
		a.invalidate()
	}
	return a.Get(ctx, key...)
}

func (a *Access[M]) Delete(ctx context.Context, key ...any) (res helper.Result[struct{}]) {
	op := "la suppression " + a.cfg.Singular
	defer helper.Guard(&res, op)

	q, err := a.whereKey(a.db.WithContext(ctx), key)
	if err != nil {
		return helper.Fail[struct{}](helper.KindValidation, err.Error())
	}
	tx := q.Delete(new(M))
	if tx.Error != nil {
		return helper.FromError[struct{}](op, a.cfg.NotFound, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return helper.NotFound[struct{}](a.cfg.NotFound)
	}
	a.invalidate()
	return helper.Ok(struct{}{})
}
