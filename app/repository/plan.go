package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-bridal/app/entity"
	"github.com/vibast-solutions/ms-go-bridal/app/search"
)

var ErrPlanNotFound = errors.New("plan not found")

const planColumns = `
		p.id, p.provider_id, p.title, p.price, p.scale, p.location, p.purpose,
		p.date_range, p.images, p.summary_points, p.description,
		p.cta_type, p.cta_value, p.created_at, p.updated_at`

type PlanRepository struct {
	db DBTX
}

func NewPlanRepository(db DBTX) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, plan *entity.Plan) error {
	images, err := marshalStringList(plan.Images)
	if err != nil {
		return err
	}
	points, err := marshalStringList(plan.SummaryPoints)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO plans (
			id, provider_id, title, price, scale, location, purpose,
			date_range, images, summary_points, description,
			cta_type, cta_value, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	return runInTx(ctx, r.db, func(q DBTX) error {
		_, err := q.ExecContext(ctx, query,
			plan.ID,
			plan.ProviderID,
			plan.Title,
			plan.Price,
			plan.Scale,
			plan.Location,
			plan.Purpose,
			nullableStringValue(plan.DateRange),
			images,
			points,
			nullableStringValue(plan.Description),
			nullableStringValue(plan.CTAType),
			nullableStringValue(plan.CTAValue),
			plan.CreatedAt,
			plan.UpdatedAt,
		)
		if err != nil {
			return err
		}
		return replaceWorldViews(ctx, q, plan.ID, plan.WorldViews)
	})
}

// ImageEdit derives a plan's new image list from the current one, read
// under a row lock.
type ImageEdit func(current []string) ([]string, error)

// Update rewrites a plan owned by plan.ProviderID. The images column is only
// written when edit is non-nil, in which case plan.Images is set to its result.
func (r *PlanRepository) Update(ctx context.Context, plan *entity.Plan, edit ImageEdit) error {
	points, err := marshalStringList(plan.SummaryPoints)
	if err != nil {
		return err
	}

	query := `
		UPDATE plans
		SET title = ?, price = ?, scale = ?, location = ?, purpose = ?,
		    date_range = ?, summary_points = ?, description = ?,
		    cta_type = ?, cta_value = ?, updated_at = ?
		WHERE id = ? AND provider_id = ?
	`

	return runInTx(ctx, r.db, func(q DBTX) error {
		result, err := q.ExecContext(ctx, query,
			plan.Title,
			plan.Price,
			plan.Scale,
			plan.Location,
			plan.Purpose,
			nullableStringValue(plan.DateRange),
			points,
			nullableStringValue(plan.Description),
			nullableStringValue(plan.CTAType),
			nullableStringValue(plan.CTAValue),
			plan.UpdatedAt,
			plan.ID,
			plan.ProviderID,
		)
		if err != nil {
			return err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrPlanNotFound
		}

		if edit != nil {
			images, err := editImages(ctx, q, plan.ID, plan.ProviderID, plan.UpdatedAt, edit)
			if err != nil {
				return err
			}
			plan.Images = images
		}

		return replaceWorldViews(ctx, q, plan.ID, plan.WorldViews)
	})
}

// EditImages rewrites only the images column of a plan owned by providerID
// and returns the stored list.
func (r *PlanRepository) EditImages(ctx context.Context, id, providerID string, updatedAt time.Time, edit ImageEdit) ([]string, error) {
	var images []string
	err := runInTx(ctx, r.db, func(q DBTX) error {
		var err error
		images, err = editImages(ctx, q, id, providerID, updatedAt, edit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

func editImages(ctx context.Context, q DBTX, id, providerID string, updatedAt time.Time, edit ImageEdit) ([]string, error) {
	var raw []byte
	err := q.QueryRowContext(ctx,
		`SELECT images FROM plans WHERE id = ? AND provider_id = ? FOR UPDATE`,
		id, providerID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	current, err := unmarshalStringList(raw)
	if err != nil {
		return nil, err
	}
	next, err := edit(current)
	if err != nil {
		return nil, err
	}

	encoded, err := marshalStringList(next)
	if err != nil {
		return nil, err
	}
	if _, err := q.ExecContext(ctx,
		`UPDATE plans SET images = ?, updated_at = ? WHERE id = ? AND provider_id = ?`,
		encoded, updatedAt, id, providerID,
	); err != nil {
		return nil, err
	}
	if next == nil {
		next = []string{}
	}
	return next, nil
}

// Delete removes a plan owned by providerID. World views and favorites go
// with it through ON DELETE CASCADE.
func (r *PlanRepository) Delete(ctx context.Context, id, providerID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ? AND provider_id = ?`, id, providerID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepository) FindByID(ctx context.Context, id string) (*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans p WHERE p.id = ?`
	return r.findOne(ctx, query, id)
}

func (r *PlanRepository) FindByIDForProvider(ctx context.Context, id, providerID string) (*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans p WHERE p.id = ? AND p.provider_id = ?`
	return r.findOne(ctx, query, id, providerID)
}

func (r *PlanRepository) ListByProvider(ctx context.Context, providerID string) ([]*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans p WHERE p.provider_id = ? ORDER BY p.created_at DESC, p.id ASC`
	return r.listByQuery(ctx, query, providerID)
}

// ListFavoritedBy returns the user's favorite plans, most recently favorited first.
func (r *PlanRepository) ListFavoritedBy(ctx context.Context, userID string) ([]*entity.Plan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM favorites f
		JOIN plans p ON p.id = f.plan_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, p.id ASC
	`
	return r.listByQuery(ctx, query, userID)
}

// Search runs the repository-side predicates of f. The text query is left
// to the caller.
func (r *PlanRepository) Search(ctx context.Context, f search.Filter) ([]*entity.Plan, error) {
	query, args := buildSearchQuery(f)
	return r.listByQuery(ctx, query, args...)
}

// ListImageKeys returns every image object key referenced by any plan.
func (r *PlanRepository) ListImageKeys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT images FROM plans`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		images, err := unmarshalStringList(raw)
		if err != nil {
			return nil, err
		}
		keys = append(keys, images...)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func buildSearchQuery(f search.Filter) (string, []interface{}) {
	query := `SELECT ` + planColumns + ` FROM plans p`

	conditions := make([]string, 0, 7)
	args := make([]interface{}, 0, 7)
	if f.Price != nil {
		if f.Price.HasLower {
			conditions = append(conditions, "p.price > ?")
			args = append(args, f.Price.Lower)
		}
		if f.Price.HasUpper {
			conditions = append(conditions, "p.price <= ?")
			args = append(args, f.Price.Upper)
		}
	}
	if f.Scale != "" {
		conditions = append(conditions, "p.scale = ?")
		args = append(args, f.Scale)
	}
	if f.WorldView != "" {
		conditions = append(conditions, "EXISTS (SELECT 1 FROM plan_world_views w WHERE w.plan_id = p.id AND w.world_view = ?)")
		args = append(args, f.WorldView)
	}
	if f.Location != "" {
		conditions = append(conditions, "p.location = ?")
		args = append(args, f.Location)
	}
	if f.Purpose != "" {
		conditions = append(conditions, "p.purpose = ?")
		args = append(args, f.Purpose)
	}
	if f.DateContains != "" {
		conditions = append(conditions, "LOWER(p.date_range) LIKE ?")
		args = append(args, containsPattern(f.DateContains))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + orderClause(f.Sort)

	return query, args
}

func orderClause(s search.Sort) string {
	switch s {
	case search.SortPriceAsc:
		return "p.price ASC, p.created_at DESC, p.id ASC"
	case search.SortPriceDesc:
		return "p.price DESC, p.created_at DESC, p.id ASC"
	default:
		return "p.created_at DESC, p.id ASC"
	}
}

func (r *PlanRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entity.Plan, error) {
	item := &entity.Plan{}
	if err := scanPlan(r.db.QueryRowContext(ctx, query, args...), item); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	if err := r.attachWorldViews(ctx, []*entity.Plan{item}); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *PlanRepository) listByQuery(ctx context.Context, query string, args ...interface{}) ([]*entity.Plan, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Plan, 0)
	for rows.Next() {
		item := &entity.Plan{}
		if err := scanPlan(rows, item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachWorldViews(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PlanRepository) attachWorldViews(ctx context.Context, plans []*entity.Plan) error {
	if len(plans) == 0 {
		return nil
	}

	byID := make(map[string]*entity.Plan, len(plans))
	args := make([]interface{}, 0, len(plans))
	for _, plan := range plans {
		plan.WorldViews = make([]string, 0)
		byID[plan.ID] = plan
		args = append(args, plan.ID)
	}

	query := `
		SELECT plan_id, world_view
		FROM plan_world_views
		WHERE plan_id IN (` + placeholders(len(args)) + `)
		ORDER BY plan_id, position
	`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var planID, worldView string
		if err := rows.Scan(&planID, &worldView); err != nil {
			return err
		}
		if plan, ok := byID[planID]; ok {
			plan.WorldViews = append(plan.WorldViews, worldView)
		}
	}
	return rows.Err()
}

func replaceWorldViews(ctx context.Context, q DBTX, planID string, worldViews []string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM plan_world_views WHERE plan_id = ?`, planID); err != nil {
		return err
	}
	if len(worldViews) == 0 {
		return nil
	}

	values := make([]string, 0, len(worldViews))
	args := make([]interface{}, 0, len(worldViews)*3)
	for i, wv := range worldViews {
		values = append(values, "(?, ?, ?)")
		args = append(args, planID, wv, i)
	}
	query := `INSERT INTO plan_world_views (plan_id, world_view, position) VALUES ` + strings.Join(values, ", ")
	_, err := q.ExecContext(ctx, query, args...)
	return err
}

func scanPlan(scanner rowScanner, item *entity.Plan) error {
	var dateRange sql.NullString
	var description sql.NullString
	var ctaType sql.NullString
	var ctaValue sql.NullString
	var images []byte
	var points []byte

	err := scanner.Scan(
		&item.ID,
		&item.ProviderID,
		&item.Title,
		&item.Price,
		&item.Scale,
		&item.Location,
		&item.Purpose,
		&dateRange,
		&images,
		&points,
		&description,
		&ctaType,
		&ctaValue,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return err
	}

	item.DateRange = stringPtrFromNull(dateRange)
	item.Description = stringPtrFromNull(description)
	item.CTAType = stringPtrFromNull(ctaType)
	item.CTAValue = stringPtrFromNull(ctaValue)

	if item.Images, err = unmarshalStringList(images); err != nil {
		return err
	}
	if item.SummaryPoints, err = unmarshalStringList(points); err != nil {
		return err
	}
	return nil
}
