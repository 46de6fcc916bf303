package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-bridal/app/entity"
)

type InquiryRepository struct {
	db DBTX
}

func NewInquiryRepository(db DBTX) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) Create(ctx context.Context, inquiry *entity.Inquiry) error {
	query := `
		INSERT INTO inquiries (id, plan_id, provider_id, user_id, name, email, phone, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		inquiry.ID,
		inquiry.PlanID,
		inquiry.ProviderID,
		nullableStringValue(inquiry.UserID),
		inquiry.Name,
		inquiry.Email,
		nullableStringValue(inquiry.Phone),
		inquiry.Message,
		inquiry.CreatedAt,
	)
	return err
}

// ListByProvider returns the provider's inquiries newest first, each with
// the title of the plan it was sent about.
func (r *InquiryRepository) ListByProvider(ctx context.Context, providerID string) ([]*entity.Inquiry, error) {
	query := `
		SELECT i.id, i.plan_id, i.provider_id, i.user_id, i.name, i.email, i.phone, i.message, i.created_at, p.title
		FROM inquiries i
		JOIN plans p ON p.id = i.plan_id
		WHERE i.provider_id = ?
		ORDER BY i.created_at DESC, i.id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Inquiry, 0)
	for rows.Next() {
		item := &entity.Inquiry{}
		if err := scanInquiry(rows, item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanInquiry(scanner rowScanner, item *entity.Inquiry) error {
	var userID sql.NullString
	var phone sql.NullString

	err := scanner.Scan(
		&item.ID,
		&item.PlanID,
		&item.ProviderID,
		&userID,
		&item.Name,
		&item.Email,
		&phone,
		&item.Message,
		&item.CreatedAt,
		&item.PlanTitle,
	)
	if err != nil {
		return err
	}

	item.UserID = stringPtrFromNull(userID)
	item.Phone = stringPtrFromNull(phone)
	return nil
}
