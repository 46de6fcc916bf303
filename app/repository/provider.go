package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibast-solutions/ms-go-bridal/app/entity"
)

var (
	ErrProviderAlreadyExists = errors.New("provider already exists")
	ErrProviderNotFound      = errors.New("provider not found")
)

const providerColumns = `id, email, password_hash, name, bio, profile_image, sns_links, created_at, updated_at`

type ProviderRepository struct {
	db DBTX
}

func NewProviderRepository(db DBTX) *ProviderRepository {
	return &ProviderRepository{db: db}
}

func (r *ProviderRepository) Create(ctx context.Context, provider *entity.Provider) error {
	links, err := marshalStringMap(provider.SNSLinks)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO providers (id, email, password_hash, name, bio, profile_image, sns_links, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		provider.ID,
		provider.Email,
		provider.PasswordHash,
		provider.Name,
		nullableStringValue(provider.Bio),
		nullableStringValue(provider.ProfileImage),
		links,
		provider.CreatedAt,
		provider.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrProviderAlreadyExists
		}
		return err
	}
	return nil
}

// Update writes the editable profile fields. Email and password are not
// touched.
func (r *ProviderRepository) Update(ctx context.Context, provider *entity.Provider) error {
	links, err := marshalStringMap(provider.SNSLinks)
	if err != nil {
		return err
	}

	query := `
		UPDATE providers
		SET name = ?, bio = ?, profile_image = ?, sns_links = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		provider.Name,
		nullableStringValue(provider.Bio),
		nullableStringValue(provider.ProfileImage),
		links,
		provider.UpdatedAt,
		provider.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProviderNotFound
	}
	return nil
}

func (r *ProviderRepository) FindByID(ctx context.Context, id string) (*entity.Provider, error) {
	return r.findOne(ctx, `SELECT `+providerColumns+` FROM providers WHERE id = ?`, id)
}

func (r *ProviderRepository) FindByEmail(ctx context.Context, email string) (*entity.Provider, error) {
	return r.findOne(ctx, `SELECT `+providerColumns+` FROM providers WHERE email = ?`, email)
}

// ListProfileImageKeys returns the profile image keys still referenced.
func (r *ProviderRepository) ListProfileImageKeys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT profile_image FROM providers WHERE profile_image IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *ProviderRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entity.Provider, error) {
	item := &entity.Provider{}
	err := scanProvider(r.db.QueryRowContext(ctx, query, args...), item)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func scanProvider(scanner rowScanner, item *entity.Provider) error {
	var bio sql.NullString
	var profileImage sql.NullString
	var links []byte

	err := scanner.Scan(
		&item.ID,
		&item.Email,
		&item.PasswordHash,
		&item.Name,
		&bio,
		&profileImage,
		&links,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return err
	}

	item.Bio = stringPtrFromNull(bio)
	item.ProfileImage = stringPtrFromNull(profileImage)
	item.SNSLinks, err = unmarshalStringMap(links)
	return err
}
