package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/Freeeeeet/agenda/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateClient - телефон уже зарегистрирован в предприятии
// или Telegram аккаунт уже привязан к другому клиенту
var ErrDuplicateClient = errors.New("client already exists")

type ClientRepository struct {
	*base.Repository
}

func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{Repository: base.NewRepository(pool)}
}

const clientColumns = `id, enterprise_id, name, phone, telegram_id, verified_at, created_at`

func scanClient(row pgx.Row) (*model.Client, error) {
	var c model.Client
	err := row.Scan(
		&c.ID,
		&c.EnterpriseID,
		&c.Name,
		&c.Phone,
		&c.TelegramID,
		&c.VerifiedAt,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create создаёт клиента
func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO clients (enterprise_id, name, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.DB().QueryRow(ctx, query, client.EnterpriseID, client.Name, client.Phone).
		Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrDuplicateClient
		}
		return fmt.Errorf("create client: %w", err)
	}

	return nil
}

// GetByID получает клиента по ID
func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	client, err := scanClient(r.DB().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by id: %w", err)
	}

	return client, nil
}

// GetByTelegramID получает клиента привязанного к Telegram аккаунту
func (r *ClientRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE telegram_id = $1`

	client, err := scanClient(r.DB().QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by telegram id: %w", err)
	}

	return client, nil
}

// MarkVerified отмечает телефон подтверждённым и, если передан, привязывает Telegram
func (r *ClientRepository) MarkVerified(ctx context.Context, id int64, verifiedAt time.Time, telegramID *int64) error {
	query := `
		UPDATE clients
		SET verified_at = $1,
		    telegram_id = COALESCE($2, telegram_id)
		WHERE id = $3
	`

	affected, err := r.ExecAffected(ctx, query, verifiedAt, telegramID, id)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrDuplicateClient
		}
		return fmt.Errorf("mark client verified: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("client not found")
	}

	return nil
}
