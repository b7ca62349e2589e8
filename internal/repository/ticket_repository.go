package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/travel-support-desk/internal/domain"
)

// ErrNotFound is returned when no ticket matches the requested id.
var ErrNotFound = errors.New("ticket not found")

// TicketRepository encapsulates ticket persistence. It is the only writer of
// ticket records; status is the only field that changes after Create.
type TicketRepository interface {
	// Create assigns ID, CreatedAt and UpdatedAt and persists the ticket.
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	// ListAll returns every ticket, newest first.
	ListAll(ctx context.Context) ([]domain.Ticket, error)
	// UpdateStatus sets the status and refreshes UpdatedAt in one atomic write.
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the Postgres-backed repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, name, email, reference, category, description, status, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (id, name, email, reference, category, description, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at, updated_at`
	id := uuid.NewString()
	if err := r.pool.QueryRow(ctx, query,
		id,
		ticket.Name,
		ticket.Email,
		ticket.Reference,
		ticket.Category,
		ticket.Description,
		ticket.Status,
	).Scan(&ticket.CreatedAt, &ticket.UpdatedAt); err != nil {
		return err
	}
	ticket.ID = id
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if !isUUID(id) {
		return nil, ErrNotFound
	}
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	return scanSingle(r.pool.QueryRow(ctx, query, id))
}

func (r *ticketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	if !isUUID(id) {
		return nil, ErrNotFound
	}
	// GREATEST keeps updated_at monotonic even if the server clock steps back.
	query := `
        UPDATE tickets SET status=$1, updated_at=GREATEST(NOW(), updated_at)
        WHERE id=$2
        RETURNING ` + ticketColumns
	return scanSingle(r.pool.QueryRow(ctx, query, status, id))
}

// isUUID guards the uuid column from malformed ids, which would otherwise
// surface as a driver error instead of a miss.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func scanSingle(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := scanTicket(row, &ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func scanTicket(row pgx.Row, ticket *domain.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.Name,
		&ticket.Email,
		&ticket.Reference,
		&ticket.Category,
		&ticket.Description,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	result := []domain.Ticket{}
	for rows.Next() {
		var ticket domain.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
