package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/numjklpp1/parts-management-pro/internal/models"
)

// PostgresStore keeps the ledger in Postgres for deployments that want
// durability without a spreadsheet. seq preserves append order so a
// fetch always replays the log in the order it was written.
type PostgresStore struct {
	DB *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) FetchRecords(ctx context.Context) ([]models.PartRecord, error) {
	query := `
		SELECT record_id, record_timestamp, category, name, specification, quantity, note
		FROM part_records
		ORDER BY seq ASC
	`
	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	defer rows.Close()

	var records []models.PartRecord
	for rows.Next() {
		var r models.PartRecord
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Category, &r.Name, &r.Specification, &r.Quantity, &r.Note); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *PostgresStore) AppendRecord(ctx context.Context, record models.PartRecord) error {
	query := `
		INSERT INTO part_records (record_id, record_timestamp, category, name, specification, quantity, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.DB.Exec(ctx, query,
		record.ID, record.Timestamp, record.Category, record.Name,
		record.Specification, record.Quantity, record.Note,
	)
	if err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// AppendBatch writes the whole batch in one transaction. This store is
// the one backend that can make a batch all-or-nothing, closing the
// partial-batch window the sequential stores accept.
func (s *PostgresStore) AppendBatch(ctx context.Context, batch []models.PartRecord) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO part_records (record_id, record_timestamp, category, name, specification, quantity, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, record := range batch {
		if _, err := tx.Exec(ctx, query,
			record.ID, record.Timestamp, record.Category, record.Name,
			record.Specification, record.Quantity, record.Note,
		); err != nil {
			return fmt.Errorf("append record %s: %w", record.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

func (s *PostgresStore) FetchTasks(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `SELECT token FROM task_queue ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

func (s *PostgresStore) ReplaceTasks(ctx context.Context, tokens []string) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin task replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM task_queue`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	for i, token := range tokens {
		if _, err := tx.Exec(ctx, `INSERT INTO task_queue (position, token) VALUES ($1, $2)`, i, token); err != nil {
			return fmt.Errorf("insert task %d: %w", i, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit task replace: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.DB.Ping(ctx)
}
