// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

const (
	salesRecordsTable = "sales_records"
	salesRecordsAlias = "sales_records sr"
)

var salesRecordColumns = []string{"sr.date", "sr.revenue", "sr.orders", "sr.sessions", "sr.new_customers"}

type SalesRecordRepository interface {
	ListAll(ctx context.Context) ([]domain.SalesRecord, error)
	GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]domain.SalesRecord, error)
	ReplaceAll(ctx context.Context, records []domain.SalesRecord) error
}

type salesRecordRepository struct {
	conn postgres.Conn
}

func NewSalesRecordRepository(conn postgres.Conn) SalesRecordRepository {
	return &salesRecordRepository{
		conn: conn,
	}
}

func (r *salesRecordRepository) ListAll(ctx context.Context) ([]domain.SalesRecord, error) {
	query, args, err := listQuery(nil).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "repository: build list query")
	}

	return r.query(ctx, query, args...)
}

func (r *salesRecordRepository) GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]domain.SalesRecord, error) {
	window := domain.NewDateWindow(startDate, endDate)

	query, args, err := listQuery(&window).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "repository: build range query")
	}

	return r.query(ctx, query, args...)
}

// ReplaceAll troca o snapshot persistido inteiro em uma única transação
func (r *salesRecordRepository) ReplaceAll(ctx context.Context, records []domain.SalesRecord) error {
	deleteSQL, deleteArgs, err := squirrel.Delete(salesRecordsTable).PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return errors.Wrap(err, "repository: build delete query")
	}

	insertSQL, insertArgs, err := insertQuery(records)
	if err != nil {
		return err
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
			return errors.Wrap(err, "repository: delete sales records")
		}

		if len(records) == 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return errors.Wrapf(pqErr, "repository: insert sales records (code: %s)", pqErr.Code)
			}
			return errors.Wrap(err, "repository: insert sales records")
		}

		return nil
	})
}

func listQuery(window *domain.DateWindow) squirrel.SelectBuilder {
	builder := squirrel.
		Select(salesRecordColumns...).
		From(salesRecordsAlias).
		OrderBy("sr.date ASC").
		PlaceholderFormat(squirrel.Dollar)

	if window != nil {
		builder = builder.
			Where(squirrel.GtOrEq{"sr.date": window.Start.Format(time.DateOnly)}).
			Where(squirrel.LtOrEq{"sr.date": window.End.Format(time.DateOnly)})
	}

	return builder
}

func insertQuery(records []domain.SalesRecord) (string, []any, error) {
	builder := squirrel.StatementBuilder.
		Insert(salesRecordsTable).
		Columns("id", "date", "revenue", "orders", "sessions", "new_customers").
		PlaceholderFormat(squirrel.Dollar)

	for _, record := range records {
		id, err := utils.GenerateID()
		if err != nil {
			return "", nil, errors.Wrap(err, "repository: generate record id")
		}

		builder = builder.Values(
			id,
			record.Date.Format(time.DateOnly),
			record.Revenue,
			record.Orders,
			record.Sessions,
			record.NewCustomers,
		)
	}

	if len(records) == 0 {
		return "", nil, nil
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "repository: build insert query")
	}

	return query, args, nil
}

func (r *salesRecordRepository) query(ctx context.Context, query string, args ...any) ([]domain.SalesRecord, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "repository: query sales records")
	}
	defer rows.Close()

	records := make([]domain.SalesRecord, 0)
	for rows.Next() {
		record, err := scanSalesRecord(rows)
		if err != nil {
			return nil, errors.Wrap(err, "repository: scan sales record")
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "repository: iterate sales records")
	}

	return records, nil
}

func scanSalesRecord(rows *sql.Rows) (*domain.SalesRecord, error) {
	record := &domain.SalesRecord{}

	err := rows.Scan(
		&record.Date,
		&record.Revenue,
		&record.Orders,
		&record.Sessions,
		&record.NewCustomers,
	)
	if err != nil {
		return nil, err
	}

	record.Date = domain.Day(record.Date)
	return record, nil
}
