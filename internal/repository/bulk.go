package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Postgres caps a single statement at 65535 bind parameters.
const maxBindParams = 65535

// bulkInsert writes rows with as few multi-row INSERT statements as the bind
// parameter limit allows. Callers own the transaction.
func bulkInsert(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) (int, error) {
	batchSize := maxBindParams / len(columns)

	inserted := 0
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		batch := rows[start:end]

		query, args := insertStatement(table, columns, batch)
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += int(n)
	}

	return inserted, nil
}

func insertStatement(table string, columns []string, rows [][]any) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, len(rows)*len(columns))

	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ", table, strings.Join(columns, ", "))
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j, v := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			args = append(args, v)
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(len(args)))
		}
		sb.WriteByte(')')
	}

	return sb.String(), args
}
