package database

import "github.com/koustreak/json2sqlite/internal/document"

// ScanRows reads all rows from the result set and returns them as ordered
// objects keyed by column name, in result-set column order. BLOB and TEXT
// values that the driver hands back as []byte are converted to string.
//
// The returned slice is always non-nil (empty slice on zero rows).
// ScanRows always closes the Rows; callers do not need to call Close().
func ScanRows(rows Rows) ([]string, []*document.Object, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, errQuery("failed to read column names", err)
	}

	result := make([]*document.Object, 0)

	for rows.Next() {
		// Allocate scan targets as *any so the driver can write any type.
		dest := make([]any, len(columns))
		destPtrs := make([]any, len(columns))
		for i := range dest {
			destPtrs[i] = &dest[i]
		}

		if err := rows.Scan(destPtrs...); err != nil {
			return nil, nil, errQuery("failed to scan row", err)
		}

		row := document.NewObject()
		for i, col := range columns {
			if b, ok := dest[i].([]byte); ok {
				row.Set(col, string(b))
				continue
			}
			row.Set(col, dest[i])
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, errQuery("error during row iteration", err)
	}

	return columns, result, nil
}
