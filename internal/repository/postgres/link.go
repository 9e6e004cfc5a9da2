package postgres

import (
	"context"
	"fmt"
)

// linkTable is a many-to-many table holding (parent, child) pairs.
type linkTable struct {
	table  string
	parent string
	child  string
}

var (
	eventSubjects  = linkTable{table: "events_subjects", parent: "event", child: "subject"}
	filterSubjects = linkTable{table: "filters_subjects", parent: "filter", child: "subject"}
)

// link inserts one row per child not yet linked to parentID and returns the
// number of rows inserted. Existing links are never updated or removed.
func link(ctx context.Context, db DBTX, lt linkTable, parentID int64, childIDs []int64) (int, error) {
	if len(childIDs) == 0 {
		return 0, nil
	}

	rows, err := db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, lt.child, lt.table, lt.parent), parentID)
	if err != nil {
		return 0, err
	}
	linked := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, err
		}
		linked[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	insert := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT (%s, %s) DO NOTHING`,
		lt.table, lt.parent, lt.child, lt.parent, lt.child)
	inserted := 0
	for _, id := range childIDs {
		if _, ok := linked[id]; ok {
			continue
		}
		linked[id] = struct{}{}
		res, err := db.ExecContext(ctx, insert, parentID, id)
		if err != nil {
			return inserted, err
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}
	return inserted, nil
}
