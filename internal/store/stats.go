package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string           `json:"db_path"`
	DBSizeBytes int64            `json:"db_size_bytes"`
	TotalKeys   int              `json:"total_keys"`
	Namespaces  []NamespaceStats `json:"namespaces"`
}

// NamespaceStats holds per-namespace counts.
type NamespaceStats struct {
	NS   string `json:"ns"`
	Keys int    `json:"keys"`
}

// Stats returns database statistics. Namespaces are the key prefixes before ':'.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: s.path, Namespaces: []NamespaceStats{}}

	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv`).Scan(&st.TotalKeys); err != nil {
		return st, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(key, 1, instr(key, ':') - 1) AS ns, COUNT(*) AS keys
		FROM kv WHERE instr(key, ':') > 1
		GROUP BY ns ORDER BY keys DESC, ns`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ns NamespaceStats
		if err := rows.Scan(&ns.NS, &ns.Keys); err != nil {
			return st, err
		}
		st.Namespaces = append(st.Namespaces, ns)
	}
	return st, rows.Err()
}
