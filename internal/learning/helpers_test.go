package learning

import "database/sql"

func sqlNullInt(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}

func sqlNullFloat(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func sqlNullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: true}
}
