package db

import "regexp"

// DefaultTable is the table read when a sqlite location names none.
const DefaultTable = "namespace_activity"

// activityColumns are selected, in order, from the activity table.
var activityColumns = []string{
	"namespace",
	"date",
	"daily_incoming_txs",
	"daily_active_users",
}

// tableNamePattern restricts table names to plain identifiers, since they are
// interpolated into the query.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
