package models

import (
	"github.com/lib/pq"
)

// StringList is a postgres text[] column that marshals as a JSON array
type StringList = pq.StringArray
