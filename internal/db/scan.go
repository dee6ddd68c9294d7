package db

import (
	"fmt"
	"strconv"
	"time"

	"javaterra/internal/utils"
)

// Text scans any column value into its textual form. SQLite and MySQL
// return CURRENT_TIMESTAMP columns as time.Time, []byte or string depending
// on driver settings; the API always exposes "YYYY-MM-DD HH:MM:SS".
type Text string

func (t *Text) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(v)
	case []byte:
		*t = Text(string(v))
	case time.Time:
		*t = Text(utils.FormatTimestamp(v))
	case int64:
		*t = Text(strconv.FormatInt(v, 10))
	case float64:
		*t = Text(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return fmt.Errorf("db.Text: unsupported type %T", src)
	}
	return nil
}

func (t Text) String() string { return string(t) }
