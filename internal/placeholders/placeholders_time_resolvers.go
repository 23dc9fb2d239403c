package placeholders

import (
	"strconv"
	"time"
)

func resolveUnixTimestamp() (string, error) {
	return strconv.FormatInt(time.Now().UTC().Unix(), 10), nil
}

// resolveCompactTimestamp is tag safe: docker tags cannot hold ':' so RFC3339 is not usable there.
func resolveCompactTimestamp() (string, error) {
	return time.Now().UTC().Format("20060102-150405"), nil
}

func resolveISO8601Timestamp() (string, error) {
	return time.Now().UTC().Format(time.RFC3339), nil
}
