package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// DisplayLayout is how timestamps are shown to the user.
const DisplayLayout = "2006-01-02 15:04:05"

// Millis is a timestamp in epoch milliseconds. On the wire it is a string
// ("1714557600000"); bare JSON numbers are accepted as well.
type Millis int64

func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m))
}

// String formats m in local time.
func (m Millis) String() string {
	return m.Time().Local().Format(DisplayLayout)
}

func (m Millis) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(m), 10))
}

func (m *Millis) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		raw = []byte(s)
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid millis timestamp %q: %w", string(b), err)
	}
	*m = Millis(v)
	return nil
}
