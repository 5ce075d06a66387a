// internal/app/features/graphql/scalars.go
package graphql

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateTime is the RFC 3339 timestamp scalar.
type DateTime struct {
	time.Time
}

func (DateTime) ImplementsGraphQLType(name string) bool {
	return name == "DateTime"
}

func (d *DateTime) UnmarshalGraphQL(input any) error {
	switch v := input.(type) {
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return fmt.Errorf("DateTime must be an RFC 3339 timestamp: %w", err)
		}
		d.Time = t
		return nil
	case time.Time:
		d.Time = v
		return nil
	default:
		return fmt.Errorf("cannot unmarshal %T into DateTime", input)
	}
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(time.RFC3339))
}
