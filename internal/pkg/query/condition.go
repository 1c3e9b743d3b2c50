package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

// eqCondition implements equality comparison (field = value).
type eqCondition struct {
	field string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("country_code", "AR") generates "country_code = @p0"
func Eq(field string, value interface{}) Condition {
	return &eqCondition{
		field: field,
		value: value,
	}
}

// SQL generates the SQL fragment for equality comparison.
func (c *eqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s = @%s", c.field, paramName)
	params := map[string]interface{}{
		paramName: c.value,
	}
	return sql, params
}

// inCondition implements set membership (field IN (...)).
type inCondition struct {
	field  string
	values []interface{}
}

// In creates a WHERE condition for set membership.
// Example: In("country_code", "AR", "CL") generates "country_code IN (@p0, @p1)"
func In(field string, values ...interface{}) Condition {
	return &inCondition{
		field:  field,
		values: values,
	}
}

// SQL generates the SQL fragment for set membership.
func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	params := make(map[string]interface{}, len(c.values))
	placeholders := make([]string, 0, len(c.values))
	for i, v := range c.values {
		paramName := fmt.Sprintf("p%d", paramIndex+i)
		placeholders = append(placeholders, "@"+paramName)
		params[paramName] = v
	}
	sql := fmt.Sprintf("%s IN (%s)", c.field, strings.Join(placeholders, ", "))
	return sql, params
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
// Example: IsNotNull("monto_total") generates "monto_total IS NOT NULL"
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

// isNotNullCondition implements IS NOT NULL comparison.
type isNotNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NOT NULL comparison.
func (c *isNotNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql := fmt.Sprintf("%s IS NOT NULL", c.field)
	return sql, map[string]interface{}{}
}
