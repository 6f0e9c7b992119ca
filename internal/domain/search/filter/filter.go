package filter

import (
	"fmt"

	"github.com/kailas-cloud/menuboard/internal/domain/geo"
)

// MaxConditionsPerGroup is the maximum number of conditions per filter group.
const MaxConditionsPerGroup = 16

// Expression is a structured filter with must/should/must_not boolean semantics.
type Expression struct {
	must    []Condition
	should  []Condition
	mustNot []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must, should, mustNot []Condition) (Expression, error) {
	if len(must) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(should) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many should conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(mustNot) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must_not conditions (max %d)", MaxConditionsPerGroup)
	}
	return Expression{must: must, should: should, mustNot: mustNot}, nil
}

// Must returns the must conditions.
func (e Expression) Must() []Condition { return e.must }

// Should returns the should conditions.
func (e Expression) Should() []Condition { return e.should }

// MustNot returns the must-not conditions.
func (e Expression) MustNot() []Condition { return e.mustNot }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.should) == 0 && len(e.mustNot) == 0
}

// Condition is a single filter clause: a tag match or a geo radius.
type Condition struct {
	key    string
	match  []string
	radius *geo.Circle
}

// NewMatch creates a tag match condition. Several values match any of them.
func NewMatch(key string, values ...string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if len(values) == 0 {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	for _, v := range values {
		if v == "" {
			return Condition{}, fmt.Errorf("empty match value for key %q", key)
		}
	}
	return Condition{key: key, match: values}, nil
}

// NewRadius creates a geo radius condition around the circle center.
func NewRadius(key string, c geo.Circle) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if err := c.Validate(); err != nil {
		return Condition{}, err
	}
	return Condition{key: key, radius: &c}, nil
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Match returns the accepted tag values.
func (c Condition) Match() []string { return c.match }

// Radius returns the geo circle.
func (c Condition) Radius() *geo.Circle { return c.radius }

// IsMatch reports whether this is a match condition.
func (c Condition) IsMatch() bool { return len(c.match) > 0 }

// IsRadius reports whether this is a geo radius condition.
func (c Condition) IsRadius() bool { return c.radius != nil }
