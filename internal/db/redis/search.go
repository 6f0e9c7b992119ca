package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/menuboard/internal/db"
	"github.com/kailas-cloud/menuboard/internal/domain/search/filter"
)

// maxDistinctValues bounds FT.AGGREGATE GROUPBY output.
const maxDistinctValues = 1000

// distanceField names the computed distance in SearchNear rows.
const distanceField = "dist"

// Search runs a filtered, optionally sorted and paginated FT.SEARCH.
func (s *Store) Search(ctx context.Context, q *db.Query) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	if q.Offset < 0 {
		return nil, fmt.Errorf("offset must not be negative")
	}

	args := buildSearchArgs(q, q.Offset, q.Limit)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	if q.KeysOnly {
		return parseKeysResult(raw)
	}
	return parseListResult(raw)
}

// Distinct returns the unique values of a field among matching documents
// via FT.AGGREGATE ... GROUPBY.
func (s *Store) Distinct(ctx context.Context, q *db.DistinctQuery) ([]string, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Field == "" {
		return nil, fmt.Errorf("field is required")
	}

	query := buildFilter(q.Filters)
	if query == "" {
		query = "*"
	}
	args := []string{
		q.IndexName, query,
		"GROUPBY", "1", "@" + q.Field,
		"LIMIT", "0", strconv.Itoa(maxDistinctValues),
		"DIALECT", "2",
	}

	cmd := s.b().Arbitrary("FT.AGGREGATE").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	return parseDistinctResult(raw, q.Field), nil
}

// SearchNear returns matching documents ordered by distance from q.Center,
// closest first. Sorting happens in the store before LIMIT is applied.
func (s *Store) SearchNear(ctx context.Context, q *db.NearQuery) ([]db.NearEntry, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.GeoField == "" {
		return nil, fmt.Errorf("geo field is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	cmd := s.b().Arbitrary("FT.AGGREGATE").Args(buildNearArgs(q)...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	return parseNearResult(raw)
}

func buildNearArgs(q *db.NearQuery) []string {
	distance := fmt.Sprintf("geodistance(@%s,%s,%s)",
		q.GeoField, formatFloat(q.Center.Lng), formatFloat(q.Center.Lat))
	return []string{
		q.IndexName, buildQuery(q.Text, q.TextFields, q.Filters),
		"LOAD", "2", "@" + q.GeoField, "$",
		"APPLY", distance, "AS", distanceField,
		"SORTBY", "2", "@" + distanceField, "ASC",
		"LIMIT", "0", strconv.Itoa(q.Limit),
		"DIALECT", "2",
	}
}

func buildSearchArgs(q *db.Query, offset, limit int) []string {
	args := []string{q.IndexName, buildQuery(q.Text, q.TextFields, q.Filters)}

	if q.KeysOnly {
		args = append(args, "NOCONTENT")
	} else if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	if q.SortBy != "" {
		order := "ASC"
		if q.SortDesc {
			order = "DESC"
		}
		args = append(args, "SORTBY", q.SortBy, order)
	}

	return append(args,
		"LIMIT", strconv.Itoa(offset), strconv.Itoa(limit),
		"DIALECT", "2",
	)
}

// --- Result parsing ---

func parseListResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, (len(raw)-1)/2)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:    key,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseNearResult(raw []rueidis.RedisMessage) ([]db.NearEntry, error) {
	if len(raw) <= 1 {
		return []db.NearEntry{}, nil
	}
	entries := make([]db.NearEntry, 0, len(raw)-1)
	// [count, [location, v, $, doc, dist, d], ...]
	for i := 1; i < len(raw); i++ {
		row, err := raw[i].ToArray()
		if err != nil {
			continue
		}
		fields := parseFieldPairs(row)
		doc := fields["$"]
		if doc == "" {
			continue
		}
		dist, err := strconv.ParseFloat(fields[distanceField], 64)
		if err != nil {
			return nil, fmt.Errorf("parse distance: %w", err)
		}
		entries = append(entries, db.NearEntry{Document: doc, DistanceMeters: dist})
	}
	return entries, nil
}

func parseKeysResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}

	entries := make([]db.SearchEntry, 0, len(raw)-1)
	// 1-stride with NOCONTENT: [total, key1, key2, ...]
	for i := 1; i < len(raw); i++ {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		entries = append(entries, db.SearchEntry{Key: key})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseDistinctResult(raw []rueidis.RedisMessage, field string) []string {
	if len(raw) <= 1 {
		return nil
	}
	values := make([]string, 0, len(raw)-1)
	// [count, [field, value], [field, value], ...]
	for i := 1; i < len(raw); i++ {
		row, err := raw[i].ToArray()
		if err != nil {
			continue
		}
		if v, ok := parseFieldPairs(row)[field]; ok {
			values = append(values, v)
		}
	}
	return values
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Query building ---

// buildQuery combines the free-text clause and the filter into one query string.
func buildQuery(text string, textFields []string, expr filter.Expression) string {
	var parts []string
	if t := buildTextClause(text, textFields); t != "" {
		parts = append(parts, t)
	}
	if f := buildFilter(expr); f != "" {
		parts = append(parts, f)
	}
	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

// buildTextClause ORs the escaped terms, scoped to fields when given.
func buildTextClause(text string, fields []string) string {
	terms := strings.Fields(text)
	if len(terms) == 0 {
		return ""
	}
	escaped := make([]string, 0, len(terms))
	for _, t := range terms {
		escaped = append(escaped, escapeQuery(t))
	}
	clause := "(" + strings.Join(escaped, "|") + ")"
	if len(fields) == 0 {
		return clause
	}
	return "@" + strings.Join(fields, "|") + ":" + clause
}

// buildFilter translates filter.Expression into an FT.SEARCH query string.
func buildFilter(expr filter.Expression) string {
	if expr.IsEmpty() {
		return ""
	}

	var parts []string

	for _, cond := range expr.Must() {
		parts = append(parts, buildCondition(cond))
	}

	if shouldParts := buildShouldGroup(expr.Should()); shouldParts != "" {
		parts = append(parts, shouldParts)
	}

	for _, cond := range expr.MustNot() {
		parts = append(parts, "-"+buildCondition(cond))
	}

	return strings.Join(parts, " ")
}

func buildCondition(cond filter.Condition) string {
	switch {
	case cond.IsMatch():
		return buildTagFilter(cond.Key(), cond.Match())
	case cond.IsRadius():
		return buildGeoFilter(cond.Key(), cond.Radius().Center.Lng, cond.Radius().Center.Lat, cond.Radius().RadiusMeters)
	}
	return ""
}

func buildShouldGroup(conditions []filter.Condition) string {
	if len(conditions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(conditions))
	for _, cond := range conditions {
		parts = append(parts, buildCondition(cond))
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

func buildTagFilter(key string, values []string) string {
	escaped := make([]string, 0, len(values))
	for _, v := range values {
		escaped = append(escaped, tagEscaper.Replace(v))
	}
	return fmt.Sprintf("@%s:{%s}", key, strings.Join(escaped, "|"))
}

func buildGeoFilter(key string, lng, lat, radiusMeters float64) string {
	return fmt.Sprintf("@%s:[%s %s %s m]", key, formatFloat(lng), formatFloat(lat), formatFloat(radiusMeters))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// --- Query helpers ---

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	"/", "\\/",
	" ", "\\ ",
)

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`:`, `\:`,
	`.`, `\.`,
	`,`, `\,`,
)
