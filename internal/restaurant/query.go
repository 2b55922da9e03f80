package restaurant

import (
	"fmt"
	"strings"

	"datenight/internal/slug"
)

const selectColumns = `
	r.id::text,
	r.name,
	r.slug,
	COALESCE(r.address, ''),
	COALESCE(r.phone, ''),
	COALESCE(r.website, ''),
	COALESCE(r.rating, 0),
	COALESCE(r.review_count, 0),
	COALESCE(r.price_level, 0),
	COALESCE(r.cuisine_types, '{}'),
	COALESCE(r.neighborhood, ''),
	COALESCE(r.neighborhood_slug, ''),
	COALESCE(r.city, ''),
	COALESCE(r.city_slug, ''),
	COALESCE(r.photos, '{}'),
	COALESCE(r.opening_hours, '{}'::jsonb),
	COALESCE(r.reviews, '[]'::jsonb),
	COALESCE(r.date_night_score, 0),
	COALESCE(r.is_top_rated, false),
	COALESCE(r.description, ''),
	COALESCE(r.latitude, 0),
	COALESCE(r.longitude, 0),
	COALESCE(r.place_id, ''),
	r.is_active`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// BuildListQuery turns a Filter into a parameterised SELECT.
func BuildListQuery(f Filter) (string, []any) {
	conditions := []string{"r.is_active = true"}
	var args []any
	idx := 1

	if f.Neighborhood != "" {
		conditions = append(conditions, fmt.Sprintf("(r.neighborhood_slug = $%d OR r.neighborhood ILIKE $%d)", idx, idx))
		args = append(args, f.Neighborhood)
		idx++
	}

	if f.Cuisine != "" {
		conditions = append(conditions, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(r.cuisine_types) AS c WHERE c ILIKE $%d)", idx))
		args = append(args, f.Cuisine)
		idx++
	}

	if q := slug.Fold(f.Query); q != "" {
		match := func(col string) string {
			return fmt.Sprintf(`lower(unaccent(%s)) LIKE $%d ESCAPE '\'`, col, idx)
		}
		conditions = append(conditions, fmt.Sprintf(
			"(%s OR %s OR %s OR EXISTS (SELECT 1 FROM unnest(r.cuisine_types) AS c WHERE %s))",
			match("r.name"), match("COALESCE(r.description, '')"), match("COALESCE(r.neighborhood, '')"), match("c"),
		))
		args = append(args, "%"+escapeLike(q)+"%")
		idx++
	}

	if f.Price > 0 {
		conditions = append(conditions, fmt.Sprintf("r.price_level = $%d", idx))
		args = append(args, f.Price)
		idx++
	}
	if f.MinPrice > 0 {
		conditions = append(conditions, fmt.Sprintf("r.price_level >= $%d", idx))
		args = append(args, f.MinPrice)
		idx++
	}
	if f.MaxPrice > 0 {
		conditions = append(conditions, fmt.Sprintf("r.price_level <= $%d", idx))
		args = append(args, f.MaxPrice)
		idx++
	}

	if f.MinRating > 0 {
		conditions = append(conditions, fmt.Sprintf("r.rating >= $%d", idx))
		args = append(args, f.MinRating)
		idx++
	}
	if f.MinScore > 0 {
		conditions = append(conditions, fmt.Sprintf("r.date_night_score >= $%d", idx))
		args = append(args, f.MinScore)
		idx++
	}
	if f.TopRatedOnly {
		conditions = append(conditions, "r.is_top_rated = true")
	}

	query := "SELECT" + selectColumns + "\nFROM restaurants r\nWHERE " +
		strings.Join(conditions, "\n  AND ") +
		"\nORDER BY r.date_night_score DESC, r.name ASC"

	if f.Limit > 0 {
		query += fmt.Sprintf("\nLIMIT $%d", idx)
		args = append(args, f.Limit)
		idx++
		if f.Offset > 0 {
			query += fmt.Sprintf(" OFFSET $%d", idx)
			args = append(args, f.Offset)
		}
	}

	return query, args
}
