package restaurant

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// List restaurants matching a filter
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]*Restaurant, error) {
	query, args := BuildListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []*Restaurant{}
	for rows.Next() {
		res, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, res)
	}

	return restaurants, rows.Err()
}

// --------------------------------------------------
// Restaurant detail by (neighborhood, restaurant) slug
// --------------------------------------------------
func (r *PostgresRepository) GetBySlug(
	ctx context.Context,
	neighborhoodSlug string,
	slug string,
) (*Restaurant, error) {

	row := r.db.QueryRow(ctx, `
		SELECT`+selectColumns+`
		FROM restaurants r
		WHERE r.neighborhood_slug = $1
		  AND r.slug = $2
		  AND r.is_active = true
	`, neighborhoodSlug, slug)

	res, err := scanRestaurant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// --------------------------------------------------
// Neighborhoods with their cached restaurant counts
// --------------------------------------------------
func (r *PostgresRepository) ListNeighborhoods(ctx context.Context) ([]*Neighborhood, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, slug, COALESCE(city_id, 0), restaurant_count
		FROM neighborhoods
		ORDER BY restaurant_count DESC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	neighborhoods := []*Neighborhood{}
	for rows.Next() {
		var n Neighborhood
		if err := rows.Scan(&n.ID, &n.Name, &n.Slug, &n.CityID, &n.RestaurantCount); err != nil {
			return nil, err
		}
		neighborhoods = append(neighborhoods, &n)
	}
	return neighborhoods, rows.Err()
}

func (r *PostgresRepository) ListCuisines(ctx context.Context) ([]*Cuisine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, slug, restaurant_count
		FROM cuisines
		ORDER BY restaurant_count DESC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cuisines := []*Cuisine{}
	for rows.Next() {
		var c Cuisine
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.RestaurantCount); err != nil {
			return nil, err
		}
		cuisines = append(cuisines, &c)
	}
	return cuisines, rows.Err()
}

// --------------------------------------------------
// Current URL slugs (used by the redirect generator)
// --------------------------------------------------
func (r *PostgresRepository) Locations(ctx context.Context) ([]Location, error) {
	rows, err := r.db.Query(ctx, `
		SELECT neighborhood_slug, slug
		FROM restaurants
		WHERE is_active = true
		ORDER BY neighborhood_slug, slug
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.NeighborhoodSlug, &l.Slug); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func scanRestaurant(row pgx.Row) (*Restaurant, error) {
	var res Restaurant
	err := row.Scan(
		&res.ID,
		&res.Name,
		&res.Slug,
		&res.Address,
		&res.Phone,
		&res.Website,
		&res.Rating,
		&res.ReviewCount,
		&res.PriceLevel,
		&res.CuisineTypes,
		&res.Neighborhood,
		&res.NeighborhoodSlug,
		&res.City,
		&res.CitySlug,
		&res.Photos,
		&res.OpeningHours,
		&res.Reviews,
		&res.DateNightScore,
		&res.IsTopRated,
		&res.Description,
		&res.Latitude,
		&res.Longitude,
		&res.PlaceID,
		&res.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
