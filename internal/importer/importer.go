package importer

import (
	"context"
	"fmt"

	"datenight/internal/restaurant"
	"datenight/internal/slug"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const DefaultBatchSize = 50

// DB is the part of pgxpool.Pool the importer needs.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Stats struct {
	Cities        int `json:"cities"`
	Neighborhoods int `json:"neighborhoods"`
	Cuisines      int `json:"cuisines"`
	Restaurants   int `json:"restaurants"`
	Batches       int `json:"batches"`
}

type Importer struct {
	db        DB
	logger    *zap.Logger
	batchSize int
}

func New(db DB, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{db: db, logger: logger, batchSize: DefaultBatchSize}
}

func (i *Importer) WithBatchSize(n int) *Importer {
	if n > 0 {
		i.batchSize = n
	}
	return i
}

// Import upserts the lookup tables and then the restaurants in batches, one
// transaction per batch. The first failing batch aborts the run; batches
// already committed stay committed.
func (i *Importer) Import(ctx context.Context, records []*restaurant.Restaurant) (Stats, error) {
	plan := BuildPlan(records)
	stats := Stats{
		Cities:        len(plan.Cities),
		Neighborhoods: len(plan.Neighborhoods),
		Cuisines:      len(plan.Cuisines),
	}

	lookups := &pgx.Batch{}
	queueLookups(lookups, plan)
	if err := i.sendInTx(ctx, lookups); err != nil {
		return stats, fmt.Errorf("import lookups: %w", err)
	}
	i.logger.Info("[IMPORT] lookup tables upserted",
		zap.Int("cities", stats.Cities),
		zap.Int("neighborhoods", stats.Neighborhoods),
		zap.Int("cuisines", stats.Cuisines),
	)

	for n, chunk := range chunks(plan.Restaurants, i.batchSize) {
		b := &pgx.Batch{}
		for _, r := range chunk {
			queueRestaurant(b, r)
		}
		if err := i.sendInTx(ctx, b); err != nil {
			i.logger.Error("[IMPORT] batch failed, aborting",
				zap.Int("batch", n+1),
				zap.String("first", chunk[0].Name),
				zap.Error(err),
			)
			return stats, fmt.Errorf("import batch %d: %w", n+1, err)
		}
		stats.Batches++
		stats.Restaurants += len(chunk)
		i.logger.Info("[IMPORT] batch committed",
			zap.Int("batch", n+1),
			zap.Int("size", len(chunk)),
			zap.Int("total", stats.Restaurants),
		)
	}

	if err := i.Recount(ctx); err != nil {
		return stats, err
	}
	return stats, nil
}

func (i *Importer) sendInTx(ctx context.Context, b *pgx.Batch) error {
	if b.Len() == 0 {
		return nil
	}

	tx, err := i.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	br := tx.SendBatch(ctx, b)
	for q := 0; q < b.Len(); q++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("statement %d: %w", q+1, err)
		}
	}
	if err := br.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func queueLookups(b *pgx.Batch, plan Plan) {
	for _, c := range plan.Cities {
		b.Queue(`
			INSERT INTO cities (name, slug)
			VALUES ($1, $2)
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		`, c.Name, c.Slug)
	}
	for _, n := range plan.Neighborhoods {
		b.Queue(`
			INSERT INTO neighborhoods (name, slug, city_id)
			VALUES ($1, $2, (SELECT id FROM cities WHERE slug = $3))
			ON CONFLICT (slug) DO UPDATE
			SET name = EXCLUDED.name, city_id = EXCLUDED.city_id
		`, n.Name, n.Slug, n.CitySlug)
	}
	for _, c := range plan.Cuisines {
		b.Queue(`
			INSERT INTO cuisines (name, slug)
			VALUES ($1, $2)
			ON CONFLICT (slug) DO NOTHING
		`, c.Name, c.Slug)
	}
}

const upsertRestaurantSQL = `
	INSERT INTO restaurants (
		id, name, slug, address, phone, website, rating, review_count,
		price_level, cuisine_types, neighborhood, neighborhood_slug, city,
		city_slug, photos, opening_hours, reviews, date_night_score,
		is_top_rated, description, latitude, longitude, place_id, is_active
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
	)
	ON CONFLICT (neighborhood_slug, slug) DO UPDATE SET
		name = EXCLUDED.name,
		address = EXCLUDED.address,
		phone = EXCLUDED.phone,
		website = EXCLUDED.website,
		rating = EXCLUDED.rating,
		review_count = EXCLUDED.review_count,
		price_level = EXCLUDED.price_level,
		cuisine_types = EXCLUDED.cuisine_types,
		neighborhood = EXCLUDED.neighborhood,
		city = EXCLUDED.city,
		city_slug = EXCLUDED.city_slug,
		photos = EXCLUDED.photos,
		opening_hours = EXCLUDED.opening_hours,
		reviews = EXCLUDED.reviews,
		date_night_score = EXCLUDED.date_night_score,
		is_top_rated = EXCLUDED.is_top_rated,
		description = EXCLUDED.description,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		place_id = EXCLUDED.place_id,
		is_active = EXCLUDED.is_active,
		updated_at = now()
`

// queueRestaurant queues the upsert plus the cuisine link refresh.
func queueRestaurant(b *pgx.Batch, r *restaurant.Restaurant) {
	cuisineSlugs := make([]string, 0, len(r.CuisineTypes))
	for _, c := range r.CuisineTypes {
		if s := slug.Make(c); s != "" {
			cuisineSlugs = append(cuisineSlugs, s)
		}
	}

	b.Queue(upsertRestaurantSQL,
		RestaurantID(r).String(), r.Name, r.Slug, r.Address, r.Phone, r.Website,
		r.Rating, r.ReviewCount, r.PriceLevel, r.CuisineTypes, r.Neighborhood,
		r.NeighborhoodSlug, r.City, r.CitySlug, r.Photos, r.OpeningHours,
		r.Reviews, r.DateNightScore, r.IsTopRated, r.Description, r.Latitude,
		r.Longitude, r.PlaceID, r.IsActive,
	)
	b.Queue(`
		DELETE FROM restaurant_cuisines
		WHERE restaurant_id = (
			SELECT id FROM restaurants WHERE neighborhood_slug = $1 AND slug = $2
		)
	`, r.NeighborhoodSlug, r.Slug)
	b.Queue(`
		INSERT INTO restaurant_cuisines (restaurant_id, cuisine_id)
		SELECT r.id, c.id
		FROM restaurants r
		JOIN cuisines c ON c.slug = ANY($3)
		WHERE r.neighborhood_slug = $1 AND r.slug = $2
		ON CONFLICT DO NOTHING
	`, r.NeighborhoodSlug, r.Slug, cuisineSlugs)
}

// RestaurantID keeps UUID ids as they are and derives a stable one from the
// URL path for anything else, so reimports hit the same row.
func RestaurantID(r *restaurant.Restaurant) uuid.UUID {
	if id, err := uuid.Parse(r.ID); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("datenight:"+r.NeighborhoodSlug+"/"+r.Slug))
}

var recountSQL = []struct {
	table string
	sql   string
}{
	{"cities", `
		UPDATE cities ci
		SET restaurant_count = (
			SELECT COUNT(*) FROM restaurants r
			WHERE r.city_slug = ci.slug AND r.is_active = true
		)
	`},
	{"neighborhoods", `
		UPDATE neighborhoods n
		SET restaurant_count = (
			SELECT COUNT(*) FROM restaurants r
			WHERE r.neighborhood_slug = n.slug AND r.is_active = true
		)
	`},
	{"cuisines", `
		UPDATE cuisines c
		SET restaurant_count = (
			SELECT COUNT(*)
			FROM restaurant_cuisines rc
			JOIN restaurants r ON r.id = rc.restaurant_id
			WHERE rc.cuisine_id = c.id AND r.is_active = true
		)
	`},
}

// Recount recomputes every cached restaurant_count with a full re-scan.
func (i *Importer) Recount(ctx context.Context) error {
	for _, stmt := range recountSQL {
		tag, err := i.db.Exec(ctx, stmt.sql)
		if err != nil {
			return fmt.Errorf("recount %s: %w", stmt.table, err)
		}
		i.logger.Info("[IMPORT] recounted",
			zap.String("table", stmt.table),
			zap.Int64("rows", tag.RowsAffected()),
		)
	}
	return nil
}
