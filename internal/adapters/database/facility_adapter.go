package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/carescript/backend/internal/domain/entities"
	"github.com/carescript/backend/internal/domain/repositories"
	"github.com/carescript/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/carescript/backend/pkg/errors"
)

var facilityColumns = []interface{}{
	"id", "name", "address", "region", "capabilities",
	"latitude", "longitude", "geocoded_at", "created_at", "updated_at",
}

// FacilityAdapter implements the FacilityRepository interface
type FacilityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFacilityAdapter creates a new facility adapter
func NewFacilityAdapter(client *postgres.Client) repositories.FacilityRepository {
	return &FacilityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new facility
func (a *FacilityAdapter) Create(ctx context.Context, facility *entities.Facility) error {
	capabilities, err := json.Marshal(facility.Capabilities)
	if err != nil {
		return apperrors.NewInternalError("failed to encode capabilities", err)
	}

	record := goqu.Record{
		"id":           facility.ID,
		"name":         facility.Name,
		"address":      facility.Address,
		"region":       facility.Region,
		"capabilities": string(capabilities),
		"created_at":   facility.CreatedAt,
		"updated_at":   facility.UpdatedAt,
	}
	if facility.Location != nil {
		record["latitude"] = facility.Location.Latitude
		record["longitude"] = facility.Location.Longitude
		record["geocoded_at"] = facility.GeocodedAt
	}

	query, args, err := a.db.Insert("facilities").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewRepositoryError("failed to create facility", err)
	}

	return nil
}

// GetByID retrieves a facility by ID
func (a *FacilityAdapter) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	query, args, err := a.db.Select(facilityColumns...).
		From("facilities").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build select query", err)
	}

	facility, err := scanFacility(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("facility with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewRepositoryError("failed to get facility", err)
	}

	return facility, nil
}

// SaveLocation backfills resolved coordinates onto a facility record.
// Single-row update keyed by id; concurrent first resolutions are a benign
// last-write-wins race since geocoding is idempotent for a fixed address.
func (a *FacilityAdapter) SaveLocation(ctx context.Context, id string, location entities.Location, geocodedAt time.Time) error {
	query, args, err := a.db.Update("facilities").
		Set(goqu.Record{
			"latitude":    location.Latitude,
			"longitude":   location.Longitude,
			"geocoded_at": geocodedAt,
			"updated_at":  time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewRepositoryError("failed to save facility location", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewRepositoryError("failed to check update result", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("facility with id %s not found", id))
	}

	return nil
}

// Search retrieves geocoded facilities in the region that satisfy every true
// capability flag. False or absent flags are not filtering criteria.
func (a *FacilityAdapter) Search(ctx context.Context, region string, filters map[string]bool) ([]*entities.Facility, error) {
	ds := a.db.Select(facilityColumns...).
		From("facilities").
		Where(
			goqu.Ex{"region": region},
			goqu.C("latitude").IsNotNull(),
			goqu.C("longitude").IsNotNull(),
		).
		Order(goqu.C("created_at").Asc())

	required := map[string]bool{}
	for name, value := range filters {
		if value {
			required[name] = true
		}
	}
	if len(required) > 0 {
		containment, err := json.Marshal(required)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to encode capability filters", err)
		}
		ds = ds.Where(goqu.L("capabilities @> ?::jsonb", string(containment)))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build search query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewRepositoryError("failed to search facilities", err)
	}
	defer rows.Close()

	var facilities []*entities.Facility
	for rows.Next() {
		facility, err := scanFacility(rows)
		if err != nil {
			return nil, apperrors.NewRepositoryError("failed to scan facility", err)
		}
		facilities = append(facilities, facility)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewRepositoryError("failed to iterate facilities", err)
	}

	return facilities, nil
}

// List retrieves facilities with paging
func (a *FacilityAdapter) List(ctx context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	ds := a.db.Select(facilityColumns...).
		From("facilities").
		Order(goqu.C("name").Asc())

	if filter.Region != "" {
		ds = ds.Where(goqu.Ex{"region": filter.Region})
	}
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewRepositoryError("failed to list facilities", err)
	}
	defer rows.Close()

	var facilities []*entities.Facility
	for rows.Next() {
		facility, err := scanFacility(rows)
		if err != nil {
			return nil, apperrors.NewRepositoryError("failed to scan facility", err)
		}
		facilities = append(facilities, facility)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewRepositoryError("failed to iterate facilities", err)
	}

	return facilities, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFacility(row rowScanner) (*entities.Facility, error) {
	var (
		facility     entities.Facility
		capabilities []byte
		latitude     sql.NullFloat64
		longitude    sql.NullFloat64
		geocodedAt   sql.NullTime
	)

	err := row.Scan(
		&facility.ID,
		&facility.Name,
		&facility.Address,
		&facility.Region,
		&capabilities,
		&latitude,
		&longitude,
		&geocodedAt,
		&facility.CreatedAt,
		&facility.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(capabilities) > 0 {
		if err := json.Unmarshal(capabilities, &facility.Capabilities); err != nil {
			return nil, fmt.Errorf("decode capabilities: %w", err)
		}
	}
	if latitude.Valid && longitude.Valid {
		facility.Location = &entities.Location{
			Latitude:  latitude.Float64,
			Longitude: longitude.Float64,
		}
	}
	if geocodedAt.Valid {
		facility.GeocodedAt = &geocodedAt.Time
	}

	return &facility, nil
}
