package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routeradar/bus-booking-system/internal/models"
)

// LoadFromPostgres populates the store from a relational network definition.
// The in-memory store remains the authority at runtime; the database is only
// read once at startup, which keeps the catalog's load-time-only lifecycle
// while letting a durable store back the network definition.
func LoadFromPostgres(ctx context.Context, pool *pgxpool.Pool, s *Store) error {
	if err := loadStops(ctx, pool, s); err != nil {
		return err
	}
	if err := loadRoutes(ctx, pool, s); err != nil {
		return err
	}
	return loadTrips(ctx, pool, s)
}

func loadStops(ctx context.Context, pool *pgxpool.Pool, s *Store) error {
	rows, err := pool.Query(ctx, `
		SELECT id, name, latitude, longitude
		FROM stops
		ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("failed to query stops: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var stop models.Stop
		if err := rows.Scan(&stop.ID, &stop.Name, &stop.Latitude, &stop.Longitude); err != nil {
			return fmt.Errorf("failed to scan stop: %w", err)
		}
		if err := s.AddStop(&stop); err != nil {
			return fmt.Errorf("failed to add stop %s: %w", stop.ID, err)
		}
	}
	return rows.Err()
}

func loadRoutes(ctx context.Context, pool *pgxpool.Pool, s *Store) error {
	rows, err := pool.Query(ctx, `
		SELECT id, name, operator_name, bus_type, departure_time,
		       average_duration_hours, distance_km
		FROM routes
		ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	var routes []*models.Route
	for rows.Next() {
		var route models.Route
		if err := rows.Scan(
			&route.ID, &route.Name, &route.OperatorName, &route.BusType,
			&route.DepartureTime, &route.AverageDurationHours, &route.DistanceKm,
		); err != nil {
			return fmt.Errorf("failed to scan route: %w", err)
		}
		routes = append(routes, &route)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, route := range routes {
		stopRows, err := pool.Query(ctx, `
			SELECT stop_id
			FROM route_stops
			WHERE route_id = $1
			ORDER BY sequence
		`, route.ID)
		if err != nil {
			return fmt.Errorf("failed to query stops for route %s: %w", route.ID, err)
		}
		for stopRows.Next() {
			var stopID string
			if err := stopRows.Scan(&stopID); err != nil {
				stopRows.Close()
				return fmt.Errorf("failed to scan route stop: %w", err)
			}
			stop, err := s.GetStop(stopID)
			if err != nil {
				stopRows.Close()
				return fmt.Errorf("route %s references unknown stop %s: %w", route.ID, stopID, err)
			}
			route.Stops = append(route.Stops, stop)
		}
		stopRows.Close()
		if err := stopRows.Err(); err != nil {
			return err
		}

		pathRows, err := pool.Query(ctx, `
			SELECT lat, lng
			FROM route_path_points
			WHERE route_id = $1
			ORDER BY sequence
		`, route.ID)
		if err != nil {
			return fmt.Errorf("failed to query path for route %s: %w", route.ID, err)
		}
		for pathRows.Next() {
			var point models.LatLng
			if err := pathRows.Scan(&point.Lat, &point.Lng); err != nil {
				pathRows.Close()
				return fmt.Errorf("failed to scan path point: %w", err)
			}
			route.Path = append(route.Path, point)
		}
		pathRows.Close()
		if err := pathRows.Err(); err != nil {
			return err
		}

		if err := s.AddRoute(route); err != nil {
			return fmt.Errorf("failed to add route %s: %w", route.ID, err)
		}
	}
	return nil
}

func loadTrips(ctx context.Context, pool *pgxpool.Pool, s *Store) error {
	rows, err := pool.Query(ctx, `
		SELECT id, route_id, current_latitude, current_longitude,
		       total_seats, booked_seats
		FROM trips
		ORDER BY route_id, id
	`)
	if err != nil {
		return fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, routeID             string
			lat, lng                float64
			totalSeats, bookedSeats int
		)
		if err := rows.Scan(&id, &routeID, &lat, &lng, &totalSeats, &bookedSeats); err != nil {
			return fmt.Errorf("failed to scan trip: %w", err)
		}
		trip := models.NewTripInstance(id, routeID, lat, lng, totalSeats, bookedSeats)
		if err := s.AddTrip(trip); err != nil {
			return fmt.Errorf("failed to add trip %s: %w", id, err)
		}
	}
	return rows.Err()
}
