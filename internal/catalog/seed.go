package catalog

import (
	"fmt"

	"github.com/routeradar/bus-booking-system/internal/geo"
	"github.com/routeradar/bus-booking-system/internal/models"
)

// Reference intercity network used when no database is configured.

var seedStops = []*models.Stop{
	{ID: "stop1", Name: "Delhi ISBT Kashmiri Gate", Latitude: 28.6679, Longitude: 77.2276},
	{ID: "stop2", Name: "Mathura Junction", Latitude: 27.4763, Longitude: 77.6728},
	{ID: "stop3", Name: "Agra ISBT", Latitude: 27.1907, Longitude: 77.9998},
	{ID: "stop4", Name: "Jaipur Sindhi Camp", Latitude: 26.9221, Longitude: 75.7789},
	{ID: "stop5", Name: "Vrindavan Chhatikara More", Latitude: 27.5600, Longitude: 77.6580},
	{ID: "stop6", Name: "Fatehpur Sikri", Latitude: 27.0911, Longitude: 77.6639},
	{ID: "stop7", Name: "Alwar Bus Stand", Latitude: 27.5570, Longitude: 76.6179},
	{ID: "stop8", Name: "Gurugram Rajiv Chowk", Latitude: 28.4595, Longitude: 77.0266},
	{ID: "stop9", Name: "Lucknow Charbagh Bus Stand", Latitude: 26.8467, Longitude: 80.9462},
	{ID: "stop10", Name: "Kanpur Jhakarkati Bus Stand", Latitude: 26.4499, Longitude: 80.3319},
	{ID: "stop11", Name: "Varanasi Cantt Bus Stand", Latitude: 25.3176, Longitude: 82.9739},
	{ID: "stop12", Name: "Akbarpur Bus Stand", Latitude: 26.4325, Longitude: 82.5377},
	{ID: "stop13", Name: "Sultanpur Bus Stand", Latitude: 26.2619, Longitude: 82.0730},
	{ID: "stop14", Name: "Ayodhya Dham Bus Station", Latitude: 26.7906, Longitude: 82.1983},
	{ID: "stop15", Name: "Barabanki Bus Stand", Latitude: 26.9394, Longitude: 81.1932},
	{ID: "stop16", Name: "Prayagraj Civil Lines Bus Stand", Latitude: 25.4448, Longitude: 81.8405},
}

func stopPath(stops ...*models.Stop) []models.LatLng {
	path := make([]models.LatLng, len(stops))
	for i, s := range stops {
		path[i] = models.LatLng{Lat: s.Latitude, Lng: s.Longitude}
	}
	return path
}

// LoadSeedData populates the store with the built-in reference network:
// hand-curated marquee routes plus direct connections generated between
// major city pairs, and one or more vehicles per route.
func LoadSeedData(s *Store, averageSpeedKmh float64) error {
	byID := make(map[string]*models.Stop, len(seedStops))
	for _, stop := range seedStops {
		if err := s.AddStop(stop); err != nil {
			return fmt.Errorf("seed stop %s: %w", stop.ID, err)
		}
		byID[stop.ID] = stop
	}

	routes := []*models.Route{
		{
			ID: "route1", Name: "Route 101: Delhi - Agra Express",
			OperatorName: "Singh Travels", BusType: "AC Seater 2+2",
			Stops:         []*models.Stop{byID["stop1"], byID["stop5"], byID["stop2"], byID["stop3"]},
			Path:          stopPath(byID["stop1"], byID["stop5"], byID["stop2"], byID["stop3"]),
			DepartureTime: "07:00", AverageDurationHours: 5.5, DistanceKm: 230,
		},
		{
			ID: "route2", Name: "Route 202: Jaipur - Agra Connector",
			OperatorName: "Rajputana Tours", BusType: "Non-AC Seater 2+3",
			Stops:         []*models.Stop{byID["stop4"], byID["stop6"], byID["stop3"]},
			Path:          stopPath(byID["stop4"], byID["stop6"], byID["stop3"]),
			DepartureTime: "09:30", AverageDurationHours: 5, DistanceKm: 240,
		},
		{
			ID: "route3", Name: "Route 303: Delhi - Jaipur Deluxe",
			OperatorName: "Maharaja Express", BusType: "AC Sleeper 2+1",
			Stops:         []*models.Stop{byID["stop1"], byID["stop8"], byID["stop7"], byID["stop4"]},
			Path:          stopPath(byID["stop1"], byID["stop8"], byID["stop7"], byID["stop4"]),
			DepartureTime: "22:00", AverageDurationHours: 6, DistanceKm: 280,
		},
		{
			ID: "route4", Name: "Route 102: Delhi - Agra Morning Star",
			OperatorName: "City Link", BusType: "Volvo AC Semi-Sleeper",
			Stops:         []*models.Stop{byID["stop1"], byID["stop2"], byID["stop3"]},
			Path:          stopPath(byID["stop1"], byID["stop2"], byID["stop3"]),
			DepartureTime: "08:30", AverageDurationHours: 4.5, DistanceKm: 220,
		},
		{
			ID: "route5", Name: "Route 304: Delhi - Jaipur Shatabdi",
			OperatorName: "Haryana Roadways", BusType: "Non-AC Seater",
			Stops:         []*models.Stop{byID["stop1"], byID["stop4"]},
			Path:          stopPath(byID["stop1"], byID["stop4"]),
			DepartureTime: "14:00", AverageDurationHours: 5.5, DistanceKm: 270,
		},
		{
			ID: "route6", Name: "Route 401: Mathura - Jaipur Pilgrim",
			OperatorName: "Yadav Travels", BusType: "AC Seater 2+2",
			Stops:         []*models.Stop{byID["stop2"], byID["stop7"], byID["stop4"]},
			Path:          stopPath(byID["stop2"], byID["stop7"], byID["stop4"]),
			DepartureTime: "11:00", AverageDurationHours: 4, DistanceKm: 180,
		},
		{
			ID: "routeUP1", Name: "Route 501: Delhi - Lucknow Superfast",
			OperatorName: "UPSRTC Gold Line", BusType: "AC Janrath 2+2",
			Stops:         []*models.Stop{byID["stop1"], byID["stop9"]},
			Path:          stopPath(byID["stop1"], byID["stop9"]),
			DepartureTime: "08:00", AverageDurationHours: 8, DistanceKm: 500,
		},
		{
			ID: "routeUP2", Name: "Route 601: Kanpur - Varanasi Express",
			OperatorName: "Kashi Vishwanath Express", BusType: "Non-AC Seater 2+3",
			Stops:         []*models.Stop{byID["stop10"], byID["stop16"], byID["stop11"]},
			Path:          stopPath(byID["stop10"], byID["stop16"], byID["stop11"]),
			DepartureTime: "10:00", AverageDurationHours: 7, DistanceKm: 330,
		},
		{
			ID: "routeUP3", Name: "Route 701: Delhi - Ayodhya Ram Rath",
			OperatorName: "Ram Rajya Travels", BusType: "AC Sleeper 2+1",
			Stops:         []*models.Stop{byID["stop1"], byID["stop9"], byID["stop15"], byID["stop14"]},
			Path:          stopPath(byID["stop1"], byID["stop9"], byID["stop15"], byID["stop14"]),
			DepartureTime: "20:00", AverageDurationHours: 10, DistanceKm: 680,
		},
		{
			ID: "routeUP4", Name: "Route 801: Lucknow - Varanasi (via Sultanpur, Akbarpur)",
			OperatorName: "Awadh Express Services", BusType: "AC Seater 2+2",
			Stops:         []*models.Stop{byID["stop9"], byID["stop13"], byID["stop12"], byID["stop11"]},
			Path:          stopPath(byID["stop9"], byID["stop13"], byID["stop12"], byID["stop11"]),
			DepartureTime: "09:00", AverageDurationHours: 6.5, DistanceKm: 300,
		},
		{
			ID: "routeUP5", Name: "Route 502: Delhi - Lucknow Volvo",
			OperatorName: "Sharma Travels", BusType: "Volvo AC Semi-Sleeper",
			Stops:         []*models.Stop{byID["stop1"], byID["stop9"]},
			Path:          stopPath(byID["stop1"], byID["stop9"]),
			DepartureTime: "21:30", AverageDurationHours: 7.5, DistanceKm: 500,
		},
	}

	// Direct connections between major city pairs; nominal distance and
	// duration derived from stop geometry.
	operatorPool := []string{
		"Bharat Benz Connect", "Volvo Cruisers", "State Express", "Rapid Transways",
		"Comfort Journey Ltd.", "Skyline Travels", "UPSRTC Deluxe", "Rajasthan State Roadways",
	}
	busTypePool := []string{
		"AC Sleeper 2+1", "Volvo AC Semi-Sleeper", "AC Seater 2+2",
		"Non-AC Deluxe 2+2", "AC Janrath 2+2", "Ordinary Express",
	}
	directPairs := []struct {
		origin, destination string
		departureTime       string
	}{
		{"stop1", "stop10", "07:30"},
		{"stop1", "stop11", "09:00"},
		{"stop1", "stop16", "11:00"},
		{"stop9", "stop3", "08:15"},
		{"stop9", "stop4", "10:45"},
		{"stop9", "stop14", "14:00"},
		{"stop10", "stop3", "07:00"},
		{"stop10", "stop14", "09:30"},
		{"stop11", "stop14", "06:45"},
		{"stop11", "stop1", "14:30"},
		{"stop4", "stop9", "09:15"},
		{"stop4", "stop1", "16:00"},
		{"stop14", "stop13", "07:50"},
		{"stop14", "stop15", "10:50"},
		{"stop13", "stop9", "14:10"},
		{"stop15", "stop9", "17:00"},
	}
	for i, pair := range directPairs {
		origin, destination := byID[pair.origin], byID[pair.destination]
		distanceKm := geo.DistanceKm(origin.Latitude, origin.Longitude, destination.Latitude, destination.Longitude)
		routes = append(routes, &models.Route{
			ID:                   fmt.Sprintf("routeGen%d", 20+i),
			Name:                 fmt.Sprintf("Route %s - %s", firstWord(origin.Name), firstWord(destination.Name)),
			OperatorName:         operatorPool[i%len(operatorPool)],
			BusType:              busTypePool[i%len(busTypePool)],
			Stops:                []*models.Stop{origin, destination},
			Path:                 stopPath(origin, destination),
			DepartureTime:        pair.departureTime,
			AverageDurationHours: geo.EstimateDurationHours(distanceKm, averageSpeedKmh),
			DistanceKm:           distanceKm,
		})
	}

	for _, route := range routes {
		if err := s.AddRoute(route); err != nil {
			return fmt.Errorf("seed route %s: %w", route.ID, err)
		}
	}

	trips := []*models.TripInstance{
		models.NewTripInstance("busDL01AG1234", "route1", 27.8500, 77.5500, 45, 20),
		models.NewTripInstance("busRJ14AG5678", "route2", 27.1200, 76.9500, 40, 30),
		models.NewTripInstance("busDL01JP9012", "route3", 28.2000, 77.0000, 50, 15),
		models.NewTripInstance("busUP85AG2233", "route4", 27.2500, 77.9000, 42, 35),
		models.NewTripInstance("busHR55JP0001", "route5", 28.5000, 77.1000, 55, 10),
		models.NewTripInstance("busUP80MJ0002", "route6", 27.5100, 77.5000, 35, 5),
		models.NewTripInstance("busDL01AG7777", "route1", 28.6000, 77.2000, 45, 5),
		models.NewTripInstance("busUP32LK0011", "routeUP1", 28.0500, 78.5000, 40, 10),
		models.NewTripInstance("busUP78KV0022", "routeUP2", 25.9000, 81.5000, 50, 25),
		models.NewTripInstance("busDL01AY0033", "routeUP3", 27.0000, 80.0000, 30, 12),
		models.NewTripInstance("busUP32VB0044", "routeUP4", 26.3000, 82.2000, 40, 18),
		models.NewTripInstance("busDL01LK5500", "routeUP5", 28.5500, 77.3500, 48, 22),
	}
	for i, route := range routes[11:] {
		origin := route.Origin()
		trips = append(trips, models.NewTripInstance(
			fmt.Sprintf("busGen%d", 20+i), route.ID,
			origin.Latitude, origin.Longitude,
			30+(i*7)%26, (i*5)%15,
		))
	}
	for _, trip := range trips {
		if err := s.AddTrip(trip); err != nil {
			return fmt.Errorf("seed trip %s: %w", trip.ID, err)
		}
	}
	return nil
}

func firstWord(name string) string {
	for i, r := range name {
		if r == ' ' {
			return name[:i]
		}
	}
	return name
}
