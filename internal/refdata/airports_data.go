package refdata

import "github.com/bobby-s-dev/airport-delays/internal/models"

// airportList keeps the declaration order; it is the tracked order for selection tie-breaks.
var airportList = []models.AirportRef{
	{
		Code: "ATL", Name: "Hartsfield-Jackson Atlanta International Airport", City: "Atlanta, GA",
		Lat: 33.6407, Lon: -84.4277, TrafficIndex: 6, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "LGA", Share: 0.12}, {Code: "MCO", Share: 0.11}, {Code: "LAX", Share: 0.08}},
	},
	{
		Code: "LAX", Name: "Los Angeles International Airport", City: "Los Angeles, CA",
		Lat: 33.9416, Lon: -118.4085, TrafficIndex: 5, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "SFO", Share: 0.1}, {Code: "JFK", Share: 0.08}, {Code: "SEA", Share: 0.07}},
	},
	{
		Code: "ORD", Name: "O'Hare International Airport", City: "Chicago, IL",
		Lat: 41.9742, Lon: -87.9073, TrafficIndex: 5, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "LGA", Share: 0.09}, {Code: "DEN", Share: 0.08}, {Code: "MSP", Share: 0.07}},
	},
	{
		Code: "DFW", Name: "Dallas/Fort Worth International Airport", City: "Dallas-Fort Worth, TX",
		Lat: 32.8998, Lon: -97.0403, TrafficIndex: 5, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "LAX", Share: 0.08}, {Code: "ORD", Share: 0.07}, {Code: "DEN", Share: 0.07}},
	},
	{
		Code: "DEN", Name: "Denver International Airport", City: "Denver, CO",
		Lat: 39.8561, Lon: -104.6737, TrafficIndex: 5, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "ORD", Share: 0.08}, {Code: "LAX", Share: 0.07}, {Code: "PHX", Share: 0.06}},
	},
	{
		Code: "JFK", Name: "John F. Kennedy International Airport", City: "New York, NY",
		Lat: 40.6413, Lon: -73.7781, TrafficIndex: 4, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "LAX", Share: 0.09}, {Code: "SFO", Share: 0.08}, {Code: "MCO", Share: 0.07}},
	},
	{
		Code: "SFO", Name: "San Francisco International Airport", City: "San Francisco, CA",
		Lat: 37.6213, Lon: -122.379, TrafficIndex: 4, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "LAX", Share: 0.14}, {Code: "SEA", Share: 0.07}, {Code: "DEN", Share: 0.07}},
	},
	{
		Code: "SEA", Name: "Seattle-Tacoma International Airport", City: "Seattle, WA",
		Lat: 47.4502, Lon: -122.3088, TrafficIndex: 4, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "SFO", Share: 0.11}, {Code: "LAX", Share: 0.09}, {Code: "DEN", Share: 0.06}},
	},
	{
		Code: "MCO", Name: "Orlando International Airport", City: "Orlando, FL",
		Lat: 28.4312, Lon: -81.3081, TrafficIndex: 3, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "ATL", Share: 0.13}, {Code: "JFK", Share: 0.09}, {Code: "EWR", Share: 0.07}},
	},
	{
		Code: "LAS", Name: "Harry Reid International Airport", City: "Las Vegas, NV",
		Lat: 36.084, Lon: -115.1537, TrafficIndex: 3, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "LAX", Share: 0.09}, {Code: "DEN", Share: 0.08}, {Code: "SFO", Share: 0.07}},
	},
	{
		Code: "BOS", Name: "Logan International Airport", City: "Boston, MA",
		Lat: 42.3656, Lon: -71.0096, TrafficIndex: 3, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "JFK", Share: 0.1}, {Code: "DCA", Share: 0.08}, {Code: "ORD", Share: 0.07}},
	},
	{
		Code: "MIA", Name: "Miami International Airport", City: "Miami, FL",
		Lat: 25.7959, Lon: -80.287, TrafficIndex: 3, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "JFK", Share: 0.11}, {Code: "ATL", Share: 0.09}, {Code: "LGA", Share: 0.07}},
	},
	{
		Code: "MSP", Name: "Minneapolis–Saint Paul International Airport", City: "Minneapolis, MN",
		Lat: 44.8848, Lon: -93.2223, TrafficIndex: 3, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "DEN", Share: 0.08}, {Code: "ORD", Share: 0.08}, {Code: "ATL", Share: 0.06}},
	},
	{
		Code: "DTW", Name: "Detroit Metropolitan Wayne County Airport", City: "Detroit, MI",
		Lat: 42.2162, Lon: -83.3554, TrafficIndex: 3, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "ORD", Share: 0.08}, {Code: "JFK", Share: 0.07}, {Code: "ATL", Share: 0.06}},
	},
	{
		Code: "PHX", Name: "Phoenix Sky Harbor International Airport", City: "Phoenix, AZ",
		Lat: 33.4342, Lon: -112.0116, TrafficIndex: 3, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "DEN", Share: 0.09}, {Code: "LAX", Share: 0.08}, {Code: "SFO", Share: 0.06}},
	},
	{
		Code: "PHL", Name: "Philadelphia International Airport", City: "Philadelphia, PA",
		Lat: 39.8744, Lon: -75.2424, TrafficIndex: 3, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "ATL", Share: 0.09}, {Code: "BOS", Share: 0.08}, {Code: "MCO", Share: 0.07}},
	},
	{
		Code: "EWR", Name: "Newark Liberty International Airport", City: "Newark, NJ",
		Lat: 40.6895, Lon: -74.1745, TrafficIndex: 3, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "MCO", Share: 0.08}, {Code: "ATL", Share: 0.08}, {Code: "SFO", Share: 0.07}},
	},
	{
		Code: "CLT", Name: "Charlotte Douglas International Airport", City: "Charlotte, NC",
		Lat: 35.2144, Lon: -80.9473, TrafficIndex: 4, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "ATL", Share: 0.12}, {Code: "JFK", Share: 0.07}, {Code: "MCO", Share: 0.07}},
	},
	{
		Code: "IAH", Name: "George Bush Intercontinental Airport", City: "Houston, TX",
		Lat: 29.9902, Lon: -95.3368, TrafficIndex: 4, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "DEN", Share: 0.08}, {Code: "ATL", Share: 0.07}, {Code: "ORD", Share: 0.07}},
	},
	{
		Code: "LGA", Name: "LaGuardia Airport", City: "New York, NY",
		Lat: 40.7769, Lon: -73.874, TrafficIndex: 3, Tracked: true,
		TopRoutes: []models.RouteShare{{Code: "ATL", Share: 0.12}, {Code: "ORD", Share: 0.09}, {Code: "MIA", Share: 0.08}},
	},
	{
		Code: "DCA", Name: "Ronald Reagan Washington National Airport", City: "Washington, DC",
		Lat: 38.8512, Lon: -77.0402, TrafficIndex: 2, Tracked: false,
	},
}
