package refdata

import "github.com/bobby-s-dev/airport-delays/internal/models"

// snapshotRecords was recorded on the evening of 2023-07-18 during a convective event in the east.
var snapshotRecords = map[string]models.SnapshotRecord{
	"ATL": {
		Delay: true, AvgDelayMinutes: 32, MaxDelayMinutes: 58, MinDelayMinutes: 18,
		Reason: "Ground delay program from thunderstorms across northern Georgia.",
		Trend:  "Improving",
		Weather: models.Weather{Summary: "Thunderstorms", Temperature: "82°F", Wind: "SW 12 kt", Visibility: "3 mi"},
		FetchedAt: "2023-07-18T23:05:00Z",
	},
	"LAX": {
		Delay: true, AvgDelayMinutes: 12, MaxDelayMinutes: 25, MinDelayMinutes: 6,
		Reason: "Low marine layer is slowing arrivals on the south complex.",
		Trend:  "Steady",
		Weather: models.Weather{Summary: "Low clouds", Temperature: "67°F", Wind: "W 9 kt", Visibility: "6 mi"},
		FetchedAt: "2023-07-18T22:45:00Z",
	},
	"ORD": {
		Delay: true, AvgDelayMinutes: 24, MaxDelayMinutes: 44, MinDelayMinutes: 12,
		Reason: "Low ceilings and traffic volume creating an arrival metering program.",
		Trend:  "Rising",
		Weather: models.Weather{Summary: "Overcast", Temperature: "71°F", Wind: "NE 8 kt", Visibility: "5 mi"},
		FetchedAt: "2023-07-18T23:15:00Z",
	},
	"DFW": {
		Delay: true, AvgDelayMinutes: 16, MaxDelayMinutes: 34, MinDelayMinutes: 8,
		Reason: "Thunderstorm cells in the departure corridor.",
		Trend:  "Improving",
		Weather: models.Weather{Summary: "Scattered storms", Temperature: "86°F", Wind: "S 14 kt", Visibility: "8 mi"},
		FetchedAt: "2023-07-18T22:58:00Z",
	},
	"DEN": {
		Delay: true, AvgDelayMinutes: 8, MaxDelayMinutes: 18, MinDelayMinutes: 4,
		Reason: "Gusty winds are extending taxi-out times.",
		Trend:  "Steady",
		Weather: models.Weather{Summary: "Windy", Temperature: "79°F", Wind: "NW 18 kt", Visibility: "10 mi"},
		FetchedAt: "2023-07-18T22:40:00Z",
	},
	"JFK": {
		Delay: true, AvgDelayMinutes: 28, MaxDelayMinutes: 52, MinDelayMinutes: 16,
		Reason: "Ground delay program because of evening thunderstorms over Long Island.",
		Trend:  "Rising",
		Weather: models.Weather{Summary: "Thunderstorms", Temperature: "79°F", Wind: "S 11 kt", Visibility: "4 mi"},
		FetchedAt: "2023-07-18T23:10:00Z",
	},
	"SFO": {
		Delay: true, AvgDelayMinutes: 35, MaxDelayMinutes: 62, MinDelayMinutes: 20,
		Reason: "Low ceilings require single runway operations.",
		Trend:  "Steady",
		Weather: models.Weather{Summary: "Fog", Temperature: "61°F", Wind: "W 16 kt", Visibility: "2 mi"},
		FetchedAt: "2023-07-18T21:55:00Z",
	},
	"SEA": {
		Delay: true, AvgDelayMinutes: 6, MaxDelayMinutes: 14, MinDelayMinutes: 3,
		Reason: "Low clouds and runway construction reducing capacity.",
		Trend:  "Improving",
		Weather: models.Weather{Summary: "Low clouds", Temperature: "64°F", Wind: "S 6 kt", Visibility: "7 mi"},
		FetchedAt: "2023-07-18T22:30:00Z",
	},
	"MCO": {
		Delay: true, AvgDelayMinutes: 18, MaxDelayMinutes: 36, MinDelayMinutes: 10,
		Reason: "Pop-up storms south of Orlando slowing departures.",
		Trend:  "Steady",
		Weather: models.Weather{Summary: "Thunderstorms", Temperature: "84°F", Wind: "SE 9 kt", Visibility: "5 mi"},
		FetchedAt: "2023-07-18T22:20:00Z",
	},
	"LAS": {
		Delay: true, AvgDelayMinutes: 10, MaxDelayMinutes: 21, MinDelayMinutes: 5,
		Reason: "High winds producing occasional ground stops.",
		Trend:  "Improving",
		Weather: models.Weather{Summary: "Windy", Temperature: "96°F", Wind: "SW 22 kt", Visibility: "10 mi"},
		FetchedAt: "2023-07-18T22:05:00Z",
	},
	"BOS": {
		Delay: true, AvgDelayMinutes: 22, MaxDelayMinutes: 41, MinDelayMinutes: 12,
		Reason: "Low ceilings and volume creating arrival metering.",
		Trend:  "Steady",
		Weather: models.Weather{Summary: "Low clouds", Temperature: "68°F", Wind: "NE 10 kt", Visibility: "4 mi"},
		FetchedAt: "2023-07-18T22:55:00Z",
	},
	"MIA": {
		Delay: true, AvgDelayMinutes: 14, MaxDelayMinutes: 30, MinDelayMinutes: 7,
		Reason: "Tropical showers south of the field slowing departures.",
		Trend:  "Steady",
		Weather: models.Weather{Summary: "Showers", Temperature: "86°F", Wind: "E 13 kt", Visibility: "6 mi"},
		FetchedAt: "2023-07-18T22:12:00Z",
	},
	"MSP": {
		Delay: true, AvgDelayMinutes: 7, MaxDelayMinutes: 15, MinDelayMinutes: 3,
		Reason: "Northwest winds forcing longer taxi routes.",
		Trend:  "Improving",
		Weather: models.Weather{Summary: "Windy", Temperature: "72°F", Wind: "NW 17 kt", Visibility: "10 mi"},
		FetchedAt: "2023-07-18T22:18:00Z",
	},
	"DTW": {
		Delay: true, AvgDelayMinutes: 9, MaxDelayMinutes: 19, MinDelayMinutes: 4,
		Reason: "Tower staffing program moderating departures.",
		Trend:  "Steady",
		Weather: models.Weather{Summary: "Overcast", Temperature: "73°F", Wind: "NE 9 kt", Visibility: "5 mi"},
		FetchedAt: "2023-07-18T22:24:00Z",
	},
	"PHX": {
		Delay: true, AvgDelayMinutes: 5, MaxDelayMinutes: 12, MinDelayMinutes: 2,
		Reason: "Summer heat slowing ramp operations.",
		Trend:  "Steady",
		Weather: models.Weather{Summary: "Hot", Temperature: "103°F", Wind: "SW 6 kt", Visibility: "8 mi"},
		FetchedAt: "2023-07-18T21:58:00Z",
	},
	"PHL": {
		Delay: true, AvgDelayMinutes: 19, MaxDelayMinutes: 37, MinDelayMinutes: 9,
		Reason: "Thunderstorms west of the airport creating reroutes.",
		Trend:  "Rising",
		Weather: models.Weather{Summary: "Storms nearby", Temperature: "78°F", Wind: "SW 15 kt", Visibility: "5 mi"},
		FetchedAt: "2023-07-18T23:02:00Z",
	},
	"EWR": {
		Delay: true, AvgDelayMinutes: 30, MaxDelayMinutes: 55, MinDelayMinutes: 18,
		Reason: "Arrival holding due to thunderstorms over New Jersey.",
		Trend:  "Rising",
		Weather: models.Weather{Summary: "Thunderstorms", Temperature: "78°F", Wind: "S 14 kt", Visibility: "3 mi"},
		FetchedAt: "2023-07-18T23:07:00Z",
	},
	"CLT": {
		Delay: true, AvgDelayMinutes: 12, MaxDelayMinutes: 25, MinDelayMinutes: 6,
		Reason: "Flow control from convective activity in the Carolinas.",
		Trend:  "Steady",
		Weather: models.Weather{Summary: "Storms", Temperature: "83°F", Wind: "SW 12 kt", Visibility: "6 mi"},
		FetchedAt: "2023-07-18T22:35:00Z",
	},
	"IAH": {
		Delay: true, AvgDelayMinutes: 8, MaxDelayMinutes: 17, MinDelayMinutes: 4,
		Reason: "Gulf moisture and ramp restrictions.",
		Trend:  "Improving",
		Weather: models.Weather{Summary: "Humid", Temperature: "88°F", Wind: "SE 10 kt", Visibility: "7 mi"},
		FetchedAt: "2023-07-18T22:08:00Z",
	},
	"LGA": {
		Delay: true, AvgDelayMinutes: 27, MaxDelayMinutes: 48, MinDelayMinutes: 14,
		Reason: "Evening thunderstorms causing ground delay programs.",
		Trend:  "Rising",
		Weather: models.Weather{Summary: "Thunderstorms", Temperature: "77°F", Wind: "S 16 kt", Visibility: "4 mi"},
		FetchedAt: "2023-07-18T23:12:00Z",
	},
}
