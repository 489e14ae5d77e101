package utils

// AuthCookieName is the signed Firebase session cookie set on login.
const AuthCookieName = "uprocket-auth"

// DurationPriceUSD maps a consultation length in minutes to its price in
// whole dollars. Checkout refuses durations outside this map.
var DurationPriceUSD = map[int]int64{
	30: 5,
	60: 10,
}
