package geofence

import "math"

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000.0

// Validator memutuskan apakah sebuah koordinat berada di dalam radius site.
// Pure function, tanpa side effect; koordinat harus sudah divalidasi caller.
type Validator struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

func NewValidator(lat, lon, radiusMeters float64) *Validator {
	return &Validator{
		Latitude:     lat,
		Longitude:    lon,
		RadiusMeters: radiusMeters,
	}
}

// Distance menghitung jarak permukaan (meter) dari koordinat ke site
// menggunakan formula haversine.
func (v *Validator) Distance(lat, lon float64) float64 {
	dLat := degToRad(v.Latitude - lat)
	dLon := degToRad(v.Longitude - lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(lat))*math.Cos(degToRad(v.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// IsWithinRange mengembalikan jarak terukur dan apakah masih dalam radius.
// Batas radius inklusif: tepat di radius masih diterima.
func (v *Validator) IsWithinRange(lat, lon float64) (float64, bool) {
	distance := v.Distance(lat, lon)
	return distance, distance <= v.RadiusMeters
}

// ValidCoordinates memeriksa kontrak input: derajat finite di domain WGS84.
func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
