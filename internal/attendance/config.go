package attendance

import "time"

// GatingConfig adalah konfigurasi deployment untuk engine gating. Nilai
// default mengikuti site kantor pusat; semuanya bisa dioverride lewat env
// di registry.
type GatingConfig struct {
	SiteLatitude            float64
	SiteLongitude           float64
	AllowedRadiusMeters     float64
	FaceConfidenceThreshold float64
	DeviceExclusivity       bool
	SyncEnabled             bool
	Timezone                *time.Location
	HistoryLimit            int
}

func DefaultGatingConfig() GatingConfig {
	loc, err := time.LoadLocation("Asia/Kuala_Lumpur")
	if err != nil {
		loc = time.UTC
	}
	return GatingConfig{
		SiteLatitude:            3.1390,
		SiteLongitude:           101.6869,
		AllowedRadiusMeters:     150,
		FaceConfidenceThreshold: 0.8,
		DeviceExclusivity:       true,
		SyncEnabled:             true,
		Timezone:                loc,
		HistoryLimit:            30,
	}
}
