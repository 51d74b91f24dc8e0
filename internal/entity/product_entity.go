package entity

import (
	"math"
	"strings"

	"machinity-be/internal/constant"
)

// Product is the canonical catalog entity. Optional numeric fields are
// pointers: nil means absent, which is distinct from zero (a rating of 0 is
// a real rating). Served as-is by the listing API, hence the json tags.
type Product struct {
	Id       string  `gorm:"primaryKey" json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Category string  `gorm:"index" json:"category" validate:"required"`
	Brand    string  `gorm:"index" json:"brand" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`

	Rating   *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	WeightKg *float64 `json:"weight_kg,omitempty"`
	Cpu      *string  `json:"cpu,omitempty"`

	RamGb     *int `json:"ram_gb,omitempty"`
	StorageGb *int `json:"storage_gb,omitempty"`

	ScreenInch *float64 `json:"screen_inch,omitempty"`
	BatteryWh  *float64 `json:"battery_wh,omitempty"`
	ImageUrl   *string  `json:"image_url,omitempty"`
}

// CpuValue returns the trimmed CPU string, or ok=false when the CPU is
// absent, blank, or the "—" placeholder.
func (p *Product) CpuValue() (string, bool) {
	if p.Cpu == nil {
		return "", false
	}
	s := strings.TrimSpace(*p.Cpu)
	if s == "" || s == constant.CpuUnknownPlaceholder {
		return "", false
	}
	return s, true
}

// Normalize drops the CPU placeholder so the sentinel never leaks past the
// repository layer.
func (p *Product) Normalize() {
	if _, ok := p.CpuValue(); !ok {
		p.Cpu = nil
	}
}

// Finite reports whether an optional numeric field holds a usable value.
func Finite(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}
