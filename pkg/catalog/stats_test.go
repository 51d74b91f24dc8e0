package catalog

import (
	"reflect"
	"strings"
	"testing"

	"machinity-be/internal/constant"
	"machinity-be/internal/entity"
)

func TestComputeStats(t *testing.T) {
	list := []*entity.Product{
		{Id: "1", Name: "A", Category: "laptop", Brand: "Asus", Price: 20000, RamGb: ip(16), StorageGb: ip(512), Cpu: sp("Intel Core i5"), ScreenInch: fp(15.6), BatteryWh: fp(42), WeightKg: fp(1.7)},
		{Id: "2", Name: "B", Category: "laptop", Brand: "Lenovo", Price: 30000, RamGb: ip(32), StorageGb: ip(512), Cpu: sp("Intel Core i5"), ScreenInch: fp(16), BatteryWh: fp(80), WeightKg: fp(2.4)},
		{Id: "3", Name: "C", Category: "phone", Brand: "Asus", Price: 10000, RamGb: ip(8), Cpu: sp(constant.CpuUnknownPlaceholder), ScreenInch: fp(6.4), WeightKg: fp(0.2)},
	}

	stats := ComputeStats(list, strings.Compare)

	if stats.MinPrice != 10000 || stats.MaxPrice != 30000 {
		t.Errorf("price bounds = [%v,%v], want [10000,30000]", stats.MinPrice, stats.MaxPrice)
	}
	if !reflect.DeepEqual(stats.Categories, []string{"laptop", "phone"}) {
		t.Errorf("categories = %v", stats.Categories)
	}
	if !reflect.DeepEqual(stats.Brands, []string{"Asus", "Lenovo"}) {
		t.Errorf("brands = %v", stats.Brands)
	}
	if !reflect.DeepEqual(stats.RamValues, []int{8, 16, 32}) {
		t.Errorf("ramValues = %v", stats.RamValues)
	}
	if !reflect.DeepEqual(stats.StorageValues, []int{512}) {
		t.Errorf("storageValues = %v", stats.StorageValues)
	}
	// placeholder cpu dropped, duplicate collapsed
	if !reflect.DeepEqual(stats.CpuValues, []string{"Intel Core i5"}) {
		t.Errorf("cpuValues = %v", stats.CpuValues)
	}
	if stats.Screen.Min != 6.4 || stats.Screen.Max != 16 {
		t.Errorf("screen range = %+v", stats.Screen)
	}
	// battery range ignores the product without one
	if stats.Battery.Min != 42 || stats.Battery.Max != 80 {
		t.Errorf("battery range = %+v", stats.Battery)
	}
}

func TestComputeStatsEmptyCollection(t *testing.T) {
	stats := ComputeStats(nil, strings.Compare)

	if stats.MinPrice != 0 || stats.MaxPrice != 0 {
		t.Errorf("price bounds = [%v,%v], want zeros", stats.MinPrice, stats.MaxPrice)
	}
	// slices must be non-nil so they serialize as [] not null
	if stats.Categories == nil || stats.Brands == nil || stats.CpuValues == nil ||
		stats.RamValues == nil || stats.StorageValues == nil {
		t.Error("stats slices must be initialized for an empty collection")
	}
}
