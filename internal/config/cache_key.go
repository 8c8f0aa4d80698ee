package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// MonthlyReportKey returns the cache key for a cached monthly attendance report.
func (r *CacheKeyStruct) MonthlyReportKey(year, month int) string {
	return fmt.Sprintf("report:monthly:%04d-%02d", year, month)
}

var CacheKey = NewCacheKeyStruct()
