// Package timezones lists the reminder time zones offered to learners and
// validates IANA names.
package timezones

import (
	"sort"
	"strings"
	"sync"
	"time"
)

type Zone struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Region string `json:"region,omitempty"`
}

type ZoneGroup struct {
	Region string `json:"region"`
	Zones  []Zone `json:"zones"`
}

var curated = []Zone{
	{ID: "UTC", Label: "Coordinated Universal Time (UTC)", Region: "UTC"},
	{ID: "America/Los_Angeles", Label: "Pacific Time (Los Angeles)", Region: "Americas"},
	{ID: "America/Denver", Label: "Mountain Time (Denver)", Region: "Americas"},
	{ID: "America/Chicago", Label: "Central Time (Chicago)", Region: "Americas"},
	{ID: "America/New_York", Label: "Eastern Time (New York)", Region: "Americas"},
	{ID: "America/Sao_Paulo", Label: "Brasília Time (São Paulo)", Region: "Americas"},
	{ID: "Europe/London", Label: "United Kingdom (London)", Region: "Europe"},
	{ID: "Europe/Paris", Label: "Central European Time (Paris)", Region: "Europe"},
	{ID: "Europe/Berlin", Label: "Central European Time (Berlin)", Region: "Europe"},
	{ID: "Europe/Kyiv", Label: "Eastern European Time (Kyiv)", Region: "Europe"},
	{ID: "Europe/Moscow", Label: "Moscow Time", Region: "Europe"},
	{ID: "Africa/Lagos", Label: "West Africa Time (Lagos)", Region: "Africa"},
	{ID: "Africa/Nairobi", Label: "East Africa Time (Nairobi)", Region: "Africa"},
	{ID: "Asia/Dubai", Label: "Gulf Time (Dubai)", Region: "Asia"},
	{ID: "Asia/Kolkata", Label: "India Standard Time (Kolkata)", Region: "Asia"},
	{ID: "Asia/Singapore", Label: "Singapore Time", Region: "Asia"},
	{ID: "Asia/Shanghai", Label: "China Standard Time (Shanghai)", Region: "Asia"},
	{ID: "Asia/Tokyo", Label: "Japan Standard Time (Tokyo)", Region: "Asia"},
	{ID: "Australia/Sydney", Label: "Australian Eastern Time (Sydney)", Region: "Oceania"},
	{ID: "Pacific/Auckland", Label: "New Zealand Time (Auckland)", Region: "Oceania"},
}

var (
	byID = func() map[string]Zone {
		m := make(map[string]Zone, len(curated))
		for _, z := range curated {
			m[z.ID] = z
		}
		return m
	}()

	groupsOnce sync.Once
	groups     []ZoneGroup
)

// All returns the curated list of zones in a stable order.
func All() []Zone {
	out := make([]Zone, len(curated))
	copy(out, curated)
	return out
}

// Label returns the human-friendly label for an ID, or the ID itself if not found.
func Label(id string) string {
	if z, ok := byID[id]; ok {
		return z.Label
	}
	return id
}

// Valid reports whether id names a loadable IANA zone. Curated zones are
// accepted without a lookup. "" and "Local" are rejected since they depend
// on the server.
func Valid(id string) bool {
	if _, ok := byID[id]; ok {
		return true
	}
	_, err := Location(id)
	return err == nil
}

// Location loads id, rejecting the server-relative names.
func Location(id string) (*time.Location, error) {
	id = strings.TrimSpace(id)
	if id == "" || id == "Local" {
		return nil, &time.ParseError{Value: id, Message: "unknown time zone"}
	}
	return time.LoadLocation(id)
}

// LocationOrUTC loads id, falling back to UTC.
func LocationOrUTC(id string) *time.Location {
	if loc, err := Location(id); err == nil {
		return loc
	}
	return time.UTC
}

// Groups returns the curated zones grouped by region, regions and zones both
// sorted.
func Groups() []ZoneGroup {
	groupsOnce.Do(func() {
		byRegion := make(map[string][]Zone)
		for _, z := range curated {
			byRegion[z.Region] = append(byRegion[z.Region], z)
		}
		out := make([]ZoneGroup, 0, len(byRegion))
		for region, zs := range byRegion {
			sort.SliceStable(zs, func(i, j int) bool { return zs[i].Label < zs[j].Label })
			out = append(out, ZoneGroup{Region: region, Zones: zs})
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Region < out[j].Region })
		groups = out
	})
	return groups
}
