package summarize

import (
	"wmrc/salesforce"
)

// FacilityInfo is the contact information for one facility, taken from its
// most recently modified report.
type FacilityInfo struct {
	Name    string
	Phone   string
	Website string
	DropOff string
}

// LatestFacilityInfo collects each facility's current name, phone, website
// and drop-off answer, keyed by public id. When a facility has several
// records, the most recently modified one wins so stale contact info from
// older reports doesn't overwrite newer corrections.
func LatestFacilityInfo(records *salesforce.Records) map[string]FacilityInfo {
	latest := make(map[string]int)
	for i := range records.Rows {
		record := &records.Rows[i]
		id := record.PublicID()
		// On identical timestamps the later row wins, same as deduplication
		if prev, ok := latest[id]; ok && records.Rows[prev].LastModified.After(record.LastModified) {
			continue
		}
		latest[id] = i
	}

	info := make(map[string]FacilityInfo, len(latest))
	for id, i := range latest {
		record := &records.Rows[i]
		info[id] = FacilityInfo{
			Name:    record.FacilityName,
			Phone:   record.Phone,
			Website: record.Website,
			DropOff: record.DropOff,
		}
	}
	return info
}
