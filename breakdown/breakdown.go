package breakdown

import (
	"tracker/db"
	"tracker/models"
)

// CastEntry is one element of a shot's casting: the asset and how many
// times it appears in the shot.
type CastEntry struct {
	AssetID      string `json:"asset_id"`
	NbOccurences int    `json:"nb_occurences"`
}

// GetCasting returns every outbound casting link of the shot in
// insertion order (last full write wins, so this is last-write order).
// A shot without links yields an empty list, never an error.
func GetCasting(shotID string) ([]CastEntry, error) {
	var links []models.EntityLink
	err := db.Instance.
		Where("entity_in_id = ?", shotID).
		Order("id ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	casting := []CastEntry{}
	for _, link := range links {
		casting = append(casting, CastEntry{
			AssetID:      link.EntityOutID,
			NbOccurences: link.NbOccurences,
		})
	}
	return casting, nil
}

// UpdateCasting replaces the whole casting of the shot: every existing
// outbound link is deleted, then one link is created per entry, and the
// input is echoed back. Duplicate asset IDs produce duplicate links -
// occurrence counts are never merged; the client owns dedup.
//
// The delete and the recreates are separate writes. A concurrent reader
// may observe an empty casting between them; that matches the original
// behavior and is deliberately not serialized here.
func UpdateCasting(shotID string, casting []CastEntry) ([]CastEntry, error) {
	shot, err := models.GetEntity(shotID)
	if err != nil {
		return nil, err
	}
	err = db.Instance.
		Where("entity_in_id = ?", shot.ID).
		Delete(&models.EntityLink{}).Error
	if err != nil {
		return nil, err
	}
	for _, entry := range casting {
		link := models.EntityLink{
			EntityInID:   shot.ID,
			EntityOutID:  entry.AssetID,
			NbOccurences: entry.NbOccurences,
		}
		if err = db.Instance.Create(&link).Error; err != nil {
			return nil, err
		}
	}
	return casting, nil
}
