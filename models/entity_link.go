package models

// EntityLink is a weighted directed edge between two entities: the
// casting entity (a shot) and the cast entity (an asset), with how many
// times the asset appears. The autoincrement ID preserves insertion
// order, which is the only ordering the casting read path promises.
type EntityLink struct {
	ID           uint64 `gorm:"primaryKey"`
	CreatedAt    int64
	EntityInID   string `gorm:"type:varchar(36);index;not null"`
	EntityIn     Entity `gorm:"foreignKey:EntityInID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	EntityOutID  string `gorm:"type:varchar(36);index;not null"`
	EntityOut    Entity `gorm:"foreignKey:EntityOutID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	NbOccurences int    `gorm:"not null;default:1"`
}
