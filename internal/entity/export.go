package entity

import "time"

// ExportVersion is written into every export document.
const ExportVersion = 2

// ExportDocument is the backup file format.
type ExportDocument struct {
	Version   int              `json:"version"`
	CreatedAt time.Time        `json:"createdAt"`
	Squares   [BoardSize]Cell  `json:"squares"`
	UserLists *ResolutionLists `json:"userLists,omitempty"`
}
