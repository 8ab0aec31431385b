package model

import "time"

// Settings — единственная строка глобальной конфигурации чек-листа.
// The row is created lazily with defaults on first DB init.
type Settings struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	// item name -> required | optional | hidden. Missing keys mean optional.
	ChecklistItemSettings map[string]string `gorm:"serializer:json" json:"checklistItemSettings"`

	// Explicit display order; empty means the legacy fallback ordering.
	ChecklistItemOrder []string `gorm:"serializer:json" json:"checklistItemOrder"`

	// Network share the completed backups are mirrored to. The password is
	// stored hashed and never leaves the server.
	NetworkFolderPath   string `gorm:"not null;default:''" json:"networkFolderPath"`
	NetworkUsername     string `gorm:"not null;default:''" json:"networkUsername"`
	NetworkPasswordHash string `gorm:"not null;default:''" json:"-"`

	LogoURL string `gorm:"not null;default:''" json:"logoUrl"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ItemLevel returns the configured requirement level for an item,
// defaulting to optional when settings carry no entry for it.
func (s *Settings) ItemLevel(item string) string {
	if s == nil || s.ChecklistItemSettings == nil {
		return LevelOptional
	}
	if lvl, ok := s.ChecklistItemSettings[item]; ok && lvl != "" {
		return lvl
	}
	return LevelOptional
}
