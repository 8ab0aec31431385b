package service

import (
	"context"
	"errors"
	"strings"

	"roadworthy/internal/model"
	"roadworthy/internal/repo"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidLevel — неизвестный уровень требования для пункта чек-листа.
var ErrInvalidLevel = errors.New("invalid checklist item level")

// SettingsService управляет единственной строкой настроек.
type SettingsService struct {
	settings repo.SettingsRepository
}

func NewSettingsService(settings repo.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// SettingsUpdate — частичное обновление настроек. NetworkPassword приходит
// открытым текстом и хранится только как bcrypt-хеш.
type SettingsUpdate struct {
	ChecklistItemSettings map[string]string `json:"checklistItemSettings"`
	ChecklistItemOrder    []string          `json:"checklistItemOrder"`
	NetworkFolderPath     *string           `json:"networkFolderPath"`
	NetworkUsername       *string           `json:"networkUsername"`
	NetworkPassword       *string           `json:"networkPassword"`
}

func (s *SettingsService) Get(ctx context.Context) (*model.Settings, error) {
	return s.settings.Get(ctx)
}

// Update применяет изменения и возвращает свежую строку настроек.
func (s *SettingsService) Update(ctx context.Context, upd SettingsUpdate) (*model.Settings, error) {
	cur, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	if upd.ChecklistItemSettings != nil {
		for item, lvl := range upd.ChecklistItemSettings {
			if !model.IsChecklistItem(item) {
				return nil, ErrUnknownItem
			}
			if lvl != model.LevelRequired && lvl != model.LevelOptional && lvl != model.LevelHidden {
				return nil, ErrInvalidLevel
			}
		}
		cur.ChecklistItemSettings = upd.ChecklistItemSettings
	}
	if upd.ChecklistItemOrder != nil {
		cur.ChecklistItemOrder = upd.ChecklistItemOrder
	}
	if upd.NetworkFolderPath != nil {
		cur.NetworkFolderPath = *upd.NetworkFolderPath
	}
	if upd.NetworkUsername != nil {
		cur.NetworkUsername = *upd.NetworkUsername
	}
	if upd.NetworkPassword != nil && strings.TrimSpace(*upd.NetworkPassword) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.NetworkPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		cur.NetworkPasswordHash = string(hash)
	}

	if err := s.settings.Save(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

// SetLogo сохраняет путь к загруженному логотипу.
func (s *SettingsService) SetLogo(ctx context.Context, logoURL string) (*model.Settings, error) {
	cur, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	cur.LogoURL = logoURL
	if err := s.settings.Save(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}
