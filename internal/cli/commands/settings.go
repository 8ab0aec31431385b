package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"roadworthy/internal/cli/api"
	"roadworthy/internal/config"
	"roadworthy/internal/model"
)

type settingsCmd struct{}

func (settingsCmd) Name() string { return "settings" }
func (settingsCmd) Description() string {
	return "Показать настройки чек-листа"
}
func (settingsCmd) Usage() string { return "settings" }

func (settingsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}

	resp, body, err := api.GetJSON(cfg.ServerURL + "/api/settings")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}

	var s model.Settings
	if err := json.Unmarshal(body, &s); err != nil {
		return err
	}

	for _, item := range model.ChecklistItems {
		fmt.Fprintf(Out, "  %-28s %s\n", item, s.ItemLevel(item))
	}
	if s.NetworkFolderPath != "" {
		fmt.Fprintf(Out, "network folder: %s (user %q)\n", s.NetworkFolderPath, s.NetworkUsername)
	}
	if s.LogoURL != "" {
		fmt.Fprintf(Out, "logo: %s\n", s.LogoURL)
	}
	return nil
}

func init() { RegisterCmd(settingsCmd{}) }

type settingsSetCmd struct{}

func (settingsSetCmd) Name() string { return "settings-set" }
func (settingsSetCmd) Description() string {
	return "Изменить уровень пункта чек-листа"
}
func (settingsSetCmd) Usage() string { return "settings-set <item-name> <required|optional|hidden>" }

func (settingsSetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	item, level := args[0], args[1]

	// read-modify-write: сервер принимает карту целиком
	resp, body, err := api.GetJSON(cfg.ServerURL + "/api/settings")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}
	var s model.Settings
	if err := json.Unmarshal(body, &s); err != nil {
		return err
	}

	if s.ChecklistItemSettings == nil {
		s.ChecklistItemSettings = map[string]string{}
	}
	s.ChecklistItemSettings[item] = level

	resp, body, err = api.PatchJSON(cfg.ServerURL+"/api/settings", map[string]any{
		"checklistItemSettings": s.ChecklistItemSettings,
	})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}
	fmt.Fprintf(Out, "%s -> %s\n", item, level)
	return nil
}

func init() { RegisterCmd(settingsSetCmd{}) }
