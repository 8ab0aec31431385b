package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"roadworthy/internal/cli/api"
	"roadworthy/internal/config"
)

type checklistCmd struct{}

func (checklistCmd) Name() string { return "checklist" }
func (checklistCmd) Description() string {
	return "Показать фиксированный словарь пунктов"
}
func (checklistCmd) Usage() string { return "checklist" }

func (checklistCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}

	resp, body, err := api.GetJSON(cfg.ServerURL + "/api/checklist-items")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}

	var items []string
	if err := json.Unmarshal(body, &items); err != nil {
		return err
	}
	for _, item := range items {
		fmt.Fprintf(Out, "- %s\n", item)
	}
	return nil
}

func init() { RegisterCmd(checklistCmd{}) }
