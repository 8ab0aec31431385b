package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"roadworthy/internal/checklist"
	"roadworthy/internal/cli/api"
	"roadworthy/internal/config"
	"roadworthy/internal/model"
)

type showCmd struct{}

func (showCmd) Name() string { return "show" }
func (showCmd) Description() string {
	return "Показать проверку с прогрессом чек-листа"
}
func (showCmd) Usage() string { return "show <id>" }

func (showCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	resp, body, err := api.GetJSON(cfg.ServerURL + "/api/inspections/" + args[0])
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}
	var insp model.Inspection
	if err := json.Unmarshal(body, &insp); err != nil {
		return err
	}

	// Настройки нужны для required-пунктов и порядка; без них движок
	// прогресса считает по всем пунктам.
	var settings *model.Settings
	if resp, body, err := api.GetJSON(cfg.ServerURL + "/api/settings"); err == nil && resp.StatusCode == http.StatusOK {
		var s model.Settings
		if json.Unmarshal(body, &s) == nil {
			settings = &s
		}
	}

	fmt.Fprintf(Out, "%s  %s  test=%d  status=%s\n", insp.ID, insp.RoadworthyNumber, insp.TestNumber, insp.Status)
	if insp.ClientName != "" {
		fmt.Fprintf(Out, "client: %s\n", insp.ClientName)
	}
	if insp.VehicleDescription != "" {
		fmt.Fprintf(Out, "vehicle: %s\n", insp.VehicleDescription)
	}

	p := checklist.Progress(&insp, settings)
	fmt.Fprintf(Out, "progress: %d/%d (%d%%)\n", p.Completed, p.Total, p.Percentage)

	for _, item := range checklist.DisplayOrder(settings) {
		st := checklist.ItemStatus(item, &insp, settings)
		mark := " "
		if st.Completed {
			mark = "x"
		}
		req := ""
		if st.Required {
			req = " *"
		}
		fmt.Fprintf(Out, "  [%s] %s%s (photos: %d)\n", mark, item, req, st.PhotoCount)
	}
	return nil
}

func init() { RegisterCmd(showCmd{}) }
