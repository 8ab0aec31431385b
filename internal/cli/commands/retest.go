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

type retestCmd struct{}

func (retestCmd) Name() string { return "retest" }
func (retestCmd) Description() string {
	return "Создать повторную проверку с тем же номером"
}
func (retestCmd) Usage() string { return "retest <id>" }

func (retestCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	resp, body, err := api.PostJSON(cfg.ServerURL+"/api/inspections/"+args[0]+"/retest", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}

	var insp model.Inspection
	if err := json.Unmarshal(body, &insp); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Создан retest %s (%s, test=%d)\n", insp.ID, insp.RoadworthyNumber, insp.TestNumber)
	return nil
}

func init() { RegisterCmd(retestCmd{}) }
