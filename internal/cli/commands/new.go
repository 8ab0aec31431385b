package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"roadworthy/internal/cli/api"
	"roadworthy/internal/config"
	"roadworthy/internal/model"
	"roadworthy/internal/service"
)

type newCmd struct{}

func (newCmd) Name() string { return "new" }
func (newCmd) Description() string {
	return "Создать новую проверку"
}
func (newCmd) Usage() string { return "new <roadworthy-number> [client-name] [vehicle]" }

func (newCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return ErrUsage
	}

	req := service.CreateRequest{RoadworthyNumber: args[0]}
	if len(args) > 1 {
		req.ClientName = args[1]
	}
	if len(args) > 2 {
		req.VehicleDescription = args[2]
	}

	resp, body, err := api.PostJSON(cfg.ServerURL+"/api/inspections", req)
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
	fmt.Fprintf(Out, "Создана проверка %s (%s)\n", insp.ID, insp.RoadworthyNumber)
	return nil
}

func init() { RegisterCmd(newCmd{}) }
