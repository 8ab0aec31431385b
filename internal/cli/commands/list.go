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

type listCmd struct{}

func (listCmd) Name() string { return "list" }
func (listCmd) Description() string {
	return "Показать проверки (все, в работе или завершённые)"
}
func (listCmd) Usage() string { return "list [in-progress|completed]" }

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	url := cfg.ServerURL + "/api/inspections"
	switch {
	case len(args) == 0:
	case len(args) == 1 && (args[0] == "in-progress" || args[0] == "completed"):
		url += "/" + args[0]
	default:
		return ErrUsage
	}

	resp, body, err := api.GetJSON(url)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}

	var list []model.Inspection
	if err := json.Unmarshal(body, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет проверок")
		return nil
	}
	for _, insp := range list {
		fmt.Fprintf(Out, "- %s  %s  test=%d  status=%s  client=%q\n",
			insp.ID, insp.RoadworthyNumber, insp.TestNumber, insp.Status, insp.ClientName)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

func init() { RegisterCmd(listCmd{}) }
