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

type completeCmd struct{}

func (completeCmd) Name() string { return "complete" }
func (completeCmd) Description() string {
	return "Завершить проверку с вердиктом pass или fail"
}
func (completeCmd) Usage() string { return "complete <id> <pass|fail>" }

func (completeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 || (args[1] != model.StatusPass && args[1] != model.StatusFail) {
		return ErrUsage
	}
	id, verdict := args[0], args[1]

	// Сначала вердикт, потом завершение — как делает и веб-клиент.
	resp, body, err := api.PatchJSON(cfg.ServerURL+"/api/inspections/"+id, map[string]string{"status": verdict})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}

	resp, body, err = api.PostJSON(cfg.ServerURL+"/api/inspections/"+id+"/complete", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusBadRequest {
		var failure struct {
			Message      string   `json:"message"`
			MissingItems []string `json:"missingItems"`
		}
		if json.Unmarshal(body, &failure) == nil && len(failure.MissingItems) > 0 {
			fmt.Fprintln(Out, "Не выполнены обязательные пункты:")
			for _, item := range failure.MissingItems {
				fmt.Fprintf(Out, "  - %s\n", item)
			}
			return fmt.Errorf("inspection is not complete")
		}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}

	var result struct {
		LocalPath string `json:"localPath"`
	}
	_ = json.Unmarshal(body, &result)
	fmt.Fprintf(Out, "Проверка завершена (%s), бэкап: %s\n", verdict, result.LocalPath)
	return nil
}

func init() { RegisterCmd(completeCmd{}) }
