package commands

import (
	"context"
	"fmt"
	"net/http"

	"roadworthy/internal/cli/api"
	"roadworthy/internal/config"
)

type deleteCmd struct{}

func (deleteCmd) Name() string { return "delete" }
func (deleteCmd) Description() string {
	return "Удалить проверку и её рабочие файлы"
}
func (deleteCmd) Usage() string { return "delete <id>" }

func (deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	resp, body, err := api.Delete(cfg.ServerURL + "/api/inspections/" + args[0])
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}
	fmt.Fprintln(Out, "Проверка удалена")
	return nil
}

func init() { RegisterCmd(deleteCmd{}) }
