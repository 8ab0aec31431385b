package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"roadworthy/internal/cli/api"
	"roadworthy/internal/config"
)

type photoDelCmd struct{}

func (photoDelCmd) Name() string { return "photo-del" }
func (photoDelCmd) Description() string {
	return "Удалить фото пункта по позиции"
}
func (photoDelCmd) Usage() string { return "photo-del <id> <item-name> <index>" }

func (photoDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}

	u := cfg.ServerURL + "/api/inspections/" + args[0] + "/photos/" + url.PathEscape(args[1]) + "/" + args[2]
	resp, body, err := api.Delete(u)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}
	fmt.Fprintln(Out, "Фото удалено")
	return nil
}

func init() { RegisterCmd(photoDelCmd{}) }
