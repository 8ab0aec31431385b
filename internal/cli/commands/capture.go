package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"roadworthy/internal/camera"
	"roadworthy/internal/cli/api"
	"roadworthy/internal/config"
)

type captureCmd struct{}

func (captureCmd) Name() string { return "capture" }
func (captureCmd) Description() string {
	return "Снять кадр «камерой» из каталога и загрузить его для пункта"
}
func (captureCmd) Usage() string { return "capture <id> <item-name> <frames-dir>" }

// Run прогоняет полный путь захвата: лестница ограничений → кадр → JPEG →
// multipart-загрузка. Поток всегда освобождается, даже при ошибке загрузки.
func (captureCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	id, item, framesDir := args[0], args[1], args[2]

	session := camera.NewSession(&camera.FileDevice{Dir: framesDir}, camera.FacingMode(cfg.CameraFacing))
	defer session.Close()

	if err := session.Start(ctx); err != nil {
		switch {
		case errors.Is(err, camera.ErrPermissionDenied):
			return fmt.Errorf("camera access denied: %w", err)
		case errors.Is(err, camera.ErrNoCamera):
			return fmt.Errorf("no camera available in %s: %w", framesDir, err)
		case errors.Is(err, camera.ErrStartTimeout):
			return fmt.Errorf("camera did not start in time: %w", err)
		default:
			return err
		}
	}

	photo, err := session.Capture(ctx)
	if err != nil {
		return err
	}

	resp, body, err := api.UploadPhoto(cfg.ServerURL+"/api/inspections/"+id+"/photos", item, "capture.jpg", photo)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}

	fmt.Fprintf(Out, "Фото загружено для пункта %q (%d байт)\n", item, len(photo))
	return nil
}

func init() { RegisterCmd(captureCmd{}) }
