package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"roadworthy/internal/backup"
	"roadworthy/internal/checklist"
	"roadworthy/internal/model"
	"roadworthy/internal/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ошибки уровня сервиса; хендлеры переводят их в HTTP-статусы.
var (
	ErrNumberRequired  = errors.New("roadworthy number is required")
	ErrDuplicateNumber = errors.New("roadworthy number already exists")
	ErrUnknownItem     = errors.New("unknown checklist item")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrPhotoNotFound   = errors.New("photo not found")
)

// ErrMissingItems blocks completion and carries the unmet required items.
type ErrMissingItems struct {
	Items []string
}

func (e *ErrMissingItems) Error() string {
	return fmt.Sprintf("missing required items: %v", e.Items)
}

// InspectionService реализует жизненный цикл проверки:
// create → фото/отметки → complete (pass/fail), retest, delete.
//
// Known limitation: roadworthyNumber uniqueness is a pre-insert lookup, not a
// DB constraint (retests legitimately share the number), so two concurrent
// creates with the same number can both succeed.
type InspectionService struct {
	inspections repo.InspectionRepository
	settings    repo.SettingsRepository
	local       *backup.Local
	remote      backup.Remote
	uploadDir   string
	logger      *zap.SugaredLogger
}

func NewInspectionService(
	inspections repo.InspectionRepository,
	settings repo.SettingsRepository,
	local *backup.Local,
	remote backup.Remote,
	uploadDir string,
	logger *zap.SugaredLogger,
) *InspectionService {
	return &InspectionService{
		inspections: inspections,
		settings:    settings,
		local:       local,
		remote:      remote,
		uploadDir:   uploadDir,
		logger:      logger,
	}
}

// CreateRequest — входные данные создания проверки.
type CreateRequest struct {
	RoadworthyNumber   string `json:"roadworthyNumber"`
	ClientName         string `json:"clientName"`
	VehicleDescription string `json:"vehicleDescription"`
}

// UpdateRequest is a partial update; nil fields are left untouched.
// An empty update is the "save" no-op that only refreshes UpdatedAt.
type UpdateRequest struct {
	ClientName         *string `json:"clientName"`
	VehicleDescription *string `json:"vehicleDescription"`
	Status             *string `json:"status"`
}

// CompleteResult reports where the backup landed and how the remote leg went.
type CompleteResult struct {
	Inspection  *model.Inspection
	LocalPath   string
	RemoteError error // nil when uploaded or not configured
}

func newChecklistState() map[string]bool {
	m := make(map[string]bool, len(model.ChecklistItems))
	for _, item := range model.ChecklistItems {
		m[item] = false
	}
	return m
}

// Create регистрирует новую проверку с пустым чек-листом.
func (s *InspectionService) Create(ctx context.Context, req CreateRequest) (*model.Inspection, error) {
	if req.RoadworthyNumber == "" {
		return nil, ErrNumberRequired
	}

	// Check-then-act: see the type comment about the race.
	_, err := s.inspections.GetByRoadworthyNumber(ctx, req.RoadworthyNumber)
	if err == nil {
		return nil, ErrDuplicateNumber
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	insp := &model.Inspection{
		ID:                 uuid.NewString(),
		RoadworthyNumber:   req.RoadworthyNumber,
		ClientName:         req.ClientName,
		VehicleDescription: req.VehicleDescription,
		Status:             model.StatusInProgress,
		ChecklistItems:     newChecklistState(),
		Photos:             map[string][]string{},
		TestNumber:         1,
	}
	if err := s.inspections.Create(ctx, insp); err != nil {
		return nil, err
	}
	return insp, nil
}

func (s *InspectionService) Get(ctx context.Context, id string) (*model.Inspection, error) {
	return s.inspections.GetByID(ctx, id)
}

func (s *InspectionService) ListAll(ctx context.Context) ([]model.Inspection, error) {
	return s.inspections.ListAll(ctx)
}

func (s *InspectionService) ListInProgress(ctx context.Context) ([]model.Inspection, error) {
	return s.inspections.ListInProgress(ctx)
}

func (s *InspectionService) ListCompleted(ctx context.Context) ([]model.Inspection, error) {
	return s.inspections.ListCompleted(ctx)
}

// Update применяет частичное обновление. Пустой запрос — "save": только
// освежает UpdatedAt.
func (s *InspectionService) Update(ctx context.Context, id string, req UpdateRequest) (*model.Inspection, error) {
	insp, err := s.inspections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ClientName != nil {
		insp.ClientName = *req.ClientName
	}
	if req.VehicleDescription != nil {
		insp.VehicleDescription = *req.VehicleDescription
	}
	if req.Status != nil {
		if !model.ValidStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		insp.Status = *req.Status
	}

	if err := s.inspections.Save(ctx, insp); err != nil {
		return nil, err
	}
	return insp, nil
}

// setItemPhotos is the only place that writes Photos and ChecklistItems for
// an item, keeping the two in lockstep: an item is completed exactly when it
// has photos. Empty lists are pruned.
func setItemPhotos(insp *model.Inspection, item string, photos []string) {
	if insp.Photos == nil {
		insp.Photos = map[string][]string{}
	}
	if insp.ChecklistItems == nil {
		insp.ChecklistItems = map[string]bool{}
	}
	if len(photos) == 0 {
		delete(insp.Photos, item)
		insp.ChecklistItems[item] = false
		return
	}
	insp.Photos[item] = photos
	insp.ChecklistItems[item] = true
}

// AttachPhoto appends an uploaded photo reference to an item and marks the
// item completed.
func (s *InspectionService) AttachPhoto(ctx context.Context, id, item, filename string) (*model.Inspection, error) {
	if !model.IsChecklistItem(item) {
		return nil, ErrUnknownItem
	}
	insp, err := s.inspections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setItemPhotos(insp, item, append(insp.Photos[item], "/api/photos/"+filename))

	if err := s.inspections.Save(ctx, insp); err != nil {
		return nil, err
	}
	return insp, nil
}

// RemovePhoto removes one photo by position. Removing the last photo of an
// item un-completes it — the only transition back to false.
func (s *InspectionService) RemovePhoto(ctx context.Context, id, item string, index int) (*model.Inspection, error) {
	insp, err := s.inspections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	photos := insp.Photos[item]
	if index < 0 || index >= len(photos) {
		return nil, ErrPhotoNotFound
	}
	remaining := make([]string, 0, len(photos)-1)
	remaining = append(remaining, photos[:index]...)
	remaining = append(remaining, photos[index+1:]...)
	setItemPhotos(insp, item, remaining)

	if err := s.inspections.Save(ctx, insp); err != nil {
		return nil, err
	}
	return insp, nil
}

// Complete гейтит завершение по required-пунктам, делает локальный бэкап с
// отчётом и ставит completedAt. Удалённая загрузка — best-effort: её провал
// логируется и отдаётся в результате, но не откатывает локальный бэкап.
func (s *InspectionService) Complete(ctx context.Context, id string) (*CompleteResult, error) {
	insp, err := s.inspections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	if ok, missing := checklist.CanComplete(insp, settings); !ok {
		return nil, &ErrMissingItems{Items: missing}
	}

	completedAt := time.Now().UTC()
	localPath, err := s.local.Write(insp, completedAt)
	if err != nil {
		return nil, err
	}

	var remoteErr error
	if s.remote != nil && settings != nil && settings.NetworkFolderPath != "" {
		prefix := path.Join(settings.NetworkFolderPath, insp.RoadworthyNumber)
		if remoteErr = s.remote.Mirror(ctx, localPath, prefix); remoteErr != nil {
			s.logger.Warnw("remote backup failed, photos saved locally",
				"inspection_id", insp.ID, "prefix", prefix, "error", remoteErr)
		}
	}

	insp.CompletedAt = &completedAt
	if err := s.inspections.Save(ctx, insp); err != nil {
		return nil, err
	}

	return &CompleteResult{Inspection: insp, LocalPath: localPath, RemoteError: remoteErr}, nil
}

// Retest создаёт новую проверку-сиблинг с тем же номером и пустым прогрессом.
// The original row is never touched.
func (s *InspectionService) Retest(ctx context.Context, id string) (*model.Inspection, error) {
	original, err := s.inspections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	all, err := s.inspections.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	maxTest := 0
	for _, other := range all {
		if other.RoadworthyNumber != original.RoadworthyNumber {
			continue
		}
		n := other.TestNumber
		if n < 1 {
			n = 1
		}
		if n > maxTest {
			maxTest = n
		}
	}

	retest := &model.Inspection{
		ID:                 uuid.NewString(),
		RoadworthyNumber:   original.RoadworthyNumber,
		ClientName:         original.ClientName,
		VehicleDescription: original.VehicleDescription,
		Status:             model.StatusInProgress,
		ChecklistItems:     newChecklistState(),
		Photos:             map[string][]string{},
		TestNumber:         maxTest + 1,
	}
	if err := s.inspections.Create(ctx, retest); err != nil {
		return nil, err
	}
	return retest, nil
}

// Delete удаляет строку и, по возможности, рабочие файлы фото. Каталог
// бэкапа завершённой проверки намеренно не трогается.
func (s *InspectionService) Delete(ctx context.Context, id string) error {
	insp, err := s.inspections.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.inspections.Delete(ctx, id); err != nil {
		return err
	}

	for _, refs := range insp.Photos {
		for _, ref := range refs {
			name := path.Base(ref)
			if err := os.Remove(filepath.Join(s.uploadDir, name)); err != nil && !os.IsNotExist(err) {
				s.logger.Warnw("failed to remove photo file", "file", name, "error", err)
			}
		}
	}
	return nil
}
