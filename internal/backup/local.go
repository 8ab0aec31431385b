// Package backup performs the completion side effects: a local copy of all
// inspection photos plus a JSON report, and a best-effort mirror of that
// directory to an S3-compatible remote.
package backup

import (
	"encoding/json"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"roadworthy/internal/model"
)

// ReportFileName is the snapshot written next to the copied photos.
const ReportFileName = "inspection_report.json"

// Report — снимок проверки, который кладётся в каталог бэкапа.
type Report struct {
	InspectionID       string              `json:"inspectionId"`
	RoadworthyNumber   string              `json:"roadworthyNumber"`
	ClientName         string              `json:"clientName"`
	VehicleDescription string              `json:"vehicleDescription"`
	Status             string              `json:"status"`
	TestNumber         int                 `json:"testNumber"`
	CompletedAt        time.Time           `json:"completedAt"`
	CreatedAt          time.Time           `json:"createdAt"`
	ChecklistItems     map[string]bool     `json:"checklistItems"`
	Photos             map[string][]string `json:"photos"`
}

// Local copies photo files from the working uploads directory into a
// per-roadworthy-number backup directory and writes the report snapshot.
type Local struct {
	UploadDir string
	BackupDir string
}

func NewLocal(uploadDir, backupDir string) *Local {
	return &Local{UploadDir: uploadDir, BackupDir: backupDir}
}

// Dir returns the backup directory for a roadworthy number.
func (l *Local) Dir(roadworthyNumber string) string {
	return filepath.Join(l.BackupDir, roadworthyNumber)
}

// Write creates the backup directory, copies every referenced photo file and
// writes the report. Photo references are server URLs; only the base name is
// used to locate the file. Sources that are already gone are skipped rather
// than failing the whole backup.
func (l *Local) Write(insp *model.Inspection, completedAt time.Time) (string, error) {
	dir := l.Dir(insp.RoadworthyNumber)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	for _, refs := range insp.Photos {
		for _, ref := range refs {
			name := path.Base(ref)
			src := filepath.Join(l.UploadDir, name)
			if _, err := os.Stat(src); err != nil {
				continue
			}
			if err := copyFile(src, filepath.Join(dir, name)); err != nil {
				return "", err
			}
		}
	}

	report := Report{
		InspectionID:       insp.ID,
		RoadworthyNumber:   insp.RoadworthyNumber,
		ClientName:         insp.ClientName,
		VehicleDescription: insp.VehicleDescription,
		Status:             insp.Status,
		TestNumber:         insp.TestNumber,
		CompletedAt:        completedAt,
		CreatedAt:          insp.CreatedAt,
		ChecklistItems:     insp.ChecklistItems,
		Photos:             insp.Photos,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, ReportFileName), data, 0o644); err != nil {
		return "", err
	}
	return dir, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
