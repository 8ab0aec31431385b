package camera

import (
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FileDevice — "камера" из каталога с изображениями; каждый вызов Frame
// отдаёт следующий файл по кругу. Используется CLI-командой capture и
// тестами: прогоняет тот же путь session → capture → upload, что и
// настоящее устройство.
type FileDevice struct {
	Dir string
}

func (d *FileDevice) Open(ctx context.Context, _ Constraint) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return nil, ErrNoCamera
	}

	var frames []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			frames = append(frames, filepath.Join(d.Dir, e.Name()))
		}
	}
	if len(frames) == 0 {
		return nil, ErrNoCamera
	}
	sort.Strings(frames)

	return &fileStream{frames: frames}, nil
}

type fileStream struct {
	mu     sync.Mutex
	frames []string
	next   int
	closed bool
}

func (s *fileStream) Frame(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrNotReady
	}

	path := s.frames[s.next%len(s.frames)]
	s.next++

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

func (s *fileStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
